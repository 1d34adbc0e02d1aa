package gfx

import "github.com/kjkrol/gokview/internal/platform"

type Event interface{}

type Expose struct{}
type KeyPress struct {
	Code   uint64
	Label  string
	Repeat bool
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type DestroyNotify struct{}
type UnexpectedEvent struct{}

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Label: e.Label, Repeat: e.Repeat}
	case platform.KeyRelease:
		return KeyRelease{Code: e.Code, Label: e.Label}
	case platform.Expose:
		return Expose{}
	case platform.DestroyNotify:
		return DestroyNotify{}
	default:
		return UnexpectedEvent{}
	}
}
