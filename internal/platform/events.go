package platform

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
