package gfx

import (
	"context"
	"strings"

	"github.com/kjkrol/gokg/pkg/geometry"
	"github.com/kjkrol/gokview/internal/platform"
)

type State int

const (
	Running State = iota
	Quit
)

func (s State) String() string {
	if s == Quit {
		return "quit"
	}
	return "running"
}

// Surface is the presented window as seen by the driver.
type Surface interface {
	PollEvent() (platform.Event, bool)
	SwapBuffers()
	FramebufferSize() (width, height int)
}

// Pass draws one frame into the default framebuffer.
type Pass interface {
	Render(frame Frame)
}

// Rect is a pixel rectangle with Min inclusive and Max exclusive.
type Rect struct {
	Min, Max geometry.Vec[int]
}

func NewRect(width, height int) Rect {
	return Rect{Max: geometry.Vec[int]{X: width, Y: height}}
}

func (r Rect) Size() geometry.Vec[int] { return r.Max.Sub(r.Min) }

// Frame is what a Pass needs to know about the current iteration.
type Frame struct {
	Viewport Rect
	DrawQuad bool
}

type DriverConfig struct {
	// ToggleKey is compared case-insensitively with KeyPress labels.
	ToggleKey string
	// DrawQuad is the initial state of the quad flag.
	DrawQuad bool
	Strategy EventsConsumerStrategy
}

type Driver struct {
	surface  Surface
	pass     Pass
	conf     DriverConfig
	viewport Rect

	drawQuad bool
	state    State
	frames   uint64
}

func NewDriver(surface Surface, pass Pass, conf DriverConfig) *Driver {
	if conf.Strategy == nil {
		conf.Strategy = DrainAll()
	}
	w, h := surface.FramebufferSize()
	return &Driver{
		surface:  surface,
		pass:     pass,
		conf:     conf,
		viewport: NewRect(w, h),
		drawQuad: conf.DrawQuad,
		state:    Running,
	}
}

func (d *Driver) State() State   { return d.state }
func (d *Driver) DrawQuad() bool { return d.drawQuad }
func (d *Driver) Frames() uint64 { return d.frames }
func (d *Driver) Viewport() Rect { return d.viewport }

func (d *Driver) HandleEvent(event Event) {
	switch e := event.(type) {
	case KeyPress:
		if !e.Repeat && d.conf.ToggleKey != "" && strings.EqualFold(e.Label, d.conf.ToggleKey) {
			d.drawQuad = !d.drawQuad
		}
	case DestroyNotify:
		d.state = Quit
	}
}

// Step runs one iteration: drain input, render, present. The iteration that
// observes a quit event still presents its frame.
func (d *Driver) Step() State {
	if d.state == Quit {
		return d.state
	}
	d.conf.Strategy.Consume(d.poll, d.HandleEvent)
	d.pass.Render(Frame{Viewport: d.viewport, DrawQuad: d.drawQuad})
	d.surface.SwapBuffers()
	d.frames++
	return d.state
}

// Run steps until a quit event arrives or ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	for d.state == Running {
		select {
		case <-ctx.Done():
			d.state = Quit
			return ctx.Err()
		default:
		}
		d.Step()
	}
	return nil
}

func (d *Driver) poll() (Event, bool) {
	e, ok := d.surface.PollEvent()
	if !ok {
		return nil, false
	}
	return convert(e), true
}
