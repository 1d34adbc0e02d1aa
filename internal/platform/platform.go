package platform

type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	GLMajor int
	GLMinor int
}

// Window is a fixed-size window with a current OpenGL core context.
// Every method must be called from the thread that created it.
type Window interface {
	// PollEvent returns the next queued event without blocking. The OS queue
	// is pumped at most once between two SwapBuffers calls.
	PollEvent() (Event, bool)
	SwapBuffers()
	FramebufferSize() (width, height int)
	// VSync reports whether a swap interval of 1 was accepted.
	VSync() bool
	Close()
}
