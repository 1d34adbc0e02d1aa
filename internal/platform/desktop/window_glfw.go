//go:build glfw

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/gokview/internal/platform"
	"github.com/pkg/errors"
)

type glfwWindow struct {
	window *glfw.Window
	queue  []platform.Event
	pumped bool
	vsync  bool
}

// NewWindow initialises GLFW, opens the window and makes its context current.
// The calling goroutine must be locked to the main OS thread.
func NewWindow(conf platform.WindowConfig) (platform.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "GLFW could not initialize")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, conf.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, conf.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "window could not be created")
	}
	window.MakeContextCurrent()

	w := &glfwWindow{window: window}
	if conf.VSync {
		glfw.SwapInterval(1)
		w.vsync = true
	} else {
		glfw.SwapInterval(0)
	}

	window.SetKeyCallback(w.onKey)
	window.SetCloseCallback(func(*glfw.Window) {
		w.queue = append(w.queue, platform.DestroyNotify{})
	})
	window.SetRefreshCallback(func(*glfw.Window) {
		w.queue = append(w.queue, platform.Expose{})
	})
	return w, nil
}

func (w *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
	label := glfw.GetKeyName(key, scancode)
	switch action {
	case glfw.Press:
		w.queue = append(w.queue, platform.KeyPress{Code: uint64(scancode), Label: label})
	case glfw.Repeat:
		w.queue = append(w.queue, platform.KeyPress{Code: uint64(scancode), Label: label, Repeat: true})
	case glfw.Release:
		w.queue = append(w.queue, platform.KeyRelease{Code: uint64(scancode), Label: label})
	}
}

func (w *glfwWindow) PollEvent() (platform.Event, bool) {
	if len(w.queue) == 0 && !w.pumped {
		glfw.PollEvents()
		w.pumped = true
	}
	if len(w.queue) == 0 {
		return nil, false
	}
	e := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return e, true
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
	w.pumped = false
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) VSync() bool {
	return w.vsync
}

func (w *glfwWindow) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}
