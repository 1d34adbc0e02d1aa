//go:build !glfw && cgo

package desktop

/*
#cgo pkg-config: sdl2
#include <stdlib.h>
#include <SDL2/SDL.h>
*/
import "C"
import (
	"unsafe"

	"github.com/kjkrol/gokview/internal/platform"
	"github.com/pkg/errors"
)

type sdlWindow struct {
	window  *C.SDL_Window
	context C.SDL_GLContext
	queue   []platform.Event
	pumped  bool
	vsync   bool
}

// NewWindow initialises SDL video, opens an OpenGL window and makes its
// context current. The calling goroutine must be locked to the main OS thread.
func NewWindow(conf platform.WindowConfig) (platform.Window, error) {
	if C.SDL_Init(C.SDL_INIT_VIDEO) < 0 {
		return nil, errors.Errorf("SDL could not initialize! SDL Error: %s", sdlError())
	}

	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MAJOR_VERSION, C.int(conf.GLMajor))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MINOR_VERSION, C.int(conf.GLMinor))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_PROFILE_MASK, C.int(C.SDL_GL_CONTEXT_PROFILE_CORE))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_FLAGS, C.int(C.SDL_GL_CONTEXT_FORWARD_COMPATIBLE_FLAG))

	cTitle := C.CString(conf.Title)
	defer C.free(unsafe.Pointer(cTitle))

	window := C.SDL_CreateWindow(cTitle, C.SDL_WINDOWPOS_UNDEFINED, C.SDL_WINDOWPOS_UNDEFINED,
		C.int(conf.Width), C.int(conf.Height), C.SDL_WINDOW_OPENGL|C.SDL_WINDOW_SHOWN)
	if window == nil {
		err := errors.Errorf("window could not be created! SDL Error: %s", sdlError())
		C.SDL_Quit()
		return nil, err
	}

	context := C.SDL_GL_CreateContext(window)
	if context == nil {
		err := errors.Errorf("OpenGL context could not be created! SDL Error: %s", sdlError())
		C.SDL_DestroyWindow(window)
		C.SDL_Quit()
		return nil, err
	}

	w := &sdlWindow{window: window, context: context}
	interval := C.int(0)
	if conf.VSync {
		interval = 1
	}
	w.vsync = C.SDL_GL_SetSwapInterval(interval) == 0 && conf.VSync
	return w, nil
}

func sdlError() string {
	return C.GoString(C.SDL_GetError())
}

func (w *sdlWindow) PollEvent() (platform.Event, bool) {
	if len(w.queue) == 0 && !w.pumped {
		var e C.SDL_Event
		for C.SDL_PollEvent(&e) != 0 {
			if event, ok := convert(e); ok {
				w.queue = append(w.queue, event)
			}
		}
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

func convert(event C.SDL_Event) (platform.Event, bool) {
	switch eventType := (*(*C.Uint32)(unsafe.Pointer(&event))); eventType {
	case C.SDL_QUIT:
		return platform.DestroyNotify{}, true
	case C.SDL_KEYDOWN:
		keyEvent := (*C.SDL_KeyboardEvent)(unsafe.Pointer(&event))
		code := uint64(keyEvent.keysym.scancode)
		label := C.GoString(C.SDL_GetKeyName(keyEvent.keysym.sym))
		return platform.KeyPress{Code: code, Label: label, Repeat: keyEvent.repeat != 0}, true
	case C.SDL_KEYUP:
		keyEvent := (*C.SDL_KeyboardEvent)(unsafe.Pointer(&event))
		code := uint64(keyEvent.keysym.scancode)
		label := C.GoString(C.SDL_GetKeyName(keyEvent.keysym.sym))
		return platform.KeyRelease{Code: code, Label: label}, true
	case C.SDL_WINDOWEVENT:
		windowEvent := (*C.SDL_WindowEvent)(unsafe.Pointer(&event))
		if windowEvent.event == C.SDL_WINDOWEVENT_EXPOSED {
			return platform.Expose{}, true
		}
		return nil, false
	default:
		return platform.UnexpectedEvent{}, true
	}
}

func (w *sdlWindow) SwapBuffers() {
	C.SDL_GL_SwapWindow(w.window)
	w.pumped = false
}

func (w *sdlWindow) FramebufferSize() (int, int) {
	var width, height C.int
	C.SDL_GL_GetDrawableSize(w.window, &width, &height)
	return int(width), int(height)
}

func (w *sdlWindow) VSync() bool {
	return w.vsync
}

func (w *sdlWindow) Close() {
	if w.context != nil {
		C.SDL_GL_DeleteContext(w.context)
		w.context = nil
	}
	if w.window != nil {
		C.SDL_DestroyWindow(w.window)
		w.window = nil
	}
	C.SDL_Quit()
}
