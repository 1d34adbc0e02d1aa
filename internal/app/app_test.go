package app_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kjkrol/gokview/internal/app"
	"github.com/kjkrol/gokview/internal/platform"
	"github.com/kjkrol/gokview/internal/renderer"
	"github.com/kjkrol/gokview/internal/renderer/renderertest"
	"github.com/pkg/errors"
)

type window struct {
	conf   platform.WindowConfig
	events []platform.Event
	swaps  int
	closed bool
}

func (w *window) PollEvent() (platform.Event, bool) {
	if len(w.events) == 0 {
		return nil, false
	}
	e := w.events[0]
	w.events = w.events[1:]
	return e, true
}

func (w *window) SwapBuffers()                { w.swaps++ }
func (w *window) FramebufferSize() (int, int) { return w.conf.Width, w.conf.Height }
func (w *window) VSync() bool                 { return false }
func (w *window) Close()                      { w.closed = true }

type harness struct {
	out     bytes.Buffer
	gl      *renderertest.GL
	win     *window
	opened  int
	glError error
}

func newHarness(events ...platform.Event) *harness {
	return &harness{gl: renderertest.New(), win: &window{events: events}}
}

func (h *harness) deps() app.Deps {
	return app.Deps{
		NewWindow: func(conf platform.WindowConfig) (platform.Window, error) {
			h.opened++
			h.win.conf = conf
			return h.win, nil
		},
		NewFunctions: func() (renderer.Functions, error) {
			if h.glError != nil {
				return nil, h.glError
			}
			return h.gl, nil
		},
		Stdout: &h.out,
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0x80, 0xff})
		}
	}
	path := filepath.Join(t.TempDir(), "image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_QuitEvent(t *testing.T) {
	path := writePNG(t, 16, 8)
	h := newHarness(platform.KeyPress{Label: "q"}, platform.DestroyNotify{})

	code := app.Run(context.Background(), "gokview", []string{path}, h.deps())
	if code != app.ExitOK {
		t.Fatalf("exit = %d, output:\n%s", code, h.out.String())
	}
	if h.win.conf.Width != 640 || h.win.conf.Height != 480 || h.win.conf.GLMajor != 3 || h.win.conf.GLMinor != 3 {
		t.Errorf("window config = %+v", h.win.conf)
	}
	if h.win.swaps != 1 || len(h.gl.Draws) != 0 {
		t.Errorf("swaps = %d, draws = %d; the toggled frame must be presented without the quad", h.win.swaps, len(h.gl.Draws))
	}
	if !h.win.closed || h.gl.Live() != 0 {
		t.Errorf("closed = %v, live GL objects = %d", h.win.closed, h.gl.Live())
	}
	if !strings.Contains(h.out.String(), "unable to set VSync") {
		t.Errorf("missing vsync warning in:\n%s", h.out.String())
	}
}

func TestRun_MissingImage(t *testing.T) {
	h := newHarness()
	missing := filepath.Join(t.TempDir(), "nope.png")

	code := app.Run(context.Background(), "gokview", []string{missing}, h.deps())
	if code != app.ExitFailure {
		t.Errorf("exit = %d, want %d", code, app.ExitFailure)
	}
	if h.opened != 0 {
		t.Error("window opened for a missing image")
	}
	if !strings.Contains(h.out.String(), "nope.png") {
		t.Errorf("log does not name the file:\n%s", h.out.String())
	}
}

func TestRun_NoArguments(t *testing.T) {
	h := newHarness()
	if code := app.Run(context.Background(), "gokview", nil, h.deps()); code != app.ExitFailure {
		t.Errorf("exit = %d", code)
	}
	if h.opened != 0 {
		t.Error("window opened without an image path")
	}
}

func TestRun_GLFailureClosesWindow(t *testing.T) {
	path := writePNG(t, 2, 2)
	h := newHarness()
	h.glError = errors.New("no context")

	if code := app.Run(context.Background(), "gokview", []string{path}, h.deps()); code != app.ExitFailure {
		t.Errorf("exit = %d", code)
	}
	if !h.win.closed {
		t.Error("window left open")
	}
}

func TestRun_ShaderFailureReleasesEverything(t *testing.T) {
	path := writePNG(t, 2, 2)
	h := newHarness()
	h.gl.FailLink = true

	if code := app.Run(context.Background(), "gokview", []string{path}, h.deps()); code != app.ExitFailure {
		t.Errorf("exit = %d", code)
	}
	if !h.win.closed || h.gl.Live() != 0 {
		t.Errorf("closed = %v, live GL objects = %d", h.win.closed, h.gl.Live())
	}
	if !strings.Contains(h.out.String(), "unable to initialize OpenGL") {
		t.Errorf("output:\n%s", h.out.String())
	}
	if n := strings.Count(h.out.String(), "level=ERROR"); n != 1 {
		t.Errorf("shader failure logged %d times at error level:\n%s", n, h.out.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	path := writePNG(t, 2, 2)
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := app.Run(ctx, "gokview", []string{path}, h.deps()); code != app.ExitOK {
		t.Errorf("exit = %d", code)
	}
	if !h.win.closed || h.gl.Live() != 0 {
		t.Errorf("closed = %v, live GL objects = %d", h.win.closed, h.gl.Live())
	}
}
