// Package app wires the viewer together: config, image, window, GL and the
// frame driver. The window and GL binding are injected so the sequence can
// run without a display.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/kjkrol/gokview/internal/config"
	"github.com/kjkrol/gokview/internal/platform"
	"github.com/kjkrol/gokview/internal/renderer"
	"github.com/kjkrol/gokview/pkg/gfx"
	"github.com/kjkrol/gokview/pkg/imgload"
	"github.com/pkg/errors"
)

const (
	ExitOK      = 0
	ExitFailure = -1
)

// Versioner is implemented by GL bindings that can report the driver's
// version string.
type Versioner interface {
	Version() string
}

type Deps struct {
	// NewWindow opens the window and makes its context current.
	NewWindow func(platform.WindowConfig) (platform.Window, error)
	// NewFunctions loads GL entry points for the current context.
	NewFunctions func() (renderer.Functions, error)
	Stdout       io.Writer
}

// Run executes the viewer and returns the process exit code. Every resource
// acquired before a failure is released before Run returns.
func Run(ctx context.Context, name string, args []string, deps Deps) int {
	conf, err := config.Parse(name, args, deps.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(deps.Stdout, err)
		return ExitFailure
	}

	log := slog.New(slog.NewTextHandler(deps.Stdout, &slog.HandlerOptions{Level: conf.LogLevel}))
	renderer.SetLogger(log)
	defer renderer.SetLogger(nil)

	if err := run(ctx, log, conf, deps); err != nil {
		log.Error("gokview failed", "err", err)
		return ExitFailure
	}
	return ExitOK
}

func run(ctx context.Context, log *slog.Logger, conf config.Config, deps Deps) error {
	img, err := imgload.Load(conf.ImagePath, imgload.WithMaxPixels(conf.MaxPixels))
	if err != nil {
		return errors.Wrap(err, "unable to load image")
	}
	log.Info("image loaded", "path", conf.ImagePath, "width", img.Width, "height", img.Height)

	window, err := deps.NewWindow(platform.WindowConfig{
		Width:   config.ScreenWidth,
		Height:  config.ScreenHeight,
		Title:   conf.Title,
		VSync:   conf.VSync,
		GLMajor: config.GLMajor,
		GLMinor: config.GLMinor,
	})
	if err != nil {
		return errors.Wrap(err, "window could not be created")
	}
	defer window.Close()
	if conf.VSync && !window.VSync() {
		log.Warn("unable to set VSync")
	}

	f, err := deps.NewFunctions()
	if err != nil {
		return errors.Wrap(err, "error initializing OpenGL")
	}
	if v, ok := f.(Versioner); ok {
		log.Info("OpenGL context ready", "version", v.Version())
	}

	r, err := renderer.New(f, img, renderer.Config{
		Mode:       conf.Shader,
		ClearColor: [4]float32{0, 0, 0, 1},
	})
	if err != nil {
		return err
	}
	defer r.Close()

	driver := gfx.NewDriver(window, r, gfx.DriverConfig{
		ToggleKey: conf.ToggleKey,
		DrawQuad:  true,
	})
	err = driver.Run(ctx)
	log.Info("viewer closed", "frames", driver.Frames())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
