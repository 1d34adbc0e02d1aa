package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/kjkrol/gokview/internal/app"
	"github.com/kjkrol/gokview/internal/gogl"
	"github.com/kjkrol/gokview/internal/platform/desktop"
	"github.com/kjkrol/gokview/internal/renderer"
)

// Window and GL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Run(ctx, "gokview", os.Args[1:], app.Deps{
		NewWindow: desktop.NewWindow,
		NewFunctions: func() (renderer.Functions, error) {
			f, err := gogl.New()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
		Stdout: os.Stdout,
	})
	stop()
	os.Exit(code)
}
