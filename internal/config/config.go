// Package config parses the viewer's command line.
package config

import (
	"flag"
	"io"
	"log/slog"
	"strings"

	"github.com/kjkrol/gokview/internal/renderer"
	"github.com/kjkrol/gokview/pkg/imgload"
	"github.com/pkg/errors"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 480

	GLMajor = 3
	GLMinor = 3

	DefaultTitle     = "gokview"
	DefaultToggleKey = "q"
)

var ErrUsage = errors.New("there must be an argument and it must be the relative path to the loaded image")

type Config struct {
	ImagePath string
	Title     string
	ToggleKey string
	Shader    renderer.ShaderMode
	VSync     bool
	LogLevel  slog.Level
	MaxPixels int
}

// Parse reads flags and the single image path from args (without the
// program name). Usage text goes to output on error.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	var (
		conf     Config
		shader   string
		logLevel string
	)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		io.WriteString(output, "usage: "+name+" [flags] <image-path>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&conf.Title, "title", DefaultTitle, "window title")
	fs.StringVar(&conf.ToggleKey, "toggle-key", DefaultToggleKey, "key that shows or hides the inverted quad")
	fs.StringVar(&shader, "shader", renderer.ModeInvertTexture.String(), "what the quad inverts: texture or clear")
	fs.BoolVar(&conf.VSync, "vsync", true, "request a swap interval of 1")
	fs.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	fs.IntVar(&conf.MaxPixels, "max-pixels", imgload.DefaultMaxPixels, "largest accepted width*height")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return Config{}, ErrUsage
	}
	conf.ImagePath = fs.Arg(0)

	mode, err := renderer.ParseShaderMode(shader)
	if err != nil {
		return Config{}, errors.Wrap(err, "-shader")
	}
	conf.Shader = mode

	if err := conf.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, errors.Wrap(err, "-log-level")
	}
	if strings.TrimSpace(conf.ToggleKey) == "" {
		return Config{}, errors.New("-toggle-key must not be empty")
	}
	if conf.MaxPixels <= 0 {
		return Config{}, errors.Errorf("-max-pixels must be positive, got %d", conf.MaxPixels)
	}
	return conf, nil
}
