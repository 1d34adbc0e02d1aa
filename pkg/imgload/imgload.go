// Package imgload decodes image files into packed RGB888 buffers ready for
// texture upload. The format is detected from the file content.
package imgload

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	BytesPerPixel = 3

	DefaultMaxPixels = 1 << 26
)

// Origin tells which visual edge of the picture row 0 holds.
type Origin int

const (
	OriginUpperLeft Origin = iota
	OriginLowerLeft
)

func (o Origin) opposite() Origin {
	if o == OriginUpperLeft {
		return OriginLowerLeft
	}
	return OriginUpperLeft
}

func (o Origin) String() string {
	if o == OriginLowerLeft {
		return "lower-left"
	}
	return "upper-left"
}

// Image is a decoded picture in interleaved RGB888.
type Image struct {
	Width  int
	Height int
	Origin Origin
	Pix    []byte
}

func (img *Image) Stride() int {
	return img.Width * BytesPerPixel
}

// Row returns row y as stored, without regard to Origin.
func (img *Image) Row(y int) []byte {
	s := img.Stride()
	return img.Pix[y*s : (y+1)*s]
}

type options struct {
	origin    Origin
	maxPixels int
}

type Option func(*options)

// WithOrigin selects the row order of the returned buffer.
// The default is OriginLowerLeft, the OpenGL texture convention.
func WithOrigin(o Origin) Option {
	return func(opts *options) { opts.origin = o }
}

// WithMaxPixels bounds width*height; n <= 0 keeps the default.
func WithMaxPixels(n int) Option {
	return func(opts *options) {
		if n > 0 {
			opts.maxPixels = n
		}
	}
}

func Load(path string, opts ...Option) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: CodeOpen, Path: path, Err: err}
	}
	img, err := decode(data, opts)
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return img, nil
}

func Decode(r io.Reader, opts ...Option) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Code: CodeOpen, Err: errors.Wrap(err, "read")}
	}
	return decode(data, opts)
}

func decode(data []byte, opts []Option) (*Image, error) {
	o := options{origin: OriginLowerLeft, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, classify(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &Error{Code: CodeDecode, Err: errors.Errorf("%s reports %dx%d", format, cfg.Width, cfg.Height)}
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(o.maxPixels) {
		return nil, &Error{Code: CodeTooLarge, Err: errors.Errorf("%dx%d exceeds %d pixels", cfg.Width, cfg.Height, o.maxPixels)}
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, classify(err)
	}
	pix, err := toRGB(src)
	if err != nil {
		return nil, &Error{Code: CodeConvert, Err: err}
	}

	b := src.Bounds()
	img := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		// Every registered decoder yields top row first.
		Origin: OriginUpperLeft,
		Pix:    pix,
	}
	if img.Origin != o.origin {
		img.Flip()
	}
	return img, nil
}

func classify(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return &Error{Code: CodeFormat, Err: err}
	}
	return &Error{Code: CodeDecode, Err: errors.Wrap(err, "decode")}
}
