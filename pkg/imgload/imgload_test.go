package imgload_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/kjkrol/gokview/pkg/imgload"
	"golang.org/x/image/bmp"
)

func randomRGB(rng *rand.Rand, w, h int) []byte {
	pix := make([]byte, w*h*3)
	rng.Read(pix)
	return pix
}

func nrgbaFromRGB(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = pix[i*3+0]
		img.Pix[i*4+1] = pix[i*3+1]
		img.Pix[i*4+2] = pix[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNGRoundTripIsBitExact(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 37, 21
	want := randomRGB(rng, w, h)
	data := encodePNG(t, nrgbaFromRGB(want, w, h))

	img, err := imgload.Decode(bytes.NewReader(data), imgload.WithOrigin(imgload.OriginUpperLeft))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Width != w || img.Height != h {
		t.Fatalf("expected %dx%d, got %dx%d", w, h, img.Width, img.Height)
	}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("pixels differ after round trip")
	}
}

func TestDecode_BMPRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const w, h = 5, 9
	want := randomRGB(rng, w, h)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, nrgbaFromRGB(want, w, h)); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	img, err := imgload.Decode(&buf, imgload.WithOrigin(imgload.OriginUpperLeft))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("pixels differ after bmp round trip")
	}
}

func TestDecode_BufferSizeIndependentOfSourceModel(t *testing.T) {
	const w, h = 13, 6
	rect := image.Rect(0, 0, w, h)

	gray := image.NewGray(rect)
	gray16 := image.NewGray16(rect)
	rgba := image.NewRGBA(rect)
	rgba64 := image.NewRGBA64(rect)
	paletted := image.NewPaletted(rect, palette.Plan9)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x*16 + y)
			gray.SetGray(x, y, color.Gray{Y: v})
			gray16.SetGray16(x, y, color.Gray16{Y: uint16(v) << 8})
			rgba.SetRGBA(x, y, color.RGBA{R: v, G: 255 - v, B: v / 2, A: 255})
			rgba64.SetRGBA64(x, y, color.RGBA64{R: 0xffff, A: 0xffff})
			paletted.SetColorIndex(x, y, v)
		}
	}

	for name, src := range map[string]image.Image{
		"gray":     gray,
		"gray16":   gray16,
		"rgba":     rgba,
		"rgba64":   rgba64,
		"paletted": paletted,
	} {
		img, err := imgload.Decode(bytes.NewReader(encodePNG(t, src)))
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if len(img.Pix) != w*h*imgload.BytesPerPixel {
			t.Fatalf("%s: expected %d bytes, got %d", name, w*h*3, len(img.Pix))
		}
	}
}

func TestDecode_GrayReplicatesChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 10})
	gray.SetGray(1, 0, color.Gray{Y: 200})

	img, err := imgload.Decode(bytes.NewReader(encodePNG(t, gray)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{10, 10, 10, 200, 200, 200}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("expected %v, got %v", want, img.Pix)
	}
}

func TestDecode_TranslucentPixelKeepsStraightColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	img, err := imgload.Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{200, 100, 50}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("expected %v, got %v", want, img.Pix)
	}
}

func TestDecode_DefaultOriginFlipsRows(t *testing.T) {
	const w, h = 3, 4
	rng := rand.New(rand.NewSource(3))
	raw := randomRGB(rng, w, h)
	data := encodePNG(t, nrgbaFromRGB(raw, w, h))

	img, err := imgload.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Origin != imgload.OriginLowerLeft {
		t.Fatalf("expected lower-left origin, got %v", img.Origin)
	}
	stride := w * 3
	for y := 0; y < h; y++ {
		want := raw[(h-1-y)*stride : (h-y)*stride]
		if !bytes.Equal(img.Row(y), want) {
			t.Fatalf("row %d not reversed", y)
		}
	}
}

func TestFlip_TwiceIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, h := range []int{1, 2, 3, 8} {
		pix := randomRGB(rng, 4, h)
		img := &imgload.Image{Width: 4, Height: h, Pix: append([]byte(nil), pix...)}

		img.Flip()
		if img.Origin != imgload.OriginLowerLeft {
			t.Fatalf("h=%d: origin not toggled", h)
		}
		img.Flip()
		if img.Origin != imgload.OriginUpperLeft {
			t.Fatalf("h=%d: origin not restored", h)
		}
		if !bytes.Equal(img.Pix, pix) {
			t.Fatalf("h=%d: double flip changed pixels", h)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := imgload.Load(path)
	var le *imgload.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *imgload.Error, got %v", err)
	}
	if le.Code != imgload.CodeOpen || le.Path != path {
		t.Fatalf("unexpected error %+v", le)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestLoad_UnknownFormatCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := imgload.Load(path)
	var le *imgload.Error
	if !errors.As(err, &le) || le.Code != imgload.CodeFormat || le.Path != path {
		t.Fatalf("expected format error for %s, got %v", path, err)
	}
}

func TestDecode_TruncatedPNG(t *testing.T) {
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 64, 64)))
	_, err := imgload.Decode(bytes.NewReader(data[:len(data)/2]))
	var le *imgload.Error
	if !errors.As(err, &le) || le.Code != imgload.CodeDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecode_MaxPixels(t *testing.T) {
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 10, 10)))
	_, err := imgload.Decode(bytes.NewReader(data), imgload.WithMaxPixels(99))
	var le *imgload.Error
	if !errors.As(err, &le) || le.Code != imgload.CodeTooLarge {
		t.Fatalf("expected too-large error, got %v", err)
	}
	if _, err := imgload.Decode(bytes.NewReader(data), imgload.WithMaxPixels(100)); err != nil {
		t.Fatalf("100 pixels should pass: %v", err)
	}
}
