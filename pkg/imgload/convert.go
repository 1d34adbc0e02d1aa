package imgload

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// toRGB packs src into an interleaved RGB888 buffer. Alpha is dropped after
// un-premultiplying, so translucent pixels keep their straight colour.
func toRGB(src image.Image) ([]byte, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("empty bounds %v", b)
	}
	dst := make([]byte, w*h*BytesPerPixel)

	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst[y*w*BytesPerPixel:]
			for x := 0; x < w; x++ {
				out[x*3+0] = row[x*4+0]
				out[x*3+1] = row[x*4+1]
				out[x*3+2] = row[x*4+2]
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst[y*w*BytesPerPixel:]
			for x := 0; x < w; x++ {
				v := row[x]
				out[x*3+0], out[x*3+1], out[x*3+2] = v, v, v
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst[y*w*BytesPerPixel:]
			for x := 0; x < w; x++ {
				p := row[x*4 : x*4+4]
				if p[3] == 0xff {
					out[x*3+0], out[x*3+1], out[x*3+2] = p[0], p[1], p[2]
					continue
				}
				c := color.NRGBAModel.Convert(color.RGBA{p[0], p[1], p[2], p[3]}).(color.NRGBA)
				out[x*3+0], out[x*3+1], out[x*3+2] = c.R, c.G, c.B
			}
		}
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c, ok := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				if !ok {
					return nil, errors.Errorf("unsupported colour model %T", src.ColorModel())
				}
				dst[i+0], dst[i+1], dst[i+2] = c.R, c.G, c.B
				i += BytesPerPixel
			}
		}
	}
	return dst, nil
}
