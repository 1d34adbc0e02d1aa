package renderer

import (
	"github.com/kjkrol/gokview/pkg/imgload"
	"github.com/pkg/errors"
)

type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// UploadTexture creates a clamped, linearly filtered RGB texture holding img
// at mip level 0 and leaves it bound to TEXTURE_2D.
func UploadTexture(f Functions, img *imgload.Image) (*Texture, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, errors.New("upload texture: empty image")
	}
	if want := img.Width * img.Height * imgload.BytesPerPixel; len(img.Pix) != want {
		return nil, errors.Errorf("upload texture: %dx%d image holds %d bytes, want %d", img.Width, img.Height, len(img.Pix), want)
	}

	t := &Texture{Width: img.Width, Height: img.Height}
	t.ID = f.CreateTexture()
	if t.ID == 0 {
		return nil, errors.New("glGenTextures failed")
	}
	f.BindTexture(TEXTURE_2D, t.ID)
	f.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, CLAMP_TO_EDGE)
	f.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, CLAMP_TO_EDGE)
	f.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR)
	f.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, LINEAR)
	f.PixelStorei(UNPACK_ALIGNMENT, 1)
	f.TexImage2D(TEXTURE_2D, 0, RGB, int32(img.Width), int32(img.Height), RGB, UNSIGNED_BYTE, img.Pix)

	logger().Debug("texture uploaded", "texture", t.ID, "width", t.Width, "height", t.Height)
	return t, nil
}

func (t *Texture) Release(f Functions) {
	if t == nil || t.ID == 0 {
		return
	}
	f.DeleteTexture(t.ID)
	t.ID = 0
}
