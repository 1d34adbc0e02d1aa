package renderer

import "github.com/pkg/errors"

// Target is a read-only framebuffer whose colour attachment is the image
// texture. It is the blit source for every frame.
type Target struct {
	FBO     uint32
	Texture *Texture
}

func NewTarget(f Functions, tex *Texture) (*Target, error) {
	if tex == nil || tex.ID == 0 {
		return nil, errors.New("offscreen target: no texture")
	}
	t := &Target{Texture: tex}
	t.FBO = f.CreateFramebuffer()
	if t.FBO == 0 {
		return nil, errors.New("glGenFramebuffers failed")
	}
	f.BindFramebuffer(FRAMEBUFFER, t.FBO)
	f.FramebufferTexture2D(FRAMEBUFFER, COLOR_ATTACHMENT0, TEXTURE_2D, tex.ID, 0)
	status := f.CheckFramebufferStatus(FRAMEBUFFER)
	f.BindFramebuffer(FRAMEBUFFER, 0)
	if status != FRAMEBUFFER_COMPLETE {
		t.Release(f)
		return nil, errors.Errorf("offscreen target incomplete: status 0x%04x", status)
	}
	return t, nil
}

// Release deletes the framebuffer. The texture belongs to the caller.
func (t *Target) Release(f Functions) {
	if t == nil || t.FBO == 0 {
		return
	}
	f.DeleteFramebuffer(t.FBO)
	t.FBO = 0
}
