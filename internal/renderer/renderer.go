package renderer

import (
	"github.com/kjkrol/gokview/pkg/gfx"
	"github.com/kjkrol/gokview/pkg/imgload"
	"github.com/pkg/errors"
)

type Config struct {
	Mode       ShaderMode
	ClearColor [4]float32
}

// Renderer owns every GL object of the viewer. It is created once after the
// context is current and must be closed on the same thread.
type Renderer struct {
	f    Functions
	conf Config

	program *Program
	quad    *Quad
	texture *Texture
	target  *Target
}

// New builds the program and quad, then uploads img and wraps it in the
// offscreen target. The caller may drop img afterwards.
func New(f Functions, img *imgload.Image, conf Config) (*Renderer, error) {
	r := &Renderer{f: f, conf: conf}
	if err := r.init(img); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(img *imgload.Image) error {
	var err error
	if r.program, err = BuildProgram(r.f, InvertSource(r.conf.Mode)); err != nil {
		return errors.Wrap(err, "unable to initialize OpenGL")
	}
	r.quad = NewQuad(r.f, r.program.PositionAttrib)
	if r.texture, err = UploadTexture(r.f, img); err != nil {
		return err
	}
	if r.target, err = NewTarget(r.f, r.texture); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) Render(frame gfx.Frame) {
	f := r.f
	vp := frame.Viewport
	x0, y0 := int32(vp.Min.X), int32(vp.Min.Y)
	x1, y1 := int32(vp.Max.X), int32(vp.Max.Y)

	f.BindFramebuffer(READ_FRAMEBUFFER, r.target.FBO)
	f.BindFramebuffer(DRAW_FRAMEBUFFER, 0)
	f.Viewport(x0, y0, x1-x0, y1-y0)
	c := r.conf.ClearColor
	f.ClearColor(c[0], c[1], c[2], c[3])
	f.Clear(COLOR_BUFFER_BIT)
	f.BlitFramebuffer(
		0, 0, int32(r.texture.Width), int32(r.texture.Height),
		x0, y0, x1, y1,
		COLOR_BUFFER_BIT, LINEAR,
	)
	f.BindFramebuffer(FRAMEBUFFER, 0)

	if !frame.DrawQuad {
		return
	}
	r.program.Use(f, c)
	f.ActiveTexture(TEXTURE0)
	f.BindTexture(TEXTURE_2D, r.texture.ID)
	r.quad.Draw(f)
	f.UseProgram(0)
}

// Close releases GL objects in reverse creation order. Safe to call on a
// partially built renderer and more than once.
func (r *Renderer) Close() {
	if r == nil {
		return
	}
	r.target.Release(r.f)
	r.texture.Release(r.f)
	r.quad.Release(r.f)
	r.program.Release(r.f)
}
