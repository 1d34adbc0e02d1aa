package renderer

import (
	"strings"

	"github.com/pkg/errors"
)

type Program struct {
	ID             uint32
	Vertex         uint32
	Fragment       uint32
	PositionAttrib uint32
	Mode           ShaderMode

	sampler    int32
	clearColor int32
}

// BuildProgram compiles and links src. Each stage runs only when the one
// before it succeeded; on any failure every object created so far is deleted
// and the compiler or linker log is returned in the error.
func BuildProgram(f Functions, src ProgramSource) (*Program, error) {
	p := &Program{Mode: src.Mode, sampler: -1, clearColor: -1}
	if err := p.build(f, src); err != nil {
		logger().Debug("shader program failed", "err", err)
		p.Release(f)
		return nil, err
	}
	logger().Debug("shader program linked", "program", p.ID, "mode", p.Mode.String(), "attrib", p.PositionAttrib)
	return p, nil
}

func (p *Program) build(f Functions, src ProgramSource) error {
	p.ID = f.CreateProgram()
	if p.ID == 0 {
		return errors.New("glCreateProgram failed")
	}

	var err error
	p.Vertex, err = compileShader(f, VERTEX_SHADER, src.Vertex)
	if err != nil {
		return errors.Wrap(err, "vertex shader")
	}
	f.AttachShader(p.ID, p.Vertex)

	p.Fragment, err = compileShader(f, FRAGMENT_SHADER, src.Fragment)
	if err != nil {
		return errors.Wrap(err, "fragment shader")
	}
	f.AttachShader(p.ID, p.Fragment)

	f.LinkProgram(p.ID)
	if f.GetProgrami(p.ID, LINK_STATUS) != TRUE {
		return errors.Errorf("link program %d: %s", p.ID, strings.TrimSpace(f.GetProgramInfoLog(p.ID)))
	}

	loc := f.GetAttribLocation(p.ID, PositionAttrib)
	if loc < 0 {
		return errors.Errorf("%s is not a valid glsl program variable", PositionAttrib)
	}
	p.PositionAttrib = uint32(loc)

	switch p.Mode {
	case ModeInvertTexture:
		p.sampler = f.GetUniformLocation(p.ID, samplerUniform)
	case ModeInvertClear:
		p.clearColor = f.GetUniformLocation(p.ID, clearColorUniform)
	}
	return nil
}

func compileShader(f Functions, typ uint32, src string) (uint32, error) {
	shader := f.CreateShader(typ)
	if shader == 0 {
		return 0, errors.New("glCreateShader failed")
	}
	f.ShaderSource(shader, src)
	f.CompileShader(shader)
	if f.GetShaderi(shader, COMPILE_STATUS) != TRUE {
		log := strings.TrimSpace(f.GetShaderInfoLog(shader))
		f.DeleteShader(shader)
		return 0, errors.Errorf("compile shader %d: %s", shader, log)
	}
	return shader, nil
}

func (p *Program) Use(f Functions, clear [4]float32) {
	f.UseProgram(p.ID)
	if p.sampler >= 0 {
		f.Uniform1i(p.sampler, 0)
	}
	if p.clearColor >= 0 {
		f.Uniform4f(p.clearColor, clear[0], clear[1], clear[2], clear[3])
	}
}

func (p *Program) Release(f Functions) {
	if p == nil {
		return
	}
	if p.Vertex != 0 {
		f.DeleteShader(p.Vertex)
		p.Vertex = 0
	}
	if p.Fragment != 0 {
		f.DeleteShader(p.Fragment)
		p.Fragment = 0
	}
	if p.ID != 0 {
		f.DeleteProgram(p.ID)
		p.ID = 0
	}
}
