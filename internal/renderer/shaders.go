package renderer

import "fmt"

// ShaderMode selects what the fragment stage inverts.
type ShaderMode int

const (
	// ModeInvertTexture samples the uploaded image and inverts it.
	ModeInvertTexture ShaderMode = iota
	// ModeInvertClear inverts the fragment's default value, which is the
	// clear colour. The quad then covers the image with a flat colour.
	ModeInvertClear
)

func (m ShaderMode) String() string {
	switch m {
	case ModeInvertTexture:
		return "texture"
	case ModeInvertClear:
		return "clear"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseShaderMode(s string) (ShaderMode, error) {
	switch s {
	case "texture":
		return ModeInvertTexture, nil
	case "clear":
		return ModeInvertClear, nil
	}
	return 0, fmt.Errorf("unknown shader mode %q", s)
}

const (
	PositionAttrib = "LVertexPos2D"

	samplerUniform    = "tex"
	clearColorUniform = "uClearColor"
)

const vertexShaderSource = `#version 330 core
in vec2 LVertexPos2D;
out vec2 vTexCoord;

void main()
{
    vTexCoord = LVertexPos2D * 0.5 + 0.5;
    gl_Position = vec4(LVertexPos2D.x, LVertexPos2D.y, 0, 1);
}
`

const invertTextureFragmentSource = `#version 330 core
uniform sampler2D tex;
in vec2 vTexCoord;
layout(location = 0) out vec4 out_color;

void main()
{
    vec4 in_color = texture(tex, vTexCoord);
    out_color = vec4(vec3(1.0) - in_color.rgb, 1.0);
}
`

const invertClearFragmentSource = `#version 330 core
uniform vec4 uClearColor;
in vec2 vTexCoord;
layout(location = 0) out vec4 out_color;

void main()
{
    out_color = vec4(1.0) - uClearColor;
}
`

// ProgramSource is a vertex/fragment pair handed to BuildProgram.
type ProgramSource struct {
	Vertex   string
	Fragment string
	Mode     ShaderMode
}

func InvertSource(mode ShaderMode) ProgramSource {
	src := ProgramSource{Vertex: vertexShaderSource, Mode: mode}
	if mode == ModeInvertClear {
		src.Fragment = invertClearFragmentSource
	} else {
		src.Fragment = invertTextureFragmentSource
	}
	return src
}
