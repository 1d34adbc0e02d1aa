package renderer

// Functions is the slice of OpenGL 3.3 core the viewer needs. Object names
// are plain uint32 as in go-gl; zero is never a valid name.
type Functions interface {
	CreateShader(typ uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderi(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)
	Uniform4f(location int32, x, y, z, w float32)

	CreateTexture() uint32
	BindTexture(target, texture uint32)
	ActiveTexture(unit uint32)
	TexParameteri(target, pname uint32, param int32)
	GetTexParameteri(target, pname uint32) int32
	PixelStorei(pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte)
	DeleteTexture(texture uint32)

	CreateBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	CreateFramebuffer() uint32
	BindFramebuffer(target, fbo uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	DeleteFramebuffer(fbo uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}

// GL enums, values from the OpenGL 3.3 core registry.
const (
	FALSE = 0
	TRUE  = 1

	COLOR_BUFFER_BIT = 0x4000

	TRIANGLE_FAN = 0x0006

	UNSIGNED_BYTE = 0x1401
	UNSIGNED_INT  = 0x1405
	FLOAT         = 0x1406

	RGB = 0x1907

	TEXTURE_2D         = 0x0DE1
	TEXTURE0           = 0x84C0
	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	NEAREST            = 0x2600
	LINEAR             = 0x2601
	CLAMP_TO_EDGE      = 0x812F
	UNPACK_ALIGNMENT   = 0x0CF5

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STATIC_DRAW          = 0x88E4

	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84

	READ_FRAMEBUFFER     = 0x8CA8
	DRAW_FRAMEBUFFER     = 0x8CA9
	FRAMEBUFFER_COMPLETE = 0x8CD5
	COLOR_ATTACHMENT0    = 0x8CE0
	FRAMEBUFFER          = 0x8D40
)
