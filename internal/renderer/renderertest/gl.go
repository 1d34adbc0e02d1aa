// Package renderertest provides an in-memory renderer.Functions that
// records calls and tracks live GL objects, for tests without a context.
package renderertest

import (
	"fmt"
	"strings"

	"github.com/kjkrol/gokview/internal/renderer"
)

var _ renderer.Functions = (*GL)(nil)

type kind int

const (
	kindShader kind = iota
	kindProgram
	kindTexture
	kindBuffer
	kindVertexArray
	kindFramebuffer
)

type object struct {
	kind     kind
	typ      uint32
	source   string
	compiled bool
	attached []uint32
	linked   bool
	params   map[uint32]int32
	upload   TexUpload
	data     []byte
}

// Blit is one recorded BlitFramebuffer call.
type Blit struct {
	Src, Dst     [4]int32
	Read         uint32
	Mask, Filter uint32
}

// TexUpload is the last TexImage2D call made for a texture.
type TexUpload struct {
	Level          int32
	InternalFormat int32
	Width, Height  int32
	Format, Type   uint32
	Pix            []byte
}

// Draw is one recorded DrawElements call with the program and vertex array
// bound at the time.
type Draw struct {
	Mode    uint32
	Count   int32
	Type    uint32
	Offset  int
	Program uint32
	VAO     uint32
}

// GL is a fake OpenGL. A shader compiles when its source contains
// "void main"; FailLink and DropAttrib force the later stages to fail.
type GL struct {
	FailLink          bool
	DropAttrib        bool
	FramebufferStatus uint32

	Calls []string
	Blits []Blit
	Draws []Draw

	next     uint32
	objects  map[uint32]*object
	bound    map[uint32]uint32
	program  uint32
	vao      uint32
	unpack   int32
	names    []string
	uniforms map[string][]float32
}

func New() *GL {
	return &GL{
		FramebufferStatus: renderer.FRAMEBUFFER_COMPLETE,
		objects:           make(map[uint32]*object),
		bound:             make(map[uint32]uint32),
		uniforms:          make(map[string][]float32),
	}
}

func (g *GL) record(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GL) create(k kind) uint32 {
	g.next++
	g.objects[g.next] = &object{kind: k, params: make(map[uint32]int32)}
	return g.next
}

func (g *GL) lookup(id uint32, k kind) *object {
	o := g.objects[id]
	if o == nil || o.kind != k {
		return nil
	}
	return o
}

func (g *GL) remove(id uint32, k kind) {
	if g.lookup(id, k) != nil {
		delete(g.objects, id)
	}
}

// Live returns the number of objects created and not yet deleted.
func (g *GL) Live() int {
	return len(g.objects)
}

// TexParameter reports a sampling parameter of texture id.
func (g *GL) TexParameter(id, pname uint32) int32 {
	if o := g.lookup(id, kindTexture); o != nil {
		return o.params[pname]
	}
	return 0
}

// TexImage returns the last upload made to texture id.
func (g *GL) TexImage(id uint32) TexUpload {
	if o := g.lookup(id, kindTexture); o != nil {
		return o.upload
	}
	return TexUpload{}
}

func (g *GL) UnpackAlignment() int32 { return g.unpack }
func (g *GL) CurrentProgram() uint32 { return g.program }

// Uniform returns the components last written to the named uniform.
func (g *GL) Uniform(name string) []float32 {
	return g.uniforms[name]
}

func (g *GL) CreateShader(typ uint32) uint32 {
	id := g.create(kindShader)
	g.objects[id].typ = typ
	g.record("CreateShader(0x%x)=%d", typ, id)
	return id
}

func (g *GL) ShaderSource(shader uint32, src string) {
	if o := g.lookup(shader, kindShader); o != nil {
		o.source = src
	}
}

func (g *GL) CompileShader(shader uint32) {
	g.record("CompileShader(%d)", shader)
	if o := g.lookup(shader, kindShader); o != nil {
		o.compiled = strings.Contains(o.source, "void main")
	}
}

func (g *GL) GetShaderi(shader, pname uint32) int32 {
	o := g.lookup(shader, kindShader)
	if o == nil {
		return 0
	}
	switch pname {
	case renderer.COMPILE_STATUS:
		if o.compiled {
			return renderer.TRUE
		}
		return renderer.FALSE
	case renderer.INFO_LOG_LENGTH:
		return int32(len(g.GetShaderInfoLog(shader)))
	}
	return 0
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	o := g.lookup(shader, kindShader)
	if o == nil || o.compiled {
		return ""
	}
	return "0:1(1): error: syntax error, unexpected IDENTIFIER\n"
}

func (g *GL) DeleteShader(shader uint32) {
	g.record("DeleteShader(%d)", shader)
	g.remove(shader, kindShader)
}

func (g *GL) CreateProgram() uint32 {
	id := g.create(kindProgram)
	g.record("CreateProgram()=%d", id)
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader(%d, %d)", program, shader)
	if o := g.lookup(program, kindProgram); o != nil {
		o.attached = append(o.attached, shader)
	}
}

func (g *GL) LinkProgram(program uint32) {
	g.record("LinkProgram(%d)", program)
	o := g.lookup(program, kindProgram)
	if o == nil {
		return
	}
	var vs, fs bool
	for _, sh := range o.attached {
		s := g.lookup(sh, kindShader)
		if s == nil || !s.compiled {
			continue
		}
		vs = vs || s.typ == renderer.VERTEX_SHADER
		fs = fs || s.typ == renderer.FRAGMENT_SHADER
	}
	o.linked = vs && fs && !g.FailLink
}

func (g *GL) GetProgrami(program, pname uint32) int32 {
	o := g.lookup(program, kindProgram)
	if o == nil {
		return 0
	}
	if pname == renderer.LINK_STATUS && o.linked {
		return renderer.TRUE
	}
	return renderer.FALSE
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	if o := g.lookup(program, kindProgram); o != nil && !o.linked {
		return "error: linking failed\n"
	}
	return ""
}

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram(%d)", program)
	g.remove(program, kindProgram)
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram(%d)", program)
	g.program = program
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {
	g.record("GetAttribLocation(%d, %s)", program, name)
	o := g.lookup(program, kindProgram)
	if o == nil || !o.linked || g.DropAttrib {
		return -1
	}
	for _, sh := range o.attached {
		if s := g.lookup(sh, kindShader); s != nil && s.typ == renderer.VERTEX_SHADER && strings.Contains(s.source, name) {
			return 0
		}
	}
	return -1
}

// Uniform locations index the names looked up so far. A name resolves only
// when a linked shader of the program declares it.
func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	o := g.lookup(program, kindProgram)
	if o == nil || !o.linked {
		return -1
	}
	for _, sh := range o.attached {
		s := g.lookup(sh, kindShader)
		if s == nil || !strings.Contains(s.source, "uniform") || !strings.Contains(s.source, name) {
			continue
		}
		for i, n := range g.names {
			if n == name {
				return int32(i)
			}
		}
		g.names = append(g.names, name)
		return int32(len(g.names) - 1)
	}
	return -1
}

func (g *GL) uniformName(location int32) string {
	if location < 0 || int(location) >= len(g.names) {
		return ""
	}
	return g.names[location]
}

func (g *GL) Uniform1i(location, v int32) {
	g.record("Uniform1i(%d, %d)", location, v)
	g.uniforms[g.uniformName(location)] = []float32{float32(v)}
}

func (g *GL) Uniform4f(location int32, x, y, z, w float32) {
	g.record("Uniform4f(%d, %g, %g, %g, %g)", location, x, y, z, w)
	g.uniforms[g.uniformName(location)] = []float32{x, y, z, w}
}

func (g *GL) CreateTexture() uint32 {
	id := g.create(kindTexture)
	g.record("CreateTexture()=%d", id)
	return id
}

func (g *GL) BindTexture(target, texture uint32) {
	g.record("BindTexture(0x%x, %d)", target, texture)
	g.bound[target] = texture
}

func (g *GL) ActiveTexture(unit uint32) {
	g.record("ActiveTexture(0x%x)", unit)
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {
	g.record("TexParameteri(0x%x, 0x%x, 0x%x)", target, pname, param)
	if o := g.lookup(g.bound[target], kindTexture); o != nil {
		o.params[pname] = param
	}
}

func (g *GL) GetTexParameteri(target, pname uint32) int32 {
	if o := g.lookup(g.bound[target], kindTexture); o != nil {
		return o.params[pname]
	}
	return 0
}

func (g *GL) PixelStorei(pname uint32, param int32) {
	g.record("PixelStorei(0x%x, %d)", pname, param)
	if pname == renderer.UNPACK_ALIGNMENT {
		g.unpack = param
	}
}

func (g *GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte) {
	g.record("TexImage2D(0x%x, %d, 0x%x, %d, %d, 0x%x, 0x%x)", target, level, internalFormat, width, height, format, xtype)
	if o := g.lookup(g.bound[target], kindTexture); o != nil {
		o.upload = TexUpload{
			Level:          level,
			InternalFormat: internalFormat,
			Width:          width,
			Height:         height,
			Format:         format,
			Type:           xtype,
			Pix:            append([]byte(nil), pix...),
		}
	}
}

func (g *GL) DeleteTexture(texture uint32) {
	g.record("DeleteTexture(%d)", texture)
	g.remove(texture, kindTexture)
}

func (g *GL) CreateBuffer() uint32 {
	id := g.create(kindBuffer)
	g.record("CreateBuffer()=%d", id)
	return id
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.record("BindBuffer(0x%x, %d)", target, buffer)
	g.bound[target] = buffer
}

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	g.record("BufferData(0x%x, %d bytes, 0x%x)", target, len(data), usage)
	if o := g.lookup(g.bound[target], kindBuffer); o != nil {
		o.data = append([]byte(nil), data...)
	}
}

// BufferBytes returns the data stored in buffer id.
func (g *GL) BufferBytes(id uint32) []byte {
	if o := g.lookup(id, kindBuffer); o != nil {
		return o.data
	}
	return nil
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer(%d)", buffer)
	g.remove(buffer, kindBuffer)
}

func (g *GL) CreateVertexArray() uint32 {
	id := g.create(kindVertexArray)
	g.record("CreateVertexArray()=%d", id)
	return id
}

func (g *GL) BindVertexArray(vao uint32) {
	g.record("BindVertexArray(%d)", vao)
	g.vao = vao
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.record("DeleteVertexArray(%d)", vao)
	g.remove(vao, kindVertexArray)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray(%d)", index)
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.record("VertexAttribPointer(%d, %d, 0x%x, %t, %d, %d)", index, size, xtype, normalized, stride, offset)
}

func (g *GL) CreateFramebuffer() uint32 {
	id := g.create(kindFramebuffer)
	g.record("CreateFramebuffer()=%d", id)
	return id
}

func (g *GL) BindFramebuffer(target, fbo uint32) {
	g.record("BindFramebuffer(0x%x, %d)", target, fbo)
	if target == renderer.FRAMEBUFFER {
		g.bound[renderer.READ_FRAMEBUFFER] = fbo
		g.bound[renderer.DRAW_FRAMEBUFFER] = fbo
		return
	}
	g.bound[target] = fbo
}

func (g *GL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	g.record("FramebufferTexture2D(0x%x, 0x%x, 0x%x, %d, %d)", target, attachment, texTarget, texture, level)
	if o := g.lookup(g.bound[renderer.DRAW_FRAMEBUFFER], kindFramebuffer); o != nil {
		o.params[attachment] = int32(texture)
	}
}

// Attachment returns the texture attached to fbo at attachment.
func (g *GL) Attachment(fbo, attachment uint32) uint32 {
	if o := g.lookup(fbo, kindFramebuffer); o != nil {
		return uint32(o.params[attachment])
	}
	return 0
}

func (g *GL) CheckFramebufferStatus(target uint32) uint32 {
	return g.FramebufferStatus
}

func (g *GL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	g.record("BlitFramebuffer")
	g.Blits = append(g.Blits, Blit{
		Src:    [4]int32{srcX0, srcY0, srcX1, srcY1},
		Dst:    [4]int32{dstX0, dstY0, dstX1, dstY1},
		Read:   g.bound[renderer.READ_FRAMEBUFFER],
		Mask:   mask,
		Filter: filter,
	})
}

func (g *GL) DeleteFramebuffer(fbo uint32) {
	g.record("DeleteFramebuffer(%d)", fbo)
	g.remove(fbo, kindFramebuffer)
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.record("ClearColor(%g, %g, %g, %g)", r, gr, b, a)
}

func (g *GL) Clear(mask uint32) {
	g.record("Clear(0x%x)", mask)
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.record("DrawElements(0x%x, %d, 0x%x, %d)", mode, count, xtype, offset)
	g.Draws = append(g.Draws, Draw{
		Mode:    mode,
		Count:   count,
		Type:    xtype,
		Offset:  offset,
		Program: g.program,
		VAO:     g.vao,
	})
}
