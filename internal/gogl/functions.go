// Package gogl implements renderer.Functions on top of go-gl's
// OpenGL 3.3 core bindings.
package gogl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/gokview/internal/renderer"
	"github.com/pkg/errors"
)

var _ renderer.Functions = (*Functions)(nil)

type Functions struct{}

// New loads the GL entry points for the context current on this thread.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gl.Init")
	}
	return &Functions{}, nil
}

func (f *Functions) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (f *Functions) CreateShader(typ uint32) uint32 {
	return gl.CreateShader(typ)
}

func (f *Functions) ShaderSource(shader uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (f *Functions) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (f *Functions) GetShaderi(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (f *Functions) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (f *Functions) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (f *Functions) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (f *Functions) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (f *Functions) GetProgrami(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (f *Functions) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (f *Functions) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (f *Functions) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (f *Functions) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (f *Functions) Uniform1i(location, v int32) {
	gl.Uniform1i(location, v)
}

func (f *Functions) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (f *Functions) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (f *Functions) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

func (f *Functions) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (f *Functions) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (f *Functions) GetTexParameteri(target, pname uint32) int32 {
	var v int32
	gl.GetTexParameteriv(target, pname, &v)
	return v
}

func (f *Functions) PixelStorei(pname uint32, param int32) {
	gl.PixelStorei(pname, param)
}

func (f *Functions) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pix []byte) {
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr)
}

func (f *Functions) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (f *Functions) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (f *Functions) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (f *Functions) BufferData(target uint32, data []byte, usage uint32) {
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (f *Functions) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (f *Functions) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (f *Functions) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (f *Functions) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (f *Functions) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (f *Functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (f *Functions) CreateFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (f *Functions) BindFramebuffer(target, fbo uint32) {
	gl.BindFramebuffer(target, fbo)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (f *Functions) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (f *Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *Functions) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (f *Functions) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (f *Functions) Clear(mask uint32) {
	gl.Clear(mask)
}

func (f *Functions) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}
