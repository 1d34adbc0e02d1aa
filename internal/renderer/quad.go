package renderer

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Quad is the full-screen triangle fan used by the invert pass.
type Quad struct {
	Vertices [4]mgl32.Vec2
	Indices  [4]uint32

	VAO uint32
	VBO uint32
	IBO uint32
}

func unitQuad() Quad {
	return Quad{
		Vertices: [4]mgl32.Vec2{
			{-1, -1},
			{1, -1},
			{1, 1},
			{-1, 1},
		},
		Indices: [4]uint32{0, 1, 2, 3},
	}
}

// NewQuad uploads the unit quad once and binds its positions to attrib.
func NewQuad(f Functions, attrib uint32) *Quad {
	q := unitQuad()

	q.VAO = f.CreateVertexArray()
	f.BindVertexArray(q.VAO)

	q.VBO = f.CreateBuffer()
	f.BindBuffer(ARRAY_BUFFER, q.VBO)
	f.BufferData(ARRAY_BUFFER, bytesOf(q.Vertices[:]), STATIC_DRAW)
	f.EnableVertexAttribArray(attrib)
	f.VertexAttribPointer(attrib, 2, FLOAT, false, int32(unsafe.Sizeof(mgl32.Vec2{})), 0)

	q.IBO = f.CreateBuffer()
	f.BindBuffer(ELEMENT_ARRAY_BUFFER, q.IBO)
	f.BufferData(ELEMENT_ARRAY_BUFFER, bytesOf(q.Indices[:]), STATIC_DRAW)

	f.BindVertexArray(0)
	return &q
}

func (q *Quad) Draw(f Functions) {
	f.BindVertexArray(q.VAO)
	f.DrawElements(TRIANGLE_FAN, int32(len(q.Indices)), UNSIGNED_INT, 0)
	f.BindVertexArray(0)
}

func (q *Quad) Release(f Functions) {
	if q == nil {
		return
	}
	if q.IBO != 0 {
		f.DeleteBuffer(q.IBO)
		q.IBO = 0
	}
	if q.VBO != 0 {
		f.DeleteBuffer(q.VBO)
		q.VBO = 0
	}
	if q.VAO != 0 {
		f.DeleteVertexArray(q.VAO)
		q.VAO = 0
	}
}

func bytesOf[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
