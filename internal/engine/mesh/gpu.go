package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/minirace/internal/engine/scenegraph"
)

// GPU is uploaded geometry. It implements scenegraph.Mesh.
type GPU struct {
	vao, vbo, ebo uint32
	indexCount    int32
	Bounds        Bounds
}

// Upload copies d into new GL buffers. A GL context must be current.
func Upload(d *Data) *GPU {
	m := &GPU{indexCount: int32(len(d.Indices)), Bounds: d.Bounds}
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(d.Vertices)*vertexSize, unsafe.Pointer(&d.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, unsafe.Pointer(&d.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// Draw issues one indexed draw call with the given topology.
func (m *GPU) Draw(mode scenegraph.DrawMode) {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(glMode(mode), m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete frees the GL buffers.
func (m *GPU) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		m.vao, m.vbo, m.ebo = 0, 0, 0
	}
}

func glMode(mode scenegraph.DrawMode) uint32 {
	switch mode {
	case scenegraph.Lines:
		return gl.LINES
	case scenegraph.LineStrip:
		return gl.LINE_STRIP
	case scenegraph.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
