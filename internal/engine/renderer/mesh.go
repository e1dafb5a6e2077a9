package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/plyview/pkg/mesh"
)

// Attribute locations shared by all programs.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
)

// Mesh is a mesh.Buffer uploaded to the GPU.
type Mesh struct {
	vao, vbo uint32
	count    int32
	faceted  bool
}

// UploadMesh copies buf into a new VAO/VBO. Attributes point at the
// buffer's row layout; the normal attribute starts at the per-vertex normal.
func UploadMesh(buf *mesh.Buffer) *Mesh {
	m := &Mesh{count: int32(buf.Vertices)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(buf.Data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(buf.Data)*mesh.FloatSize, gl.Ptr(buf.Data), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, mesh.StrideBytes, mesh.PositionOffsetBytes)

	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, mesh.StrideBytes, mesh.NormalOffsetBytes)

	gl.EnableVertexAttribArray(attribTexCoord)
	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, mesh.StrideBytes, mesh.TexCoordOffsetBytes)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

// SetFaceted points the normal attribute at the face normal or the
// per-vertex normal columns.
func (m *Mesh) SetFaceted(faceted bool) {
	if m.faceted == faceted {
		return
	}
	m.faceted = faceted

	offset := mesh.NormalOffsetBytes
	if faceted {
		offset = mesh.FaceNormalOffsetBytes
	}
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, mesh.StrideBytes, uintptr(offset))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw issues the triangle draw call.
func (m *Mesh) Draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Delete frees GPU resources.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	m.vao, m.vbo, m.count = 0, 0, 0
}

// Lines is a set of line segments, two xyz points each, on the GPU.
type Lines struct {
	vao, vbo uint32
	count    int32
}

// UploadLines copies points into a new VAO/VBO.
func UploadLines(points []float32) *Lines {
	l := &Lines{count: int32(len(points) / 3)}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)

	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	if len(points) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(points)*mesh.FloatSize, gl.Ptr(points), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, 3*mesh.FloatSize, 0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return l
}

// Draw issues the line draw call.
func (l *Lines) Draw() {
	if l.count == 0 {
		return
	}
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.count)
	gl.BindVertexArray(0)
}

// Delete frees GPU resources.
func (l *Lines) Delete() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
	}
	l.vao, l.vbo, l.count = 0, 0, 0
}
