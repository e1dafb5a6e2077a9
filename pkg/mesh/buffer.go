// Package mesh builds flat, render-ready vertex buffers from PLY models and
// procedural shapes.
//
// Every buffer uses the same interleaved row layout:
//
//	[ x, y, z, nx, ny, nz, fnx, fny, fnz, s, t ]
//
// one row per triangle corner, with no index buffer.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Row layout, in float32 fields.
const (
	Stride           = 11
	PositionOffset   = 0
	NormalOffset     = 3
	FaceNormalOffset = 6
	TexCoordOffset   = 9
)

// FloatSize is the size of one field in bytes.
const FloatSize = 4

// Row layout, in bytes.
const (
	StrideBytes           = Stride * FloatSize
	PositionOffsetBytes   = PositionOffset * FloatSize
	NormalOffsetBytes     = NormalOffset * FloatSize
	FaceNormalOffsetBytes = FaceNormalOffset * FloatSize
	TexCoordOffsetBytes   = TexCoordOffset * FloatSize
)

// Buffer is an interleaved vertex buffer owned by the caller.
type Buffer struct {
	Data     []float32 // len(Data) == Vertices*Stride
	Vertices int       // Number of rows
}

func newBuffer(vertices int) *Buffer {
	return &Buffer{
		Data:     make([]float32, 0, vertices*Stride),
		Vertices: vertices,
	}
}

// Len returns the number of rows.
func (b *Buffer) Len() int {
	return b.Vertices
}

// Triangles returns the number of triangles.
func (b *Buffer) Triangles() int {
	return b.Vertices / 3
}

// Row returns row i as a slice into the buffer.
func (b *Buffer) Row(i int) []float32 {
	return b.Data[i*Stride : (i+1)*Stride]
}

// Position returns the position of row i.
func (b *Buffer) Position(i int) mgl32.Vec3 {
	return b.vec3(i, PositionOffset)
}

// NormalAt returns the face normal of row i when faceted is set, otherwise
// the per-vertex normal.
func (b *Buffer) NormalAt(i int, faceted bool) mgl32.Vec3 {
	if faceted {
		return b.vec3(i, FaceNormalOffset)
	}
	return b.vec3(i, NormalOffset)
}

// TexCoord returns the texture coordinate of row i.
func (b *Buffer) TexCoord(i int) mgl32.Vec2 {
	r := b.Row(i)
	return mgl32.Vec2{r[TexCoordOffset], r[TexCoordOffset+1]}
}

func (b *Buffer) vec3(i, offset int) mgl32.Vec3 {
	r := b.Row(i)
	return mgl32.Vec3{r[offset], r[offset+1], r[offset+2]}
}

// Bounds returns the axis-aligned bounding box of all positions.
// An empty buffer has zero bounds.
func (b *Buffer) Bounds() (min, max mgl32.Vec3) {
	if b.Vertices == 0 {
		return
	}
	min = b.Position(0)
	max = min
	for i := 1; i < b.Vertices; i++ {
		p := b.Position(i)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// appendRow appends one row to the buffer.
func (b *Buffer) appendRow(pos, normal, faceNormal mgl32.Vec3, tex mgl32.Vec2) {
	b.Data = append(b.Data,
		pos[0], pos[1], pos[2],
		normal[0], normal[1], normal[2],
		faceNormal[0], faceNormal[1], faceNormal[2],
		tex[0], tex[1],
	)
}
