package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/plyview/pkg/ply"
)

// Assembly errors.
var (
	ErrSchemaMismatch = errors.New("model does not match the mesh schema")
	ErrMalformedFace  = errors.New("malformed face")
)

// Element and property names the assembler requires.
const (
	VertexElement = "vertex"
	FaceElement   = "face"
	FaceIndices   = "vertex_indices"
)

// VertexProperties are the scalar properties required on VertexElement.
var VertexProperties = []string{"x", "y", "z", "nx", "ny", "nz", "s", "t"}

// vertex is one materialised vertex instance.
type vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	TexCoord mgl64.Vec2
}

// Assemble converts a parsed model into a flat buffer with per-face normals.
// The model is only read. Any schema or face problem fails the whole mesh.
func Assemble(m *ply.Model) (*Buffer, error) {
	if err := checkSchema(m); err != nil {
		return nil, err
	}

	verts, err := readVertices(m)
	if err != nil {
		return nil, err
	}

	faceCount := m.Count(FaceElement)
	buf := newBuffer(faceCount * 3)

	for f := 0; f < faceCount; f++ {
		indices, ok := m.ListValue(FaceElement, f, FaceIndices)
		if !ok {
			return nil, fmt.Errorf("%w: face %d has no %s", ErrMalformedFace, f, FaceIndices)
		}
		if len(indices) != 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices, only triangles are supported",
				ErrMalformedFace, f, len(indices))
		}

		var corners [3]vertex
		for i, raw := range indices {
			idx, err := vertexIndex(raw, len(verts))
			if err != nil {
				return nil, fmt.Errorf("%w: face %d: %v", ErrMalformedFace, f, err)
			}
			corners[i] = verts[idx]
		}

		faceNormal := FaceNormal(corners[0].Position, corners[1].Position, corners[2].Position)
		fn := vec3f(faceNormal)

		for _, c := range corners {
			buf.appendRow(vec3f(c.Position), vec3f(c.Normal), fn,
				mgl32.Vec2{float32(c.TexCoord[0]), float32(c.TexCoord[1])})
		}
	}

	return buf, nil
}

// FaceNormal returns cross(p2-p1, p3-p2). The result is not normalised: its
// length is twice the triangle's area and its sign follows the winding order.
func FaceNormal(p1, p2, p3 mgl64.Vec3) mgl64.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p2))
}

func checkSchema(m *ply.Model) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrSchemaMismatch)
	}
	for _, name := range []string{VertexElement, FaceElement} {
		if !m.HasElement(name) {
			return fmt.Errorf("%w: missing element %q", ErrSchemaMismatch, name)
		}
	}

	scalars := make(map[string]bool)
	for _, p := range m.ScalarProperties(VertexElement) {
		scalars[p] = true
	}
	for _, p := range VertexProperties {
		if !scalars[p] {
			return fmt.Errorf("%w: %s lacks scalar property %q", ErrSchemaMismatch, VertexElement, p)
		}
	}

	hasIndices := false
	for _, p := range m.ListProperties(FaceElement) {
		if p == FaceIndices {
			hasIndices = true
		}
	}
	if !hasIndices {
		return fmt.Errorf("%w: %s lacks list property %q", ErrSchemaMismatch, FaceElement, FaceIndices)
	}
	return nil
}

func readVertices(m *ply.Model) ([]vertex, error) {
	n := m.Count(VertexElement)
	verts := make([]vertex, n)

	var vals [8]float64
	for v := 0; v < n; v++ {
		for k, p := range VertexProperties {
			x, ok := m.ScalarValue(VertexElement, v, p)
			if !ok {
				return nil, fmt.Errorf("%w: vertex %d lacks %q", ErrSchemaMismatch, v, p)
			}
			vals[k] = x
		}
		verts[v] = vertex{
			Position: mgl64.Vec3{vals[0], vals[1], vals[2]},
			Normal:   mgl64.Vec3{vals[3], vals[4], vals[5]},
			TexCoord: mgl64.Vec2{vals[6], vals[7]},
		}
	}
	return verts, nil
}

// vertexIndex validates a face index read as a float.
func vertexIndex(raw float64, count int) (int, error) {
	if raw != math.Trunc(raw) || raw < 0 || raw >= float64(count) {
		return 0, fmt.Errorf("vertex index %v out of range [0, %d)", raw, count)
	}
	return int(raw), nil
}

func vec3f(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
