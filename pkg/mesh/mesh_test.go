package mesh

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/plyview/pkg/ply"
)

const vertexHeader = "ply\n" +
	"format ascii 1.0\n" +
	"element vertex %d\n" +
	"property float x\n" +
	"property float y\n" +
	"property float z\n" +
	"property float nx\n" +
	"property float ny\n" +
	"property float nz\n" +
	"property float s\n" +
	"property float t\n"

// makeModel builds a PLY model with the full vertex schema.
func makeModel(t *testing.T, verts []string, faces []string) *ply.Model {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Replace(vertexHeader, "%d", strconv.Itoa(len(verts)), 1))
	b.WriteString("element face " + strconv.Itoa(len(faces)) + "\n")
	b.WriteString("property list uchar int vertex_indices\n")
	b.WriteString("end_header\n")
	for _, v := range verts {
		b.WriteString(v + "\n")
	}
	for _, f := range faces {
		b.WriteString(f + "\n")
	}
	return mustParse(t, b.String())
}

func mustParse(t *testing.T, s string) *ply.Model {
	t.Helper()
	m, err := ply.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("ply.Parse() error = %v", err)
	}
	return m
}

var triangleVerts = []string{
	"0 0 0  0 0 1  0 0",
	"2 0 0  0 0 1  1 0",
	"0 3 0  0 0 1  0 1",
}

func TestAssemble_SingleTriangle(t *testing.T) {
	m := makeModel(t, triangleVerts, []string{"3 0 1 2"})

	buf, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if buf.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", buf.Len())
	}
	if len(buf.Data) != 3*Stride {
		t.Fatalf("expected %d floats, got %d", 3*Stride, len(buf.Data))
	}

	// cross((2,0,0)-(0,0,0), (0,3,0)-(2,0,0)) = cross((2,0,0), (-2,3,0)) = (0,0,6)
	want := mgl32.Vec3{0, 0, 6}
	for i := 0; i < 3; i++ {
		if got := buf.NormalAt(i, true); got != want {
			t.Errorf("row %d face normal = %v, want %v", i, got, want)
		}
	}

	expected := [][Stride]float32{
		{0, 0, 0, 0, 0, 1, 0, 0, 6, 0, 0},
		{2, 0, 0, 0, 0, 1, 0, 0, 6, 1, 0},
		{0, 3, 0, 0, 0, 1, 0, 0, 6, 0, 1},
	}
	for i, row := range expected {
		got := buf.Row(i)
		for k := range row {
			if got[k] != row[k] {
				t.Errorf("row %d field %d = %v, want %v", i, k, got[k], row[k])
			}
		}
	}
}

func TestAssemble_WindingFlipsNormal(t *testing.T) {
	m := makeModel(t, triangleVerts, []string{"3 0 2 1"})

	buf, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if got, want := buf.NormalAt(0, true), (mgl32.Vec3{0, 0, -6}); got != want {
		t.Errorf("face normal = %v, want %v", got, want)
	}
	// Rows follow the listed order.
	if got, want := buf.Position(1), (mgl32.Vec3{0, 3, 0}); got != want {
		t.Errorf("row 1 position = %v, want %v", got, want)
	}
}

func TestAssemble_SharedVerticesDuplicated(t *testing.T) {
	verts := []string{
		"0 0 0  0 0 1  0 0",
		"1 0 0  0 0 1  1 0",
		"1 1 0  0 0 1  1 1",
		"0 1 0  0 0 1  0 1",
	}
	m := makeModel(t, verts, []string{"3 0 1 2", "3 0 2 3"})

	buf, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if buf.Len() != 6 || buf.Triangles() != 2 {
		t.Fatalf("expected 6 rows / 2 triangles, got %d / %d", buf.Len(), buf.Triangles())
	}
	if buf.Position(3) != buf.Position(0) {
		t.Error("expected vertex 0 to be repeated for the second face")
	}
}

func TestAssemble_EmptyFaces(t *testing.T) {
	m := makeModel(t, triangleVerts, nil)
	buf, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if buf.Len() != 0 || len(buf.Data) != 0 {
		t.Errorf("expected empty buffer, got %d rows", buf.Len())
	}
}

func TestAssemble_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no elements",
			input: "ply\nformat ascii 1.0\nend_header\n",
		},
		{
			name:  "no face element",
			input: strings.Replace(vertexHeader, "%d", "0", 1) + "end_header\n",
		},
		{
			name:  "no vertex element",
			input: "ply\nformat ascii 1.0\nelement face 0\nproperty list uchar int vertex_indices\nend_header\n",
		},
		{
			name: "vertex lacks t",
			input: "ply\nformat ascii 1.0\nelement vertex 0\n" +
				"property float x\nproperty float y\nproperty float z\n" +
				"property float nx\nproperty float ny\nproperty float nz\nproperty float s\n" +
				"element face 0\nproperty list uchar int vertex_indices\nend_header\n",
		},
		{
			name: "t declared as list",
			input: "ply\nformat ascii 1.0\nelement vertex 0\n" +
				"property float x\nproperty float y\nproperty float z\n" +
				"property float nx\nproperty float ny\nproperty float nz\nproperty float s\n" +
				"property list uchar float t\n" +
				"element face 0\nproperty list uchar int vertex_indices\nend_header\n",
		},
		{
			name: "face lacks vertex_indices",
			input: strings.Replace(vertexHeader, "%d", "0", 1) +
				"element face 0\nproperty list uchar int vertex_index\nend_header\n",
		},
		{
			name: "vertex_indices declared as scalar",
			input: strings.Replace(vertexHeader, "%d", "0", 1) +
				"element face 0\nproperty int vertex_indices\nend_header\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Assemble(mustParse(t, tt.input))
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Errorf("expected ErrSchemaMismatch, got %v", err)
			}
			if buf != nil {
				t.Error("expected no buffer")
			}
		})
	}

	if _, err := Assemble(nil); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("nil model: expected ErrSchemaMismatch, got %v", err)
	}
}

func TestAssemble_MalformedFace(t *testing.T) {
	tests := []struct {
		name  string
		faces []string
	}{
		{"quad", []string{"4 0 1 2 0"}},
		{"segment", []string{"2 0 1"}},
		{"empty", []string{"0"}},
		{"index equals vertex count", []string{"3 0 1 3"}},
		{"index past vertex count", []string{"3 0 1 7"}},
		{"negative index", []string{"3 0 -1 2"}},
		{"fractional index", []string{"3 0 1.5 2"}},
		{"bad face after good one", []string{"3 0 1 2", "3 2 1 9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Assemble(makeModel(t, triangleVerts, tt.faces))
			if !errors.Is(err, ErrMalformedFace) {
				t.Errorf("expected ErrMalformedFace, got %v", err)
			}
			if buf != nil {
				t.Error("expected no buffer")
			}
		})
	}
}

func TestAssemble_DoesNotMutateModel(t *testing.T) {
	m := makeModel(t, triangleVerts, []string{"3 0 1 2"})
	if _, err := Assemble(m); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	x, _ := m.ScalarValue("vertex", 1, "x")
	idx, _ := m.ListValue("face", 0, "vertex_indices")
	if x != 2 || len(idx) != 3 {
		t.Errorf("model changed: x=%v indices=%v", x, idx)
	}
}

func TestFaceNormal(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 mgl64.Vec3
		want       mgl64.Vec3
	}{
		{"unit xy ccw", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"unit xy cw", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{"scaled", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 0, 2}, mgl64.Vec3{4, 0, 0}},
		{"degenerate", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}, mgl64.Vec3{3, 3, 3}, mgl64.Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FaceNormal(tt.p1, tt.p2, tt.p3); got != tt.want {
				t.Errorf("FaceNormal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFaceNormal_MagnitudeIsTwiceArea(t *testing.T) {
	// Right triangle with legs 3 and 4: area 6.
	n := FaceNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{0, 4, 0})
	if got := n.Len(); math.Abs(got-12) > 1e-12 {
		t.Errorf("|normal| = %v, want 12", got)
	}
}

func TestGrid_Counts(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{1, 1},
		{2, 2},
		{3, 5},
		{10, 10},
	}

	for _, tt := range tests {
		buf, err := Grid(tt.w, tt.h)
		if err != nil {
			t.Fatalf("Grid(%d, %d) error = %v", tt.w, tt.h, err)
		}
		want := tt.w * tt.h * 6
		if buf.Len() != want {
			t.Errorf("Grid(%d, %d) rows = %d, want %d", tt.w, tt.h, buf.Len(), want)
		}
		if len(buf.Data) != want*Stride {
			t.Errorf("Grid(%d, %d) floats = %d, want %d", tt.w, tt.h, len(buf.Data), want*Stride)
		}
	}
}

func TestGrid_TwoByTwo(t *testing.T) {
	buf, err := Grid(2, 2)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if buf.Len() != 24 {
		t.Fatalf("expected 24 rows, got %d", buf.Len())
	}
	for i := 0; i < buf.Len(); i++ {
		if n := buf.NormalAt(i, false); n != Up {
			t.Errorf("row %d normal = %v, want %v", i, n, Up)
		}
		if n := buf.NormalAt(i, true); n != Up {
			t.Errorf("row %d face normal = %v, want %v", i, n, Up)
		}
		if z := buf.Position(i).Z(); z != 0 {
			t.Errorf("row %d z = %v, want 0", i, z)
		}
	}

	min, max := buf.Bounds()
	if min != (mgl32.Vec3{-2, -2, 0}) || max != (mgl32.Vec3{2, 2, 0}) {
		t.Errorf("bounds = %v..%v, want (-2,-2,0)..(2,2,0)", min, max)
	}

	// First cell starts at (-2, -2); second triangle corner 1 is (+2, 0) in cell space.
	first := buf.Row(0)
	if first[0] != -2 || first[1] != -2 {
		t.Errorf("first row position = (%v, %v), want (-2, -2)", first[0], first[1])
	}
	if p := buf.Position(4); p != (mgl32.Vec3{0, -2, 0}) {
		t.Errorf("row 4 position = %v, want (0,-2,0)", p)
	}
}

func TestGrid_TexCoordPattern(t *testing.T) {
	buf, err := Grid(3, 2)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	for i := 0; i < buf.Len(); i++ {
		want := gridCorners[i%6]
		if got := buf.TexCoord(i); got != want {
			t.Errorf("row %d texcoord = %v, want %v", i, got, want)
		}
	}
}

func TestGrid_OddDimensionsSpanPlane(t *testing.T) {
	buf, err := Grid(3, 1)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	min, max := buf.Bounds()
	if min != (mgl32.Vec3{-3, -1, 0}) || max != (mgl32.Vec3{3, 1, 0}) {
		t.Errorf("bounds = %v..%v, want (-3,-1,0)..(3,1,0)", min, max)
	}
}

func TestGrid_Deterministic(t *testing.T) {
	a, _ := Grid(4, 3)
	b, _ := Grid(4, 3)
	if len(a.Data) != len(b.Data) {
		t.Fatal("length mismatch")
	}
	for i := range a.Data {
		if math.Float32bits(a.Data[i]) != math.Float32bits(b.Data[i]) {
			t.Fatalf("field %d differs: %v vs %v", i, a.Data[i], b.Data[i])
		}
	}
}

func TestGrid_InvalidDimensions(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{0, 1},
		{1, 0},
		{-2, 2},
		{math.MaxInt, math.MaxInt},
		{1 << 20, 1 << 20},
		{MaxGridVertices, 1},
	}
	for _, tt := range tests {
		if _, err := Grid(tt.w, tt.h); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Grid(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
		}
	}
}

func TestNormalLines(t *testing.T) {
	m := makeModel(t, triangleVerts, []string{"3 0 1 2"})
	buf, err := Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	lines := NormalLines(buf, true, 0.5)
	if len(lines) != 3*6 {
		t.Fatalf("expected %d floats, got %d", 3*6, len(lines))
	}
	// Face normal (0,0,6) is normalised before scaling.
	tip := mgl32.Vec3{lines[9], lines[10], lines[11]}
	if want := (mgl32.Vec3{2, 0, 0.5}); !tip.ApproxEqual(want) {
		t.Errorf("second tip = %v, want %v", tip, want)
	}
}

func TestNormalLines_SkipsZeroNormals(t *testing.T) {
	verts := []string{
		"0 0 0  0 0 0  0 0",
		"1 1 1  0 0 0  0 0",
		"2 2 2  0 0 0  0 0",
	}
	buf, err := Assemble(makeModel(t, verts, []string{"3 0 1 2"}))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if got := NormalLines(buf, false, 1); len(got) != 0 {
		t.Errorf("expected no smooth-normal lines, got %d floats", len(got))
	}
	if got := NormalLines(buf, true, 1); len(got) != 0 {
		t.Errorf("expected no lines for degenerate face, got %d floats", len(got))
	}
}

func TestLayoutOffsets(t *testing.T) {
	if StrideBytes != 44 {
		t.Errorf("StrideBytes = %d, want 44", StrideBytes)
	}
	if TexCoordOffset+2 != Stride {
		t.Error("texcoord must be the last attribute")
	}
	if FaceNormalOffsetBytes != 24 || TexCoordOffsetBytes != 36 {
		t.Errorf("byte offsets = %d, %d", FaceNormalOffsetBytes, TexCoordOffsetBytes)
	}
}
