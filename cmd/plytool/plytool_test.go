package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/raster"
	"github.com/Faultbox/plyview/pkg/mesh"
	"github.com/Faultbox/plyview/pkg/ply"
)

const trianglePLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
property float s
property float t
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1 0 0
1 0 0 0 0 1 1 0
0 1 0 0 0 1 0 1
3 0 1 2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestErrorClass(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"valid", trianglePLY, "ok"},
		{"bad magic", "plx\n", "malformed header"},
		{"truncated header", "ply\nformat ascii 1.0\n", "truncated"},
		{"bad body", strings.Replace(trianglePLY, "1 0 0 0 0 1 1 0", "1 0 zero 0 0 1 1 0", 1), "malformed body"},
		{"truncated body", strings.TrimSuffix(trianglePLY, "3 0 1 2\n"), "truncated"},
		{"no faces", strings.Replace(trianglePLY, "element face 1", "element edge 1", 1), "schema mismatch"},
		{"quad", strings.Replace(trianglePLY, "3 0 1 2", "4 0 1 2 2", 1), "malformed face"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadMesh(writeFile(t, "m.ply", tt.content))
			if got := errorClass(err); got != tt.want {
				t.Errorf("errorClass() = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestErrorClassIO(t *testing.T) {
	_, _, err := loadMesh(filepath.Join(t.TempDir(), "missing.ply"))
	if got := errorClass(err); got != "io" {
		t.Errorf("errorClass() = %q, want io", got)
	}
}

func TestWriteBuffer(t *testing.T) {
	m, err := ply.Parse(strings.NewReader(trianglePLY))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	buf, err := mesh.Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	var out bytes.Buffer
	if err := writeBuffer(&out, buf); err != nil {
		t.Fatalf("writeBuffer() error = %v", err)
	}

	raw := out.Bytes()
	if len(raw) != buf.Vertices*mesh.StrideBytes {
		t.Fatalf("wrote %d bytes, want %d", len(raw), buf.Vertices*mesh.StrideBytes)
	}
	// Row 1, x.
	off := 1*mesh.StrideBytes + mesh.PositionOffsetBytes
	if got := math.Float32frombits(binary.LittleEndian.Uint32(raw[off:])); got != 1 {
		t.Errorf("row 1 x = %f, want 1", got)
	}
}

func TestWriteRowsLimit(t *testing.T) {
	buf, err := mesh.Grid(1, 1)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}

	var out bytes.Buffer
	if err := writeRows(&out, buf, 2); err != nil {
		t.Fatalf("writeRows() error = %v", err)
	}
	if !strings.Contains(out.String(), "... 4 more rows") {
		t.Errorf("expected truncation note, got:\n%s", out.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, in, format, want string
	}{
		{"out", "models/chicken.ply", "webp", filepath.Join("out", "chicken.webp")},
		{".", "CUBE.PLY", "png", "CUBE.png"},
		{"o", "mesh.txt", "png", filepath.Join("o", "mesh.txt.png")},
	}
	for _, tt := range tests {
		if got := outputPath(tt.dir, tt.in, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.dir, tt.in, tt.format, got, tt.want)
		}
	}
}

func TestRunRenderJobs(t *testing.T) {
	jobs := make([]renderJob, 10)
	for i := range jobs {
		jobs[i].Input = fmt.Sprintf("m%d.ply", i)
	}

	var inFlight, peak atomic.Int32
	runRenderJobs(context.Background(), jobs, 3, func(j *renderJob) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer inFlight.Add(-1)
		if j.Input == "m4.ply" {
			return errors.New("boom")
		}
		return nil
	})

	if peak.Load() > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak.Load())
	}
	for i, j := range jobs {
		if (j.Err != nil) != (i == 4) {
			t.Errorf("job %d err = %v", i, j.Err)
		}
	}
}

func TestRunRenderJobsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]renderJob, 3)
	var calls atomic.Int32
	runRenderJobs(ctx, jobs, 1, func(*renderJob) error {
		calls.Add(1)
		return nil
	})

	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancel", calls.Load())
	}
	for i, j := range jobs {
		if !errors.Is(j.Err, context.Canceled) {
			t.Errorf("job %d err = %v, want context.Canceled", i, j.Err)
		}
	}
}

func TestRenderOne(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, "tri.ply", trianglePLY)
	job := &renderJob{Input: in, Output: filepath.Join(dir, "tri.png")}

	opts := raster.DefaultOptions()
	opts.Size = 16
	opts.Supersample = 1
	if err := renderOne(job, opts, true); err != nil {
		t.Fatalf("renderOne() error = %v", err)
	}
	if _, err := os.Stat(job.Output); err != nil {
		t.Errorf("expected output at %s: %v", job.Output, err)
	}
}

func TestRunCommandExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ply")
	bad := filepath.Join(dir, "bad.ply")
	if err := os.WriteFile(good, []byte(trianglePLY), 0644); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}
	if err := os.WriteFile(bad, []byte("ply\nformat ascii 1.0\n"), 0644); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}

	tests := []struct {
		name    string
		command string
		args    []string
		want    int
	}{
		{"validate ok", "validate", []string{good}, 0},
		{"validate failure", "check", []string{good, bad}, 1},
		{"missing args", "info", nil, 1},
		{"unknown command", "frobnicate", nil, 1},
		{"export", "export", []string{"-o", filepath.Join(dir, "out.bin"), good}, 0},
	}

	cfg := config.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runCommand(cfg, tt.command, tt.args); got != tt.want {
				t.Errorf("runCommand(%q) = %d, want %d", tt.command, got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "out.bin")); err != nil {
		t.Errorf("export output missing: %v", err)
	}
}
