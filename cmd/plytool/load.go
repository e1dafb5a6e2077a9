package main

import (
	"errors"
	"fmt"

	"github.com/Faultbox/plyview/pkg/mesh"
	"github.com/Faultbox/plyview/pkg/ply"
)

// errorClass names the failure class of a load error.
func errorClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ply.ErrTruncated):
		return "truncated"
	case errors.Is(err, ply.ErrMalformedHeader):
		return "malformed header"
	case errors.Is(err, ply.ErrMalformedBody):
		return "malformed body"
	case errors.Is(err, mesh.ErrSchemaMismatch):
		return "schema mismatch"
	case errors.Is(err, mesh.ErrMalformedFace):
		return "malformed face"
	default:
		return "io"
	}
}

// loadMesh parses a PLY file and assembles its vertex buffer.
func loadMesh(path string) (*ply.Model, *mesh.Buffer, error) {
	m, err := ply.ParseFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	buf, err := mesh.Assemble(m)
	if err != nil {
		return m, nil, fmt.Errorf("assembling %s: %w", path, err)
	}
	return m, buf, nil
}
