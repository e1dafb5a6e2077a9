package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDimensions is returned for non-positive grid sizes, or sizes
// whose vertex count exceeds MaxGridVertices.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// MaxGridVertices bounds the grid row count to a GL draw count.
const MaxGridVertices = math.MaxInt32

// CellSize is the edge length of one grid cell in world units.
const CellSize = 2

// gridCorners are the two triangles of a unit cell. The same pattern is used
// for texture coordinates, so every cell maps the full texture.
var gridCorners = [6]mgl32.Vec2{
	{0, 0}, {1, 1}, {0, 1},
	{0, 0}, {1, 0}, {1, 1},
}

// Up is the ground plane normal.
var Up = mgl32.Vec3{0, 0, 1}

// Grid returns a flat ground plane on z=0 centered at the origin, spanning
// [-width, width] x [-height, height] with width*height cells of CellSize.
// Output depends only on the dimensions.
func Grid(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxGridVertices/len(gridCorners)/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d vertices", ErrInvalidDimensions, width, height, MaxGridVertices)
	}

	buf := newBuffer(width * height * len(gridCorners))
	for cy := 0; cy < height; cy++ {
		y0 := float32(CellSize*cy - height)
		for cx := 0; cx < width; cx++ {
			x0 := float32(CellSize*cx - width)
			for _, c := range gridCorners {
				pos := mgl32.Vec3{x0 + CellSize*c[0], y0 + CellSize*c[1], 0}
				buf.appendRow(pos, Up, Up, c)
			}
		}
	}
	return buf, nil
}
