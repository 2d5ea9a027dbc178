// Package geometry builds vertex positions, texture coordinates and triangle
// indices for the procedural plane and box meshes.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshanim/pkg/math"
)

var (
	// ErrInvalidGrid is returned when a plane has fewer than 2 vertices along an axis.
	ErrInvalidGrid = errors.New("grid needs at least 2 vertices per axis")
	// ErrInvalidSize is returned for non-positive (or NaN) physical dimensions.
	ErrInvalidSize = errors.New("dimensions must be positive")
)

// Size is the physical width and height of a plane.
type Size struct {
	Width, Height float32
}

// Grid is the number of vertices along each axis of a plane.
type Grid struct {
	Columns, Rows int
}

// Count returns the number of vertices in the grid.
func (g Grid) Count() int {
	return g.Columns * g.Rows
}

// Index returns the flattened row-major index of (col, row).
func (g Grid) Index(col, row int) int {
	return row*g.Columns + col
}

// Validate reports whether the grid can be triangulated.
func (g Grid) Validate() error {
	if g.Columns < 2 || g.Rows < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, g.Columns, g.Rows)
	}
	return nil
}

// Plane holds the parts of a subdivided plane.
type Plane struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
}

// Box holds the parts of a cuboid.
type Box struct {
	Positions []math.Vec3
	Indices   []uint32
}

// BoxCorners is the number of vertices in a box.
const BoxCorners = 8

// boxIndices lists 12 outward-facing triangles over the corner order produced
// by BoxParts: bottom 0-3 then top 4-7, each ring starting at (-x, -z).
var boxIndices = [36]uint32{
	// bottom
	0, 1, 3,
	3, 1, 2,
	// left
	0, 3, 4,
	4, 3, 7,
	// right
	1, 5, 2,
	2, 5, 6,
	// top
	4, 7, 5,
	5, 7, 6,
	// front
	3, 2, 7,
	7, 2, 6,
	// back
	0, 4, 1,
	1, 4, 5,
}

// PlaneParts builds a grid of columns x rows vertices on the z=0 plane,
// centred on the origin. Row 0 is the top edge (y = +height/2) and column 0
// the left edge (x = -width/2). Texture coordinates run from (0,0) at the
// first vertex to (1,1) at the last. Triangles face +z.
func PlaneParts(size Size, grid Grid) (*Plane, error) {
	if err := validateSize(size.Width, size.Height); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	cols, rows := grid.Columns, grid.Rows
	plane := &Plane{
		Positions: make([]math.Vec3, grid.Count()),
		TexCoords: make([]math.Vec2, grid.Count()),
		Indices:   make([]uint32, 0, 6*(cols-1)*(rows-1)),
	}

	xStart := -size.Width / 2
	yStart := size.Height / 2

	for y := range rows {
		v := float32(y) / float32(rows-1)
		for x := range cols {
			u := float32(x) / float32(cols-1)
			i := grid.Index(x, y)

			plane.Positions[i] = math.Vec3{X: xStart + size.Width*u, Y: yStart - size.Height*v}
			plane.TexCoords[i] = math.Vec2{X: u, Y: v}

			if x == 0 || y == 0 {
				continue
			}
			// Quad from the up-left, up, and left neighbours to here.
			cur := uint32(i)
			upLeft := cur - uint32(cols) - 1
			up := cur - uint32(cols)
			left := cur - 1
			plane.Indices = append(plane.Indices,
				upLeft, left, up,
				up, left, cur,
			)
		}
	}

	return plane, nil
}

// BoxParts builds the 8 corners and 36 indices of an axis-aligned box
// centred on the origin.
func BoxParts(width, height, length float32) (*Box, error) {
	if err := validateSize(width, height, length); err != nil {
		return nil, err
	}

	w, h, l := width/2, height/2, length/2
	box := &Box{
		Positions: []math.Vec3{
			// bottom
			{X: -w, Y: -h, Z: -l},
			{X: w, Y: -h, Z: -l},
			{X: w, Y: -h, Z: l},
			{X: -w, Y: -h, Z: l},
			// top
			{X: -w, Y: h, Z: -l},
			{X: w, Y: h, Z: -l},
			{X: w, Y: h, Z: l},
			{X: -w, Y: h, Z: l},
		},
		Indices: make([]uint32, len(boxIndices)),
	}
	copy(box.Indices, boxIndices[:])

	return box, nil
}

func validateSize(dims ...float32) error {
	for _, d := range dims {
		// Written as a negation so NaN is rejected too.
		if !(d > 0) {
			return fmt.Errorf("%w: got %v", ErrInvalidSize, dims)
		}
	}
	return nil
}
