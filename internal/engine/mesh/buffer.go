package mesh

import (
	"fmt"

	"github.com/Faultbox/meshanim/pkg/math"
)

// Buffer is the vertex state owned by one animated node. Positions are
// mutated by animation; Indices and TexCoords are fixed at construction.
type Buffer struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
	Material  Material
}

// NewBuffer creates a buffer, checking that every index names a position and
// that texture coordinates (if any) match the vertex count.
func NewBuffer(positions []math.Vec3, texCoords []math.Vec2, indices []uint32, mat Material) (*Buffer, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d references vertex %d, have %d", i, idx, len(positions))
		}
	}
	if texCoords != nil && len(texCoords) != len(positions) {
		return nil, fmt.Errorf("%d texture coordinates for %d vertices", len(texCoords), len(positions))
	}

	return &Buffer{
		Positions: positions,
		TexCoords: texCoords,
		Indices:   indices,
		Material:  mat,
	}, nil
}

// Build creates renderable geometry from the current positions.
// Normals are averaged from the faces around each vertex.
func (b *Buffer) Build() *Geometry {
	vertices := make([]Vertex, len(b.Positions))
	normals := make([]math.Vec3, len(b.Positions))

	for i := 0; i+2 < len(b.Indices); i += 3 {
		i0, i1, i2 := b.Indices[i], b.Indices[i+1], b.Indices[i+2]
		p0, p1, p2 := b.Positions[i0], b.Positions[i1], b.Positions[i2]
		// Unnormalized: larger faces weigh more.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}

	var bounds Bounds
	for i, p := range b.Positions {
		if i == 0 {
			bounds = Bounds{Min: p, Max: p}
		} else {
			bounds.Min = bounds.Min.Min(p)
			bounds.Max = bounds.Max.Max(p)
		}

		n := normals[i].Normalize()
		if n == (math.Vec3{}) {
			n = math.Vec3{Z: 1}
		}
		vertices[i] = Vertex{Position: p.Array(), Normal: n.Array()}
		if b.TexCoords != nil {
			vertices[i].TexCoord = b.TexCoords[i].Array()
		}
	}

	indices := make([]uint32, len(b.Indices))
	copy(indices, b.Indices)

	return &Geometry{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
		Material: b.Material,
	}
}

// UpdateGeometry rebuilds the geometry and installs it on target.
func (b *Buffer) UpdateGeometry(target Target) {
	target.SetGeometry(b.Build())
}
