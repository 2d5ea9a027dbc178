// Package mesh holds the mutable vertex state of an animated node and turns
// it into renderable geometry.
package mesh

import (
	"image"

	"github.com/Faultbox/meshanim/pkg/math"
)

// Vertex is an interleaved vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Material is the surface appearance of a mesh.
type Material struct {
	// Color is the diffuse RGBA color, multiplied with Texture when set.
	Color [4]float32
	// Texture is an optional diffuse image.
	Texture image.Image
	// DoubleSided disables back-face culling (flags are seen from behind).
	DoubleSided bool
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial() Material {
	return Material{Color: [4]float32{1, 1, 1, 1}}
}

// Geometry is a renderable triangle mesh built from a Buffer.
// It is immutable once built; animation builds a new one every tick.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Material Material
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Equal reports whether two geometries have identical vertices, indices and material.
func (g *Geometry) Equal(other *Geometry) bool {
	if g == nil || other == nil {
		return g == other
	}
	if len(g.Vertices) != len(other.Vertices) || len(g.Indices) != len(other.Indices) {
		return false
	}
	for i := range g.Vertices {
		if g.Vertices[i] != other.Vertices[i] {
			return false
		}
	}
	for i := range g.Indices {
		if g.Indices[i] != other.Indices[i] {
			return false
		}
	}
	return g.Bounds == other.Bounds &&
		g.Material.Color == other.Material.Color &&
		g.Material.Texture == other.Material.Texture &&
		g.Material.DoubleSided == other.Material.DoubleSided
}

// Target receives rebuilt geometry. Scene nodes implement it.
type Target interface {
	SetGeometry(g *Geometry)
}
