// Package scene provides a minimal scene graph: nodes with a position,
// children, and an optional geometry slot filled by animated meshes.
package scene

import (
	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/pkg/math"
)

// LightKind identifies the type of light attached to a node.
type LightKind int

const (
	// LightNone means the node carries no light.
	LightNone LightKind = iota
	// LightOmni is a point light radiating in all directions.
	LightOmni
)

// Light describes a light attached to a node.
type Light struct {
	Kind      LightKind
	Color     [3]float32
	Intensity float32
}

// Node is an element of the scene graph.
type Node struct {
	Name     string
	Position math.Vec3
	Light    Light

	parent   *Node
	children []*Node
	geometry *mesh.Geometry
}

// NewNode creates a detached node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// SetGeometry replaces the node's renderable geometry.
func (n *Node) SetGeometry(g *mesh.Geometry) {
	n.geometry = g
}

// Geometry returns the node's current geometry, or nil.
func (n *Node) Geometry() *mesh.Geometry {
	return n.geometry
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child. It reports whether child was attached to n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached children.
func (n *Node) Children() []*Node {
	return n.children
}

// WorldPosition returns the node's position with all ancestor offsets applied.
func (n *Node) WorldPosition() math.Vec3 {
	p := n.Position
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.Position)
	}
	return p
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
