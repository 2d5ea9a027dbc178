package scene

import (
	"testing"

	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/pkg/math"
)

func TestAddRemoveChild(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")

	root.AddChild(a)
	root.AddChild(b)
	if len(root.Children()) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children()))
	}
	if a.Parent() != root {
		t.Error("child parent not set")
	}

	if !root.RemoveChild(a) {
		t.Error("RemoveChild(a) = false, want true")
	}
	if root.RemoveChild(a) {
		t.Error("second RemoveChild(a) = true, want false")
	}
	if a.Parent() != nil {
		t.Error("removed child still has a parent")
	}
}

func TestAddChildReparents(t *testing.T) {
	first := NewNode("first")
	second := NewNode("second")
	child := NewNode("child")

	first.AddChild(child)
	second.AddChild(child)

	if len(first.Children()) != 0 {
		t.Error("child still attached to previous parent")
	}
	if child.Parent() != second {
		t.Error("child parent not updated")
	}
}

func TestWorldPosition(t *testing.T) {
	root := NewNode("root")
	root.Position = math.Vec3{X: 1}
	mid := NewNode("mid")
	mid.Position = math.Vec3{Y: 2}
	leaf := NewNode("leaf")
	leaf.Position = math.Vec3{Z: -1}

	root.AddChild(mid)
	mid.AddChild(leaf)

	if got, want := leaf.WorldPosition(), (math.Vec3{X: 1, Y: 2, Z: -1}); got != want {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
}

func TestWalk(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(c)

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})

	want := []string{"root", "a", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited = %v, want %v", visited, want)
			break
		}
	}
}

func TestNodeIsMeshTarget(t *testing.T) {
	var target mesh.Target = NewNode("flag")
	geo := &mesh.Geometry{}
	target.SetGeometry(geo)

	if target.(*Node).Geometry() != geo {
		t.Error("geometry not installed on node")
	}
}
