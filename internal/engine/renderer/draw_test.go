package renderer

import (
	"testing"

	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/engine/scene"
	"github.com/Faultbox/meshanim/pkg/math"
)

func triangle() *mesh.Geometry {
	return &mesh.Geometry{
		Vertices: make([]mesh.Vertex, 3),
		Indices:  []uint32{0, 1, 2},
		Material: mesh.DefaultMaterial(),
	}
}

func TestCollectSkipsEmptyNodes(t *testing.T) {
	root := scene.NewNode("root")
	empty := scene.NewNode("empty")
	empty.SetGeometry(&mesh.Geometry{})
	shape := scene.NewNode("shape")
	shape.SetGeometry(triangle())
	root.AddChild(empty)
	root.AddChild(shape)

	items, _ := collect(root)
	if len(items) != 1 {
		t.Fatalf("collect() returned %d items, want 1", len(items))
	}
	if items[0].node != shape {
		t.Errorf("collect() item = %q, want shape", items[0].node.Name)
	}
}

func TestCollectModelMatrixUsesWorldPosition(t *testing.T) {
	root := scene.NewNode("root")
	root.Position = math.Vec3{X: 1}
	shape := scene.NewNode("shape")
	shape.Position = math.Vec3{Z: -1}
	shape.SetGeometry(triangle())
	root.AddChild(shape)

	items, _ := collect(root)
	if len(items) != 1 {
		t.Fatalf("collect() returned %d items, want 1", len(items))
	}
	got := items[0].model.TransformPoint(math.Vec3{})
	want := math.Vec3{X: 1, Z: -1}
	if got != want {
		t.Errorf("model origin = %v, want %v", got, want)
	}
}

func TestCollectLighting(t *testing.T) {
	root := scene.NewNode("root")
	_, light := collect(root)
	if light != defaultLighting() {
		t.Errorf("collect() without lights = %+v, want default", light)
	}

	lamp := scene.NewNode("lamp")
	lamp.Position = math.Vec3{Y: 2}
	lamp.Light = scene.Light{Kind: scene.LightOmni, Color: [3]float32{1, 0.5, 0}, Intensity: 2}
	second := scene.NewNode("second")
	second.Light = scene.Light{Kind: scene.LightOmni, Color: [3]float32{0, 0, 1}, Intensity: 1}
	root.AddChild(lamp)
	root.AddChild(second)

	_, light = collect(root)
	if light.position != (math.Vec3{Y: 2}) {
		t.Errorf("light position = %v, want (0,2,0)", light.position)
	}
	if light.color != [3]float32{2, 1, 0} {
		t.Errorf("light color = %v, want first light scaled by intensity", light.color)
	}
}
