package renderer

import (
	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/engine/scene"
	"github.com/Faultbox/meshanim/pkg/math"
)

// drawItem is one node with geometry, resolved to world space.
type drawItem struct {
	node  *scene.Node
	geom  *mesh.Geometry
	model math.Mat4
}

// lighting is the resolved light setup for a frame.
type lighting struct {
	position math.Vec3
	color    [3]float32
	ambient  [3]float32
}

// defaultLighting lights the scene from the camera when no omni light exists.
func defaultLighting() lighting {
	return lighting{
		color:   [3]float32{1, 1, 1},
		ambient: [3]float32{0.2, 0.2, 0.2},
	}
}

// collect walks the scene and returns what to draw and how to light it.
// The first omni light found wins.
func collect(root *scene.Node) ([]drawItem, lighting) {
	var items []drawItem
	light := defaultLighting()
	lit := false

	root.Walk(func(n *scene.Node) bool {
		if n.Light.Kind == scene.LightOmni && !lit {
			lit = true
			light.position = n.WorldPosition()
			c := n.Light.Color
			light.color = [3]float32{
				c[0] * n.Light.Intensity,
				c[1] * n.Light.Intensity,
				c[2] * n.Light.Intensity,
			}
		}
		if g := n.Geometry(); g != nil && len(g.Indices) > 0 {
			items = append(items, drawItem{
				node:  n,
				geom:  g,
				model: math.Translate(n.WorldPosition()),
			})
		}
		return true
	})
	return items, light
}
