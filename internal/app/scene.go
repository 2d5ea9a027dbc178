package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/meshanim/internal/config"
	"github.com/Faultbox/meshanim/internal/engine/anim"
	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/engine/scene"
	"github.com/Faultbox/meshanim/internal/engine/stretch"
	"github.com/Faultbox/meshanim/internal/engine/texture"
	"github.com/Faultbox/meshanim/internal/engine/wave"
	"github.com/Faultbox/meshanim/pkg/math"
)

// Scene is the demo's scene graph plus the driver animating it.
type Scene struct {
	Root  *scene.Node
	Light *scene.Node
	Shape *scene.Node
	Sched *anim.FrameScheduler

	// Exactly one of Flag and Box is set, matching cfg.Scene.Shape.
	Flag *wave.Flag
	Box  *stretch.Box
}

// BuildScene creates the root, an omni light beside the camera and the
// configured animated shape placed cfg.Scene.Distance in front of it.
func BuildScene(cfg *config.Config) (*Scene, error) {
	s := &Scene{
		Root:  scene.NewNode("root"),
		Light: scene.NewNode("light"),
		Shape: scene.NewNode(cfg.Scene.Shape),
		Sched: anim.NewFrameScheduler(),
	}

	s.Light.Position = math.Vec3{X: 0.5, Y: 0.5}
	s.Light.Light = scene.Light{Kind: scene.LightOmni, Color: [3]float32{1, 1, 1}, Intensity: 1}
	s.Shape.Position = math.Vec3{Z: -cfg.Scene.Distance}
	s.Root.AddChild(s.Light)
	s.Root.AddChild(s.Shape)

	switch cfg.Scene.Shape {
	case config.ShapeFlag:
		fc, err := flagConfig(cfg.Flag)
		if err != nil {
			return nil, err
		}
		if s.Flag, err = wave.New(s.Shape, s.Sched, fc); err != nil {
			return nil, fmt.Errorf("creating flag: %w", err)
		}
	case config.ShapeBox:
		bc, err := boxConfig(cfg.Box)
		if err != nil {
			return nil, err
		}
		if s.Box, err = stretch.New(s.Shape, s.Sched, bc); err != nil {
			return nil, fmt.Errorf("creating box: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown shape %q", cfg.Scene.Shape)
	}
	return s, nil
}

func flagConfig(c config.FlagConfig) (wave.Config, error) {
	mode, err := wave.ParseMode(c.WaveMode)
	if err != nil {
		return wave.Config{}, err
	}
	fc := wave.DefaultConfig()
	fc.Width, fc.Height = c.Width, c.Height
	fc.Columns, fc.Rows = c.Columns, c.Rows
	fc.Mode = mode
	fc.Material.Color = c.Color
	if c.Texture != "" {
		img, err := texture.Load(c.Texture)
		if err != nil {
			return wave.Config{}, fmt.Errorf("flag texture: %w", err)
		}
		fc.Material.Texture = img
	}
	return fc, nil
}

func boxConfig(c config.BoxConfig) (stretch.Config, error) {
	curve, err := stretch.ParseCurve(c.Curve)
	if err != nil {
		return stretch.Config{}, err
	}
	bc := stretch.DefaultConfig()
	bc.Width, bc.Height, bc.Length = c.Width, c.Height, c.Length
	bc.Material = mesh.Material{Color: c.Color}
	bc.PullInterval = c.PullInterval
	bc.PullDuration = c.PullDuration
	bc.TableSize = c.TableSize
	bc.Curve = curve
	if c.Seed != 0 {
		bc.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed))
	}
	return bc, nil
}
