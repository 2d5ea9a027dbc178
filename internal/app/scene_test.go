package app

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/meshanim/internal/config"
	"github.com/Faultbox/meshanim/internal/engine/anim"
	"github.com/Faultbox/meshanim/internal/engine/scene"
	"github.com/Faultbox/meshanim/internal/engine/stretch"
	"github.com/Faultbox/meshanim/internal/engine/wave"
	"github.com/Faultbox/meshanim/pkg/math"
)

func smallConfig(shape string) *config.Config {
	cfg := config.Default()
	cfg.Scene.Shape = shape
	cfg.Flag.Columns = 8
	cfg.Flag.Rows = 4
	cfg.Box.Seed = 3
	return cfg
}

func TestBuildSceneFlag(t *testing.T) {
	s, err := BuildScene(smallConfig(config.ShapeFlag))
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	if s.Flag == nil || s.Box != nil {
		t.Fatalf("BuildScene(flag) drivers = %v/%v, want flag only", s.Flag, s.Box)
	}
	if s.Shape.WorldPosition() != (math.Vec3{Z: -1}) {
		t.Errorf("shape position = %v, want one metre ahead", s.Shape.WorldPosition())
	}
	g := s.Shape.Geometry()
	if g == nil || len(g.Vertices) != 32 {
		t.Fatalf("flag geometry not installed: %v", g)
	}
	if !g.Material.DoubleSided {
		t.Error("flag material should be double sided")
	}
	if s.Flag.Mode() != wave.ModeXY {
		t.Errorf("flag mode = %v, want xy", s.Flag.Mode())
	}

	s.Sched.Advance(500 * time.Millisecond)
	if s.Shape.Geometry() == g {
		t.Error("geometry unchanged after advancing the scheduler")
	}
}

func TestBuildSceneBox(t *testing.T) {
	cfg := smallConfig(config.ShapeBox)
	cfg.Box.Curve = "spring"
	s, err := BuildScene(cfg)
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	if s.Box == nil || s.Flag != nil {
		t.Fatalf("BuildScene(box) drivers = %v/%v, want box only", s.Flag, s.Box)
	}
	if got := len(s.Shape.Geometry().Vertices); got != 8 {
		t.Errorf("box vertices = %d, want 8", got)
	}

	s.Sched.Advance(3 * time.Second)
	s.Sched.Advance(100 * time.Millisecond)
	if _, ok := s.Box.ActiveCorner(); !ok {
		t.Error("no corner pulled after the first interval")
	}
}

func TestBuildSceneLight(t *testing.T) {
	s, err := BuildScene(smallConfig(config.ShapeFlag))
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	lights := 0
	s.Root.Walk(func(n *scene.Node) bool {
		if n.Light.Kind == scene.LightOmni {
			lights++
		}
		return true
	})
	if lights != 1 {
		t.Errorf("omni lights = %d, want 1", lights)
	}
}

func TestBuildSceneTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flag.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := smallConfig(config.ShapeFlag)
	cfg.Flag.Texture = path
	s, err := BuildScene(cfg)
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	if s.Shape.Geometry().Material.Texture == nil {
		t.Error("flag texture not attached to material")
	}
}

func TestBuildSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown shape", func(c *config.Config) { c.Scene.Shape = "cone" }},
		{"missing texture", func(c *config.Config) { c.Flag.Texture = "/nonexistent/flag.png" }},
		{"bad wave", func(c *config.Config) { c.Flag.WaveMode = "tidal" }},
		{"flat grid", func(c *config.Config) { c.Flag.Rows = 1 }},
		{"bad curve", func(c *config.Config) { c.Scene.Shape = config.ShapeBox; c.Box.Curve = "linear" }},
		{"zero box", func(c *config.Config) { c.Scene.Shape = config.ShapeBox; c.Box.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(config.ShapeFlag)
			tt.mutate(cfg)
			if _, err := BuildScene(cfg); err == nil {
				t.Error("BuildScene() = nil error, want error")
			}
		})
	}
}

func TestBoxConfigSeedIsDeterministic(t *testing.T) {
	pick := func() []int {
		bc, err := boxConfig(smallConfig(config.ShapeBox).Box)
		if err != nil {
			t.Fatalf("boxConfig() error = %v", err)
		}
		node := scene.NewNode("box")
		sched := anim.NewFrameScheduler()
		b, err := stretch.New(node, sched, bc)
		if err != nil {
			t.Fatalf("stretch.New() error = %v", err)
		}
		var corners []int
		for range 10 {
			sched.Advance(bc.PullInterval)
			if c, ok := b.ActiveCorner(); ok {
				corners = append(corners, c)
			}
		}
		return corners
	}

	a, b := pick(), pick()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("corner sequences differ in length: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded corner sequences differ: %v vs %v", a, b)
		}
	}
}
