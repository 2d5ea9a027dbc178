// Package config handles demo configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/meshanim/internal/engine/stretch"
	"github.com/Faultbox/meshanim/internal/engine/wave"
)

// Shape names accepted by SceneConfig.Shape.
const (
	ShapeFlag = "flag"
	ShapeBox  = "box"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Flag     FlagConfig     `yaml:"flag"`
	Box      BoxConfig      `yaml:"box"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig selects what is shown.
type SceneConfig struct {
	Shape    string  `yaml:"shape"`    // "flag" or "box"
	Distance float32 `yaml:"distance"` // metres in front of the camera
}

// FlagConfig holds waving flag settings.
type FlagConfig struct {
	Width    float32    `yaml:"width"`
	Height   float32    `yaml:"height"`
	Columns  int        `yaml:"columns"`
	Rows     int        `yaml:"rows"`
	Texture  string     `yaml:"texture"` // image path; empty uses Color only
	Color    [4]float32 `yaml:"color"`
	WaveMode string     `yaml:"wave_mode"`
}

// BoxConfig holds stretching box settings.
type BoxConfig struct {
	Width        float32       `yaml:"width"`
	Height       float32       `yaml:"height"`
	Length       float32       `yaml:"length"`
	Color        [4]float32    `yaml:"color"`
	PullInterval time.Duration `yaml:"pull_interval"`
	PullDuration time.Duration `yaml:"pull_duration"`
	TableSize    int           `yaml:"table_size"`
	Curve        string        `yaml:"curve"`
	Seed         uint64        `yaml:"seed"` // 0 picks corners from the global source
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Shape:    ShapeFlag,
			Distance: 1,
		},
		Flag: FlagConfig{
			Width:    0.75,
			Height:   0.375,
			Columns:  100,
			Rows:     100,
			Color:    [4]float32{1, 1, 1, 1},
			WaveMode: wave.ModeXY.String(),
		},
		Box: BoxConfig{
			Width:        0.3,
			Height:       0.3,
			Length:       0.3,
			Color:        [4]float32{1, 1, 1, 1},
			PullInterval: 3 * time.Second,
			PullDuration: 3 * time.Second,
			TableSize:    150,
			Curve:        stretch.CurveElastic.String(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks names and ranges that would otherwise fail at scene setup.
func (c *Config) Validate() error {
	switch c.Scene.Shape {
	case ShapeFlag, ShapeBox:
	default:
		return fmt.Errorf("scene.shape: unknown shape %q (want flag or box)", c.Scene.Shape)
	}
	if _, err := wave.ParseMode(c.Flag.WaveMode); err != nil {
		return fmt.Errorf("flag.wave_mode: %w", err)
	}
	if _, err := stretch.ParseCurve(c.Box.Curve); err != nil {
		return fmt.Errorf("box.curve: %w", err)
	}
	if c.Flag.Columns < 2 || c.Flag.Rows < 2 {
		return fmt.Errorf("flag grid %dx%d: need at least 2x2", c.Flag.Columns, c.Flag.Rows)
	}
	if c.Box.TableSize < 2 {
		return fmt.Errorf("box.table_size %d: need at least 2", c.Box.TableSize)
	}
	return nil
}
