// Package wave animates a subdivided plane as a flag waving in the wind.
package wave

import (
	gomath "math"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshanim/internal/engine/anim"
	"github.com/Faultbox/meshanim/internal/engine/geometry"
	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/logger"
	"github.com/Faultbox/meshanim/pkg/math"
)

const (
	// Cycle is the nominal length of the flag action. It restarts when it
	// runs out, but is long enough that elapsed time never wraps in practice.
	Cycle = 100000 * time.Second

	// MaxAmplitude is the wave height once fully ramped up.
	MaxAmplitude = 0.1
	// RampTime is how long the amplitude takes to grow from 0 to MaxAmplitude.
	RampTime = 10.0
	// Frequency scales time and distance inside the sine.
	Frequency = 15.0
)

// Config describes a flag.
type Config struct {
	Width, Height float32
	Columns, Rows int
	Material      mesh.Material
	Mode          Mode
}

// DefaultConfig returns a 0.75 x 0.375 flag with a 100 x 100 vertex grid.
func DefaultConfig() Config {
	mat := mesh.DefaultMaterial()
	mat.DoubleSided = true
	return Config{
		Width:    0.75,
		Height:   0.375,
		Columns:  100,
		Rows:     100,
		Material: mat,
		Mode:     ModeXY,
	}
}

// Flag is a plane whose vertices wave along z over time.
type Flag struct {
	target mesh.Target
	buf    *mesh.Buffer
	grid   geometry.Grid
	mode   Mode
	action anim.Handle
	log    *zap.Logger
}

// New builds the flag geometry, installs it on target and starts waving on sched.
func New(target mesh.Target, sched anim.Scheduler, cfg Config) (*Flag, error) {
	f, err := build(target, cfg)
	if err != nil {
		return nil, err
	}
	f.start(sched)
	return f, nil
}

func build(target mesh.Target, cfg Config) (*Flag, error) {
	grid := geometry.Grid{Columns: cfg.Columns, Rows: cfg.Rows}
	plane, err := geometry.PlaneParts(geometry.Size{Width: cfg.Width, Height: cfg.Height}, grid)
	if err != nil {
		return nil, err
	}
	buf, err := mesh.NewBuffer(plane.Positions, plane.TexCoords, plane.Indices, cfg.Material)
	if err != nil {
		return nil, err
	}

	f := &Flag{
		target: target,
		buf:    buf,
		grid:   grid,
		mode:   cfg.Mode,
		log:    logger.Named("flag"),
	}
	buf.UpdateGeometry(target)

	f.log.Debug("flag built",
		zap.Int("columns", grid.Columns),
		zap.Int("rows", grid.Rows),
		zap.Stringer("mode", cfg.Mode),
	)
	return f, nil
}

func (f *Flag) start(sched anim.Scheduler) {
	f.action = sched.RunFor(Cycle, func(elapsed time.Duration) {
		f.AnimateFlag(elapsed.Seconds())
	}, func() {
		f.start(sched)
	})
}

// Stop cancels the waving action. The flag keeps its last shape.
func (f *Flag) Stop() {
	if f.action != nil {
		f.action.Cancel()
	}
}

// Mode returns the active waveform.
func (f *Flag) Mode() Mode {
	return f.mode
}

// SetMode switches the waveform used by AnimateFlag.
func (f *Flag) SetMode(m Mode) {
	f.mode = m
}

// Grid returns the vertex grid dimensions.
func (f *Flag) Grid() geometry.Grid {
	return f.grid
}

// Positions returns a copy of the current vertex positions.
func (f *Flag) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(f.buf.Positions))
	copy(out, f.buf.Positions)
	return out
}

// WaveScale returns the amplitude at t seconds: a linear ramp from 0 to
// MaxAmplitude over RampTime, then constant.
func WaveScale(t float64) float32 {
	return float32(MaxAmplitude * gomath.Min(t/RampTime, 1))
}

// AnimateFlag applies the active mode at t seconds and rebuilds the geometry.
func (f *Flag) AnimateFlag(t float64) {
	switch f.mode {
	case ModeX:
		f.AnimateFlagX(t)
	case ModeMadness:
		f.AnimateFlagMadness(t)
	default:
		f.AnimateFlagXY(t)
	}
}

// AnimateFlagXY waves with a phase that lags along both axes and an
// amplitude growing with the column, so the free edge moves the most.
func (f *Flag) AnimateFlagXY(t float64) {
	cols, rows := f.grid.Columns, f.grid.Rows
	furthest := float32((rows - 1) + (cols - 1))
	scale, phase := WaveScale(t), timePhase(t)

	for x := range cols {
		distanceX := float32(x) / furthest
		for y := range rows {
			distance := distanceX + float32(y)/furthest
			f.buf.Positions[f.grid.Index(x, y)].Z = scale * math32.Sin(phase-Frequency*distance) * distanceX
		}
	}
	f.buf.UpdateGeometry(f.target)
}

// AnimateFlagX waves using only the column for phase and amplitude.
func (f *Flag) AnimateFlagX(t float64) {
	cols, rows := f.grid.Columns, f.grid.Rows
	furthest := float32((rows - 1) + (cols - 1))
	scale, phase := WaveScale(t), timePhase(t)

	for x := range cols {
		distance := float32(x) / furthest
		z := scale * math32.Sin(phase-Frequency*distance) * distance
		for y := range rows {
			f.buf.Positions[f.grid.Index(x, y)].Z = z
		}
	}
	f.buf.UpdateGeometry(f.target)
}

// AnimateFlagMadness lags the phase by (x*x + y*y) over the grid diagonal.
func (f *Flag) AnimateFlagMadness(t float64) {
	cols, rows := f.grid.Columns, f.grid.Rows
	furthest := math32.Sqrt(float32((rows-1)*(rows-1) + (cols-1)*(cols-1)))
	scale, phase := WaveScale(t), timePhase(t)

	for x := range cols {
		distanceX := float32(x) / float32(cols-1)
		for y := range rows {
			distance := float32(x*x+y*y) / furthest
			f.buf.Positions[f.grid.Index(x, y)].Z = scale * math32.Sin(phase-Frequency*distance) * distanceX
		}
	}
	f.buf.UpdateGeometry(f.target)
}

// timePhase reduces Frequency*t into [0, 2π) in float64 so float32 vertex
// math stays precise late into the cycle.
func timePhase(t float64) float32 {
	return float32(gomath.Mod(Frequency*t, 2*gomath.Pi))
}
