// Package stretch animates a box by periodically pulling one corner outward
// and letting it snap back.
package stretch

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshanim/internal/engine/anim"
	"github.com/Faultbox/meshanim/internal/engine/geometry"
	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/logger"
	"github.com/Faultbox/meshanim/pkg/math"
)

// ErrCornerIndex is returned when a corner outside 0..7 is requested.
var ErrCornerIndex = errors.New("corner index out of range")

// CurveKind selects the response curve of a pull.
type CurveKind int

const (
	// CurveElastic samples anim.Elastic.
	CurveElastic CurveKind = iota
	// CurveSpring samples a damped harmonic spring.
	CurveSpring
)

// String returns the config name of the curve.
func (c CurveKind) String() string {
	switch c {
	case CurveElastic:
		return "elastic"
	case CurveSpring:
		return "spring"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(c))
	}
}

// ParseCurve converts a config name to a CurveKind.
func ParseCurve(name string) (CurveKind, error) {
	switch name {
	case "elastic":
		return CurveElastic, nil
	case "spring":
		return CurveSpring, nil
	}
	return CurveElastic, fmt.Errorf("unknown pull curve %q (want elastic or spring)", name)
}

// Config describes a stretching box.
type Config struct {
	Width, Height, Length float32
	Material              mesh.Material

	// PullInterval is the time between corner picks.
	PullInterval time.Duration
	// PullDuration is how long one pull lasts.
	PullDuration time.Duration
	// TableSize is the number of precalculated curve samples.
	TableSize int
	Curve     CurveKind

	// Rand picks corners. Nil uses the global source.
	Rand *rand.Rand
}

// DefaultConfig returns a 0.3m cube pulling a corner every 3 seconds.
func DefaultConfig() Config {
	return Config{
		Width:        0.3,
		Height:       0.3,
		Length:       0.3,
		Material:     mesh.DefaultMaterial(),
		PullInterval: 3 * time.Second,
		PullDuration: 3 * time.Second,
		TableSize:    anim.DefaultTableSize,
		Curve:        CurveElastic,
	}
}

// pull is the in-flight corner animation.
type pull struct {
	index  int
	start  math.Vec3
	handle anim.Handle
}

// Box is a cuboid with one corner at a time pulled away from the centre.
type Box struct {
	target   mesh.Target
	sched    anim.Scheduler
	buf      *mesh.Buffer
	rest     []math.Vec3
	table    *anim.Table
	duration time.Duration
	rng      *rand.Rand

	timer  anim.Handle
	active *pull
	log    *zap.Logger
}

// New builds the box, installs its geometry on target and starts the
// periodic corner pull on sched.
func New(target mesh.Target, sched anim.Scheduler, cfg Config) (*Box, error) {
	b, err := build(target, sched, cfg)
	if err != nil {
		return nil, err
	}
	interval := cfg.PullInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	b.timer = sched.RunEvery(interval, b.ChooseCornerPull)
	return b, nil
}

func build(target mesh.Target, sched anim.Scheduler, cfg Config) (*Box, error) {
	parts, err := geometry.BoxParts(cfg.Width, cfg.Height, cfg.Length)
	if err != nil {
		return nil, err
	}
	buf, err := mesh.NewBuffer(parts.Positions, nil, parts.Indices, cfg.Material)
	if err != nil {
		return nil, err
	}

	size := cfg.TableSize
	if size == 0 {
		size = anim.DefaultTableSize
	}
	var table *anim.Table
	switch cfg.Curve {
	case CurveSpring:
		table, err = anim.SpringTable(anim.ElasticDomain, size, anim.DefaultSpringFrequency, anim.DefaultSpringDamping)
	default:
		table, err = anim.NewTable(anim.Elastic, anim.ElasticDomain, size)
	}
	if err != nil {
		return nil, fmt.Errorf("precalculating pull curve: %w", err)
	}

	duration := cfg.PullDuration
	if duration <= 0 {
		duration = 3 * time.Second
	}

	rest := make([]math.Vec3, len(parts.Positions))
	copy(rest, parts.Positions)

	b := &Box{
		target:   target,
		sched:    sched,
		buf:      buf,
		rest:     rest,
		table:    table,
		duration: duration,
		rng:      cfg.Rand,
		log:      logger.Named("box"),
	}
	buf.UpdateGeometry(target)

	b.log.Debug("box built",
		zap.Float32("width", cfg.Width),
		zap.Float32("height", cfg.Height),
		zap.Float32("length", cfg.Length),
		zap.Int("table_size", table.Len()),
		zap.Stringer("curve", cfg.Curve),
	)
	return b, nil
}

// ChooseCornerPull starts a pull on a uniformly random corner.
func (b *Box) ChooseCornerPull() {
	var corner int
	if b.rng != nil {
		corner = b.rng.IntN(geometry.BoxCorners)
	} else {
		corner = rand.IntN(geometry.BoxCorners)
	}
	// Always in range.
	_ = b.PullCorner(corner)
}

// PullCorner cancels any pull in flight, restoring its corner, then starts
// pulling corner index for the configured duration.
func (b *Box) PullCorner(index int) error {
	if index < 0 || index >= geometry.BoxCorners {
		return fmt.Errorf("%w: %d", ErrCornerIndex, index)
	}

	b.cancelPull()

	p := &pull{index: index, start: b.buf.Positions[index]}
	p.handle = b.sched.RunFor(b.duration, func(elapsed time.Duration) {
		b.AnimateCornerPrecalc(p.index, p.start, elapsed)
	}, func() {
		b.finish(p)
	})
	b.active = p

	b.log.Debug("corner pull", zap.Int("corner", index))
	return nil
}

// cancelPull stops the in-flight pull and puts its corner back at rest.
func (b *Box) cancelPull() {
	p := b.active
	if p == nil {
		return
	}
	p.handle.Cancel()
	b.buf.Positions[p.index] = p.start
	b.buf.UpdateGeometry(b.target)
	b.active = nil

	b.log.Debug("corner pull cancelled", zap.Int("corner", p.index))
}

func (b *Box) finish(p *pull) {
	b.buf.Positions[p.index] = p.start
	b.buf.UpdateGeometry(b.target)
	if b.active == p {
		b.active = nil
	}
}

// AnimateCornerPrecalc moves corner index along its position vector by the
// table value for elapsed time and rebuilds the geometry.
func (b *Box) AnimateCornerPrecalc(index int, start math.Vec3, elapsed time.Duration) {
	progress := elapsed.Seconds() / b.duration.Seconds()
	b.moveCorner(index, start, float32(b.table.At(progress)))
}

// AnimateCorner is AnimateCornerPrecalc evaluating anim.Elastic directly.
// The curve is sampled at elapsed seconds, matching its 3 second domain.
func (b *Box) AnimateCorner(index int, start math.Vec3, elapsed time.Duration) {
	b.moveCorner(index, start, float32(anim.Elastic(elapsed.Seconds())))
}

func (b *Box) moveCorner(index int, start math.Vec3, amount float32) {
	b.buf.Positions[index] = start.Scale(1 + amount)
	b.buf.UpdateGeometry(b.target)
}

// ActiveCorner returns the corner being pulled, if any.
func (b *Box) ActiveCorner() (int, bool) {
	if b.active == nil {
		return 0, false
	}
	return b.active.index, true
}

// Positions returns a copy of the current corner positions.
func (b *Box) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(b.buf.Positions))
	copy(out, b.buf.Positions)
	return out
}

// RestPositions returns a copy of the corner positions at construction.
func (b *Box) RestPositions() []math.Vec3 {
	out := make([]math.Vec3, len(b.rest))
	copy(out, b.rest)
	return out
}

// Table returns the precalculated pull curve.
func (b *Box) Table() *anim.Table {
	return b.table
}

// Stop cancels the periodic trigger and any pull, leaving the box at rest.
func (b *Box) Stop() {
	if b.timer != nil {
		b.timer.Cancel()
	}
	b.cancelPull()
}
