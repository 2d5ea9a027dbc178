package anim

import (
	"errors"
	"fmt"
	gomath "math"
)

// Curve maps seconds since an action started to a displacement factor.
type Curve func(t float64) float64

// ElasticDomain is the length in seconds of the Elastic curve.
const ElasticDomain = 3.0

// Elastic is the corner-pull response: a fast outward pull reaching 0.5 at
// t = 0.5, then a damped oscillation settling back towards 0.
func Elastic(t float64) float64 {
	if t < 0.5 {
		return 1 - 1/(2*t+1)
	}
	return (gomath.Sin(5*t*gomath.Pi) / 2) * gomath.Exp(-5*(t-0.5))
}

// DefaultTableSize is the default number of samples in a curve table.
// Beyond roughly refresh rate times duration more samples are not visible.
const DefaultTableSize = 150

// ErrInvalidTable is returned for tables with fewer than 2 samples or a
// non-positive domain.
var ErrInvalidTable = errors.New("invalid curve table")

// Table is a curve sampled at evenly spaced points across [0, domain].
type Table struct {
	samples []float64
	domain  float64
}

// NewTable samples curve at n points from 0 to domain inclusive.
func NewTable(curve Curve, domain float64, n int) (*Table, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidTable, n)
	}
	if !(domain > 0) {
		return nil, fmt.Errorf("%w: domain %v", ErrInvalidTable, domain)
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = curve(float64(i) * domain / float64(n-1))
	}
	return &Table{samples: samples, domain: domain}, nil
}

// At returns the stored sample for progress in [0, 1]. Progress outside the
// range is clamped; the sample index is floor(progress*(n-1)).
func (t *Table) At(progress float64) float64 {
	// Negated so NaN clamps to 0.
	if !(progress > 0) {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return t.samples[int(progress*float64(len(t.samples)-1))]
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.samples)
}

// Domain returns the curve time covered by the table, in seconds.
func (t *Table) Domain() float64 {
	return t.domain
}

// Samples returns a copy of the sampled values.
func (t *Table) Samples() []float64 {
	out := make([]float64, len(t.samples))
	copy(out, t.samples)
	return out
}

// MaxError returns the largest difference between the table and curve over
// steps evenly spaced progress values.
func (t *Table) MaxError(curve Curve, steps int) float64 {
	if steps < 2 {
		steps = 2
	}
	var worst float64
	for i := 0; i < steps; i++ {
		p := float64(i) / float64(steps-1)
		d := gomath.Abs(t.At(p) - curve(p*t.domain))
		if d > worst {
			worst = d
		}
	}
	return worst
}
