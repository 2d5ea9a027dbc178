package anim

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
)

// Spring tuning used when no explicit values are configured.
const (
	DefaultSpringFrequency = 6.0
	DefaultSpringDamping   = 0.25
	// springKick is the initial velocity; it makes the first peak land
	// near 0.5 with the default tuning.
	springKick = 5.0
)

// SpringTable samples a damped spring released from rest with an outward
// kick. The result starts at 0, overshoots outward and settles back to 0,
// giving an alternative to Elastic for corner pulls.
func SpringTable(domain float64, n int, frequency, damping float64) (*Table, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidTable, n)
	}
	if !(domain > 0) {
		return nil, fmt.Errorf("%w: domain %v", ErrInvalidTable, domain)
	}

	step := domain / float64(n-1)
	spring := harmonica.NewSpring(step, frequency, damping)

	samples := make([]float64, n)
	pos, vel := 0.0, springKick
	for i := 1; i < n; i++ {
		pos, vel = spring.Update(pos, vel, 0)
		samples[i] = pos
	}
	return &Table{samples: samples, domain: domain}, nil
}
