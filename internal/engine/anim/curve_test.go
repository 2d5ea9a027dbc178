package anim

import (
	"errors"
	gomath "math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return gomath.Abs(a-b) <= eps
}

func TestElasticStartsAtRest(t *testing.T) {
	if got := Elastic(0); !approxEqual(got, 0, 1e-12) {
		t.Errorf("Elastic(0) = %v, want 0", got)
	}
}

func TestElasticContinuousAtHalf(t *testing.T) {
	left := Elastic(0.5 - 1e-9)
	right := Elastic(0.5)
	if !approxEqual(left, right, 1e-6) {
		t.Errorf("Elastic jumps at 0.5: left %v, right %v", left, right)
	}
	if !approxEqual(right, 0.5, 1e-12) {
		t.Errorf("Elastic(0.5) = %v, want 0.5", right)
	}
}

func TestElasticPullThenDecay(t *testing.T) {
	prev := Elastic(0)
	for ts := 0.01; ts < 0.5; ts += 0.01 {
		v := Elastic(ts)
		if v <= prev {
			t.Fatalf("Elastic not increasing during pull at t=%v", ts)
		}
		prev = v
	}

	end := Elastic(ElasticDomain)
	if gomath.Abs(end) > 0.01 {
		t.Errorf("Elastic(%v) = %v, want near 0", ElasticDomain, end)
	}

	sawNegative := false
	for ts := 0.5; ts <= ElasticDomain; ts += 0.01 {
		if Elastic(ts) < 0 {
			sawNegative = true
			break
		}
	}
	if !sawNegative {
		t.Error("Elastic never overshoots inward during decay")
	}
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name   string
		domain float64
		n      int
	}{
		{"one sample", ElasticDomain, 1},
		{"zero samples", ElasticDomain, 0},
		{"zero domain", 0, 10},
		{"nan domain", gomath.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(Elastic, tt.domain, tt.n); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("NewTable() error = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestTableSamplesWholeDomain(t *testing.T) {
	table, err := NewTable(Elastic, ElasticDomain, DefaultTableSize)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}
	if table.Len() != DefaultTableSize {
		t.Errorf("Len() = %d, want %d", table.Len(), DefaultTableSize)
	}

	samples := table.Samples()
	if samples[0] != Elastic(0) {
		t.Errorf("first sample = %v, want Elastic(0)", samples[0])
	}
	if samples[len(samples)-1] != Elastic(ElasticDomain) {
		t.Errorf("last sample = %v, want Elastic(%v)", samples[len(samples)-1], ElasticDomain)
	}

	samples[0] = 42
	if table.Samples()[0] == 42 {
		t.Error("Samples() exposes internal storage")
	}
}

func TestTableAt(t *testing.T) {
	linear := func(t float64) float64 { return t }
	table, err := NewTable(linear, 3, 4) // samples 0, 1, 2, 3
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}

	tests := []struct {
		progress float64
		want     float64
	}{
		{-1, 0},
		{0, 0},
		{0.3, 0},
		{0.34, 1},
		{0.5, 1},
		{0.99, 2},
		{1, 3},
		{7, 3},
		{gomath.NaN(), 0},
	}
	for _, tt := range tests {
		if got := table.At(tt.progress); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestTableErrorShrinksWithResolution(t *testing.T) {
	prev := gomath.Inf(1)
	for _, n := range []int{10, 50, 150, 600, 2400} {
		table, err := NewTable(Elastic, ElasticDomain, n)
		if err != nil {
			t.Fatalf("NewTable(%d) error: %v", n, err)
		}
		e := table.MaxError(Elastic, 5001)
		if e >= prev {
			t.Errorf("max error %v at n=%d, not below %v", e, n, prev)
		}
		prev = e
	}
}

func TestSpringTable(t *testing.T) {
	table, err := SpringTable(ElasticDomain, DefaultTableSize, DefaultSpringFrequency, DefaultSpringDamping)
	if err != nil {
		t.Fatalf("SpringTable error: %v", err)
	}
	samples := table.Samples()

	if samples[0] != 0 {
		t.Errorf("first sample = %v, want 0", samples[0])
	}
	peak := 0.0
	for _, s := range samples {
		peak = gomath.Max(peak, s)
	}
	if peak < 0.2 || peak > 1 {
		t.Errorf("spring peak = %v, want within (0.2, 1)", peak)
	}
	if last := samples[len(samples)-1]; gomath.Abs(last) > 0.05 {
		t.Errorf("spring did not settle: last sample %v", last)
	}

	if _, err := SpringTable(ElasticDomain, 1, DefaultSpringFrequency, DefaultSpringDamping); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("SpringTable(n=1) error = %v, want ErrInvalidTable", err)
	}
}
