// Package anim provides the timing side of procedural animation: a
// frame-driven scheduler and the response curves used by animated meshes.
package anim

import "time"

// Scheduler runs callbacks on the host's update timeline.
type Scheduler interface {
	// RunEvery calls fn each time interval elapses, until cancelled.
	RunEvery(interval time.Duration, fn func()) Handle

	// RunFor calls onTick with the time elapsed since the action started on
	// every update for duration, then calls onComplete once. The last tick
	// always reports exactly duration. Either callback may be nil.
	RunFor(duration time.Duration, onTick func(elapsed time.Duration), onComplete func()) Handle
}

// Handle controls a scheduled action.
type Handle interface {
	// Cancel stops the action. A cancelled RunFor never completes.
	// Cancelling a finished action is a no-op.
	Cancel()

	// Done reports whether the action has completed or been cancelled.
	Done() bool
}

type actionKind int

const (
	actionEvery actionKind = iota
	actionFor
)

type action struct {
	kind       actionKind
	length     time.Duration
	elapsed    time.Duration
	onEvery    func()
	onTick     func(elapsed time.Duration)
	onComplete func()
	done       bool
}

func (a *action) Cancel() {
	a.done = true
}

func (a *action) Done() bool {
	return a.done
}

// FrameScheduler is a Scheduler advanced explicitly by the host loop.
// Actions run in registration order; actions registered while Advance is
// running start on the next Advance. It is not safe for concurrent use.
type FrameScheduler struct {
	actions []*action
	pending []*action
	running bool
	clock   time.Duration
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RunEvery implements Scheduler. Non-positive intervals are clamped to one
// nanosecond so the action cannot stall Advance.
func (s *FrameScheduler) RunEvery(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.add(&action{kind: actionEvery, length: interval, onEvery: fn})
}

// RunFor implements Scheduler.
func (s *FrameScheduler) RunFor(duration time.Duration, onTick func(time.Duration), onComplete func()) Handle {
	if duration < 0 {
		duration = 0
	}
	return s.add(&action{kind: actionFor, length: duration, onTick: onTick, onComplete: onComplete})
}

func (s *FrameScheduler) add(a *action) *action {
	if s.running {
		s.pending = append(s.pending, a)
	} else {
		s.actions = append(s.actions, a)
	}
	return a
}

// Advance moves the timeline forward by dt and runs due callbacks.
func (s *FrameScheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.clock += dt
	s.running = true

	for _, a := range s.actions {
		if a.done {
			continue
		}
		switch a.kind {
		case actionEvery:
			a.elapsed += dt
			for a.elapsed >= a.length && !a.done {
				a.elapsed -= a.length
				if a.onEvery != nil {
					a.onEvery()
				}
			}
		case actionFor:
			a.elapsed += dt
			if a.elapsed >= a.length {
				if a.onTick != nil {
					a.onTick(a.length)
				}
				// The tick may have cancelled the action.
				if a.done {
					continue
				}
				a.done = true
				if a.onComplete != nil {
					a.onComplete()
				}
			} else if a.onTick != nil {
				a.onTick(a.elapsed)
			}
		}
	}

	s.running = false
	s.compact()
}

// compact drops finished actions and admits those registered mid-Advance.
func (s *FrameScheduler) compact() {
	live := s.actions[:0]
	for _, a := range s.actions {
		if !a.done {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(s.actions); i++ {
		s.actions[i] = nil
	}
	s.actions = live

	for _, a := range s.pending {
		if !a.done {
			s.actions = append(s.actions, a)
		}
	}
	s.pending = s.pending[:0]
}

// Len returns the number of live actions.
func (s *FrameScheduler) Len() int {
	n := 0
	for _, a := range s.actions {
		if !a.done {
			n++
		}
	}
	for _, a := range s.pending {
		if !a.done {
			n++
		}
	}
	return n
}

// Clock returns the total time advanced so far.
func (s *FrameScheduler) Clock() time.Duration {
	return s.clock
}
