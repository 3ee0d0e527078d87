// Package crank models the rotary crank control: pointer drags become
// angular motion, and released momentum coasts under friction until the
// crank settles.
package crank

import "math"

const (
	// Sensitivity converts a per-event drag delta into per-frame
	// angular velocity.
	Sensitivity = 5.0

	// Friction is the multiplicative velocity decay applied once per
	// frame while coasting. At ~60fps this gives a multi-second
	// wind-down.
	Friction = 0.95

	// RestEpsilon snaps near-zero velocity to exactly zero so the
	// crank comes to rest instead of micro-oscillating forever.
	RestEpsilon = 0.001
)

// State holds the crank's drag and rotation state.
//
// Single-owner: the game loop goroutine is the only mutator. Pointer
// events and the per-frame step never run concurrently.
type State struct {
	dragging  bool
	lastAngle float64

	// Angle is the unbounded cumulative rotation in radians. Only its
	// rendered rotation matters, so it is never wrapped.
	Angle float64

	// Velocity is the angular velocity in radians per frame.
	Velocity float64
}

// AngleFromPivot returns the pointer's angle relative to the pivot.
func AngleFromPivot(pivotX, pivotY, pointerX, pointerY float64) float64 {
	return math.Atan2(pointerY-pivotY, pointerX-pivotX)
}

// NormalizeDelta maps a raw angle difference into (-π, π], so a drag
// crossing the atan2 seam at ±π resolves to the short way around
// instead of a near-full-circle jump.
func NormalizeDelta(d float64) float64 {
	if d > math.Pi {
		return d - 2*math.Pi
	}
	if d <= -math.Pi {
		return d + 2*math.Pi
	}
	return d
}

// StartDrag begins a drag at the given pointer angle. Velocity is left
// untouched; grabbing a spinning crank only affects motion once the
// first move arrives.
func (s *State) StartDrag(angle float64) {
	s.dragging = true
	s.lastAngle = angle
}

// Drag advances the crank to a new pointer angle. No-op unless a drag
// is active.
func (s *State) Drag(angle float64) {
	if !s.dragging {
		return
	}
	delta := NormalizeDelta(angle - s.lastAngle)
	s.Angle += delta
	s.Velocity = delta * Sensitivity
	s.lastAngle = angle
}

// EndDrag releases the crank. Velocity and angle are kept as-is so the
// momentum carries into the frame loop.
func (s *State) EndDrag() {
	s.dragging = false
}

// Dragging reports whether a drag is currently active.
func (s *State) Dragging() bool {
	return s.dragging
}

// Step applies one frame of friction while the crank is coasting.
// While a drag is active the pointer owns the motion and Step does
// nothing.
func (s *State) Step() {
	if s.dragging {
		return
	}
	s.Velocity *= Friction
	s.Angle += s.Velocity
	if math.Abs(s.Velocity) < RestEpsilon {
		s.Velocity = 0
	}
}

// Speed returns the angular velocity magnitude, the "winding speed"
// that drives playback.
func (s *State) Speed() float64 {
	return math.Abs(s.Velocity)
}
