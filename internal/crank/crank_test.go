package crank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDelta(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"small positive", 0.1, 0.1},
		{"small negative", -0.1, -0.1},
		{"exactly pi stays", math.Pi, math.Pi},
		{"exactly minus pi wraps up", -math.Pi, math.Pi},
		{"just over pi wraps down", math.Pi + 0.2, math.Pi + 0.2 - 2*math.Pi},
		{"just under minus pi wraps up", -math.Pi - 0.2, -math.Pi - 0.2 + 2*math.Pi},
		{"seam crossing", -3.1 - 3.1, -6.2 + 2*math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeDelta(tt.in), 1e-12)
		})
	}
}

func TestNormalizeDeltaRange(t *testing.T) {
	// Any raw difference of two atan2 results lies in (-2π, 2π); the
	// normalized delta must always land in (-π, π].
	for d := -2 * math.Pi; d <= 2*math.Pi; d += 0.001 {
		got := NormalizeDelta(d)
		require.Greater(t, got, -math.Pi, "input %v", d)
		require.LessOrEqual(t, got, math.Pi, "input %v", d)
	}
}

func TestDragAcrossSeam(t *testing.T) {
	// lastAngle 3.1 → angle -3.1 is a small positive turn, not a
	// near-full-circle jump backwards.
	var s State
	s.StartDrag(3.1)
	s.Drag(-3.1)

	wantDelta := -6.2 + 2*math.Pi // ≈ 0.083
	assert.InDelta(t, wantDelta, s.Angle, 1e-12)
	assert.InDelta(t, wantDelta*Sensitivity, s.Velocity, 1e-12)
}

func TestDragSequence(t *testing.T) {
	var s State
	s.StartDrag(0)
	s.Drag(0.1)
	s.Drag(0.2)
	s.Drag(0.3)

	assert.InDelta(t, 0.3, s.Angle, 1e-12)
	assert.InDelta(t, 0.5, s.Velocity, 1e-12)
	assert.True(t, s.Dragging())
}

func TestDragIgnoredWhenNotDragging(t *testing.T) {
	var s State
	s.Drag(1.0)
	assert.Zero(t, s.Angle)
	assert.Zero(t, s.Velocity)
}

func TestEndDragKeepsMomentum(t *testing.T) {
	var s State
	s.StartDrag(0)
	s.Drag(0.1)
	s.EndDrag()

	assert.False(t, s.Dragging())
	assert.InDelta(t, 0.5, s.Velocity, 1e-12)
	assert.InDelta(t, 0.1, s.Angle, 1e-12)
}

func TestStepDecay(t *testing.T) {
	s := State{Velocity: 0.5}

	prev := s.Speed()
	for i := 0; i < 50; i++ {
		s.Step()
		if s.Velocity == 0 {
			break
		}
		require.Less(t, s.Speed(), prev, "frame %d", i)
		require.InDelta(t, prev*Friction, s.Speed(), 1e-12, "frame %d", i)
		prev = s.Speed()
	}
}

func TestStepSnapsToRest(t *testing.T) {
	s := State{Velocity: 0.5}
	for i := 0; i < 1000 && s.Velocity != 0; i++ {
		s.Step()
	}
	assert.Zero(t, s.Velocity, "velocity must reach exactly zero")

	// And stays there.
	angle := s.Angle
	s.Step()
	assert.Zero(t, s.Velocity)
	assert.Equal(t, angle, s.Angle)
}

func TestStepIntegratesAngle(t *testing.T) {
	s := State{Velocity: 0.5}
	s.Step()
	assert.InDelta(t, 0.5*Friction, s.Angle, 1e-12)
	assert.InDelta(t, 0.5*Friction, s.Velocity, 1e-12)
}

func TestStepNoopWhileDragging(t *testing.T) {
	var s State
	s.StartDrag(0)
	s.Drag(0.1)
	s.Step()
	assert.InDelta(t, 0.5, s.Velocity, 1e-12, "friction must not apply mid-drag")
}

func TestAngleFromPivot(t *testing.T) {
	assert.InDelta(t, 0, AngleFromPivot(100, 100, 150, 100), 1e-12)
	assert.InDelta(t, math.Pi/2, AngleFromPivot(100, 100, 100, 150), 1e-12)
	assert.InDelta(t, math.Pi, AngleFromPivot(100, 100, 50, 100), 1e-12)
	assert.InDelta(t, -math.Pi/2, AngleFromPivot(100, 100, 100, 50), 1e-12)
}
