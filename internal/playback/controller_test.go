package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTransport records the calls Drive makes, so tests can assert on
// the exact per-frame behavior without a real audio backend.
type fakeTransport struct {
	playCalls  int
	pauseCalls int
	rates      []float64
	volumes    []float64
}

func (f *fakeTransport) Play()               { f.playCalls++ }
func (f *fakeTransport) Pause()              { f.pauseCalls++ }
func (f *fakeTransport) SetRate(r float64)   { f.rates = append(f.rates, r) }
func (f *fakeTransport) SetVolume(v float64) { f.volumes = append(f.volumes, v) }

func TestRateFor(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"rest clamps to min", 0, 0.8},
		{"slow clamps to min", 0.05, 0.8},
		{"exactly at lower clamp edge", 0.1, 0.8},
		{"mid range", 0.2, 1.1},
		{"brisk winding", 0.3, 1.4},
		{"fast clamps to max", 0.5, 1.5},
		{"very fast clamps to max", 10, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RateFor(tt.speed), 1e-12)
		})
	}
}

func TestRateForAlwaysClamped(t *testing.T) {
	for speed := 0.0; speed < 3.0; speed += 0.001 {
		r := RateFor(speed)
		assert.GreaterOrEqual(t, r, RateMin)
		assert.LessOrEqual(t, r, RateMax)
	}
}

func TestVolumeFor(t *testing.T) {
	assert.InDelta(t, 0, VolumeFor(0), 1e-12)
	assert.InDelta(t, 0.25, VolumeFor(0.05), 1e-12)
	assert.InDelta(t, 1, VolumeFor(0.2), 1e-12)
	assert.InDelta(t, 1, VolumeFor(0.3), 1e-12, "min(1, 0.3*5)")
	assert.InDelta(t, 1, VolumeFor(50), 1e-12)
}

func TestDriveAboveThreshold(t *testing.T) {
	ft := &fakeTransport{}
	Drive(0.3, ft)

	assert.Equal(t, 1, ft.playCalls)
	assert.Zero(t, ft.pauseCalls)
	assert.Equal(t, []float64{1.4}, ft.rates)
	assert.Equal(t, []float64{1}, ft.volumes)
}

func TestDriveBelowThreshold(t *testing.T) {
	ft := &fakeTransport{}
	Drive(0.01, ft)

	assert.Zero(t, ft.playCalls)
	assert.Equal(t, 1, ft.pauseCalls)
	assert.Empty(t, ft.rates, "rate must not change while paused")
	assert.Empty(t, ft.volumes, "volume must not change while paused")
}

func TestDriveAtThresholdPauses(t *testing.T) {
	// The threshold is exclusive: speed must exceed it to play.
	ft := &fakeTransport{}
	Drive(PlayThreshold, ft)
	assert.Equal(t, 1, ft.pauseCalls)
	assert.Zero(t, ft.playCalls)
}

func TestDriveFlipsEachFrame(t *testing.T) {
	// No hysteresis: crossing the threshold in either direction takes
	// effect on the very frame it is evaluated.
	ft := &fakeTransport{}
	Drive(0.05, ft)
	Drive(0.01, ft)
	Drive(0.05, ft)

	assert.Equal(t, 2, ft.playCalls)
	assert.Equal(t, 1, ft.pauseCalls)
}
