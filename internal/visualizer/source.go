// Package visualizer renders the bar-graph waveform synchronized to
// playback progress. Bar magnitudes come from a Source: live analysis
// of the playback tap when audio is available, or a simulated waveform
// when it is not, so the strip never goes fully flat.
package visualizer

import (
	"math"
	"math/rand"
)

const (
	// liveSpeedFloor gates live magnitudes: at or below this winding
	// speed the baseline waveform shows instead, even with audio
	// loaded.
	liveSpeedFloor = 0.01

	// jitterThreshold gates the simulated source's liveness jitter.
	jitterThreshold = 0.02

	jitterScale    = 0.8
	liveHalving    = 0.5
	smoothing      = 0.6
	snapshotWindow = 2048
)

// Source yields per-bar magnitudes in [0, 1] for one frame.
type Source interface {
	Magnitudes(n int, speed float64) []float64
}

// Sampler exposes recently played stereo samples, most recent last.
// *playback.Tap satisfies it; tests substitute their own.
type Sampler interface {
	Snapshot(n int) [][2]float64
}

// newBaseline builds the idle waveform once, from a fixed seed, so it
// is stable across frames and across runs.
func newBaseline(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.1 + 0.35*rng.Float64()
	}
	return out
}

// Live derives magnitudes from recently played samples: per-band RMS,
// compressed, smoothed against the previous frame and halved. While
// the crank is effectively still it falls back to the baseline so the
// strip keeps its idle shape.
type Live struct {
	tap      Sampler
	seed     int64
	baseline []float64
	bands    []float64
	out      []float64
}

// NewLive creates a live source reading from the given tap.
func NewLive(tap Sampler, bars int, seed int64) *Live {
	return &Live{
		tap:      tap,
		seed:     seed,
		baseline: newBaseline(bars, seed),
		bands:    make([]float64, bars),
		out:      make([]float64, bars),
	}
}

// Magnitudes implements Source.
func (l *Live) Magnitudes(n int, speed float64) []float64 {
	if n != len(l.baseline) {
		l.baseline = newBaseline(n, l.seed)
		l.bands = make([]float64, n)
		l.out = make([]float64, n)
	}
	if speed <= liveSpeedFloor {
		copy(l.out, l.baseline)
		return l.out
	}

	samples := l.tap.Snapshot(snapshotWindow)
	if len(samples) == 0 {
		copy(l.out, l.baseline)
		return l.out
	}

	reduceBands(samples, l.bands)
	for i, mag := range l.bands {
		l.out[i] = clamp01(mag * liveHalving)
	}
	return l.out
}

// reduceBands folds stereo samples into per-band RMS magnitudes with
// frame-to-frame smoothing, writing into bands in place.
func reduceBands(samples [][2]float64, bands []float64) {
	segment := len(samples) / len(bands)
	if segment < 1 {
		segment = 1
	}
	for i := range bands {
		start := i * segment
		if start >= len(samples) {
			break
		}
		end := start + segment
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for s := start; s < end; s++ {
			mono := (samples[s][0] + samples[s][1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(end-start))

		// Compress toward 1 so quiet passages still move the bars.
		mag := math.Pow(rms, 0.3)
		bands[i] = smoothing*bands[i] + (1-smoothing)*mag
	}
}

// Simulated fakes liveness without any audio analysis: the baseline
// waveform plus jitter proportional to winding speed.
type Simulated struct {
	seed     int64
	baseline []float64
	rng      *rand.Rand
	out      []float64
}

// NewSimulated creates a simulated source. The jitter stream is seeded
// too, keeping runs reproducible.
func NewSimulated(bars int, seed int64) *Simulated {
	return &Simulated{
		seed:     seed,
		baseline: newBaseline(bars, seed),
		rng:      rand.New(rand.NewSource(seed + 1)),
		out:      make([]float64, bars),
	}
}

// Magnitudes implements Source.
func (s *Simulated) Magnitudes(n int, speed float64) []float64 {
	if n != len(s.baseline) {
		s.baseline = newBaseline(n, s.seed)
		s.out = make([]float64, n)
	}
	copy(s.out, s.baseline)
	if speed <= jitterThreshold {
		return s.out
	}
	for i := range s.out {
		s.out[i] = clamp01(s.out[i] + (s.rng.Float64()-0.5)*speed*jitterScale)
	}
	return s.out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
