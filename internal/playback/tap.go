package playback

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap sits in the playback chain and records the last N stereo samples
// into a ring buffer. The visualizer reads snapshots of it from the
// frame loop while the speaker goroutine keeps writing, hence the lock.
type Tap struct {
	mu     sync.RWMutex
	source beep.Streamer
	ring   [][2]float64
	next   int
	filled bool
}

// NewTap creates a tap with the given ring size. The source may be set
// later, before the tap is first streamed.
func NewTap(ringSize int) *Tap {
	return &Tap{ring: make([][2]float64, ringSize)}
}

// SetSource attaches the upstream streamer the tap pulls from.
func (t *Tap) SetSource(src beep.Streamer) {
	t.mu.Lock()
	t.source = src
	t.mu.Unlock()
}

// Stream implements beep.Streamer, copying everything that passes
// through into the ring.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	t.mu.RLock()
	src := t.source
	t.mu.RUnlock()
	if src == nil {
		return 0, false
	}

	n, ok := src.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = samples[i]
			t.next++
			if t.next >= len(t.ring) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

// Err implements beep.Streamer.
func (t *Tap) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.source == nil {
		return nil
	}
	return t.source.Err()
}

// Snapshot returns up to the last n samples in chronological order.
// Before anything has streamed it returns an empty slice, which the
// visualizer treats as "no live data".
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	avail := len(t.ring)
	if !t.filled {
		avail = t.next
	}
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil
	}

	out := make([][2]float64, n)
	start := t.next - n
	if start < 0 {
		start += len(t.ring)
	}
	for i := 0; i < n; i++ {
		out[i] = t.ring[(start+i)%len(t.ring)]
	}
	return out
}
