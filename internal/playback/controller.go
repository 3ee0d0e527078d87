// Package playback maps crank speed onto an audio transport and
// provides the beep-backed transport itself.
package playback

// Speed-to-transport mapping constants.
const (
	// PlayThreshold is the winding speed above which the transport
	// runs. There is no hysteresis band: the state flips whichever
	// frame the threshold is crossed.
	PlayThreshold = 0.02

	// RateMin and RateMax bound the playback rate.
	RateMin = 0.8
	RateMax = 1.5

	rateBase    = 0.5
	rateScale   = 3.0
	volumeScale = 5.0
)

// Transport is the audio backend driven by the controller. Play and
// Pause are idempotent; a backend that cannot start yet (e.g. the clip
// has not loaded) must swallow the failure so it can be retried on a
// later qualifying frame.
type Transport interface {
	Play()
	Pause()
	SetRate(rate float64)
	SetVolume(vol float64)
}

// RateFor maps winding speed to a playback rate in [RateMin, RateMax].
func RateFor(speed float64) float64 {
	r := rateBase + speed*rateScale
	if r < RateMin {
		return RateMin
	}
	if r > RateMax {
		return RateMax
	}
	return r
}

// VolumeFor maps winding speed to a linear gain in [0, 1].
func VolumeFor(speed float64) float64 {
	v := speed * volumeScale
	if v > 1 {
		return 1
	}
	return v
}

// Drive applies one frame of the speed-to-transport mapping: above the
// threshold the transport plays at a speed-derived rate and volume,
// below it the transport pauses.
func Drive(speed float64, t Transport) {
	if speed > PlayThreshold {
		t.Play()
		t.SetRate(RateFor(speed))
		t.SetVolume(VolumeFor(speed))
		return
	}
	t.Pause()
}
