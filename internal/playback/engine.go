package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// tapRingSize is how many recent stereo samples the visualizer tap
// keeps. At 44.1kHz this is a bit under 200ms of audio.
const tapRingSize = 8192

// Engine is the beep-backed Transport. The clip is loaded lazily: the
// speaker may not be available until the first user gesture, so load
// failures are logged, swallowed and retried on the next attempt
// rather than treated as fatal. Once loaded the clip loops, so a
// wound-down crank can always be wound up again.
//
// Single-owner: all methods are called from the game loop goroutine.
// speaker.Lock guards the handoff with the speaker's own goroutine.
type Engine struct {
	log  *slog.Logger
	path string
	tap  *Tap

	loaded bool
	warned bool

	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	volume    *effects.Volume
	ctrl      *beep.Ctrl
	paused    bool

	title string
}

// NewEngine creates an engine for the given clip path. The tap exists
// from construction so the visualizer can attach before any audio has
// loaded; it stays empty until the clip streams.
func NewEngine(path string, log *slog.Logger) *Engine {
	return &Engine{
		log:  log,
		path: path,
		tap:  NewTap(tapRingSize),
	}
}

// Tap returns the sample tap feeding the visualizer.
func (e *Engine) Tap() *Tap {
	return e.tap
}

// Title returns a display string for the loaded clip, empty until a
// clip has loaded.
func (e *Engine) Title() string {
	return e.title
}

// Unlock attempts the lazy clip load. Called on the first drag start,
// mirroring the audio unlock a user gesture performs; failures are
// swallowed and retried later.
func (e *Engine) Unlock() {
	e.ensureLoaded()
}

// Play starts the transport if the clip is available. Idempotent; a
// failed load is retried on the next qualifying frame.
func (e *Engine) Play() {
	if !e.ensureLoaded() {
		return
	}
	if !e.paused {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	e.paused = false
}

// Pause halts the transport. Idempotent.
func (e *Engine) Pause() {
	if !e.loaded || e.paused {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.paused = true
}

// SetRate adjusts the playback rate via the resampler.
func (e *Engine) SetRate(rate float64) {
	if !e.loaded {
		return
	}
	speaker.Lock()
	e.resampler.SetRatio(rate)
	speaker.Unlock()
}

// SetVolume applies a linear gain in [0, 1].
func (e *Engine) SetVolume(vol float64) {
	if !e.loaded {
		return
	}
	speaker.Lock()
	if vol <= 0 {
		e.volume.Silent = true
	} else {
		e.volume.Silent = false
		e.volume.Volume = math.Log2(vol)
	}
	speaker.Unlock()
}

// Progress returns the playback position as a fraction in [0, 1], or 0
// when no clip is loaded or its length is unknown.
func (e *Engine) Progress() float64 {
	if !e.loaded {
		return 0
	}
	speaker.Lock()
	pos, length := e.streamer.Position(), e.streamer.Len()
	speaker.Unlock()
	if length <= 0 {
		return 0
	}
	p := float64(pos) / float64(length)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Position returns the elapsed playback time of the current pass.
func (e *Engine) Position() time.Duration {
	if !e.loaded {
		return 0
	}
	speaker.Lock()
	pos := e.streamer.Position()
	speaker.Unlock()
	return e.format.SampleRate.D(pos)
}

// Duration returns the clip length, 0 when unknown.
func (e *Engine) Duration() time.Duration {
	if !e.loaded {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

// Close releases the speaker and the clip. speaker.Clear takes the
// speaker lock itself, so it must not run under speaker.Lock.
func (e *Engine) Close() {
	if !e.loaded {
		return
	}
	speaker.Clear()
	_ = e.streamer.Close()
	_ = e.file.Close()
	e.loaded = false
}

func (e *Engine) ensureLoaded() bool {
	if e.loaded {
		return true
	}
	if e.path == "" {
		return false
	}
	if err := e.load(); err != nil {
		if !e.warned {
			e.log.Warn("clip load failed, will retry", "path", e.path, "error", err)
			e.warned = true
		} else {
			e.log.Debug("clip load retry failed", "path", e.path, "error", err)
		}
		return false
	}
	e.log.Info("clip loaded", "path", e.path, "title", e.title, "duration", e.Duration())
	return true
}

func (e *Engine) load() error {
	f, err := os.Open(e.path)
	if err != nil {
		return err
	}

	title := readTitle(f, e.path)
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(e.path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return errors.New("unsupported clip type: " + filepath.Ext(e.path))
	}
	if err != nil {
		_ = f.Close()
		return err
	}

	// streamer → loop → resampler → tap → volume → ctrl. The tap sits
	// after the resampler so the visualizer sees what is audible.
	resampler := beep.ResampleRatio(4, 1.0, beep.Loop(-1, streamer))
	e.tap.SetSource(resampler)
	volume := &effects.Volume{Streamer: e.tap, Base: 2, Volume: 0, Silent: true}
	ctrl := &beep.Ctrl{Streamer: volume, Paused: true}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}
	speaker.Play(ctrl)

	e.file = f
	e.streamer = streamer
	e.format = format
	e.resampler = resampler
	e.volume = volume
	e.ctrl = ctrl
	e.paused = true
	e.title = title
	e.loaded = true
	return nil
}

// readTitle pulls "artist - title" out of the clip's tags, falling
// back to the file name.
func readTitle(f *os.File, path string) string {
	m, err := tag.ReadFrom(f)
	if err != nil || m.Title() == "" {
		return filepath.Base(path)
	}
	if m.Artist() != "" {
		return fmt.Sprintf("%s - %s", m.Artist(), m.Title())
	}
	return m.Title()
}
