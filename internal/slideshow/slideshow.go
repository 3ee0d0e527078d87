// Package slideshow maps playback progress onto a fixed list of
// photos, keeping exactly one photo active at a time.
package slideshow

import (
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Slideshow holds the photo list and the currently active index.
// With no photos every operation is a no-op and Active reports -1.
type Slideshow struct {
	photos []*ebiten.Image
	active int
}

// New creates a slideshow over the given photos. With at least one
// photo the first is active immediately.
func New(photos []*ebiten.Image) *Slideshow {
	s := &Slideshow{photos: photos, active: -1}
	if len(photos) > 0 {
		s.active = 0
	}
	return s
}

// Load reads every .jpg/.jpeg/.png in dir, sorted by file name. A
// missing or empty directory degrades to an empty slideshow with a
// warning; a single unreadable photo is skipped, not fatal.
func Load(dir string, log *slog.Logger) *Slideshow {
	if dir == "" {
		return New(nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("photo directory unavailable", "dir", dir, "error", err)
		return New(nil)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var photos []*ebiten.Image
	for _, name := range names {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping unreadable photo", "file", name, "error", err)
			continue
		}
		photos = append(photos, img)
	}
	log.Info("slideshow loaded", "dir", dir, "photos", len(photos))
	return New(photos)
}

// IndexFor maps progress in [0, 1] to a photo index, clamped to
// [0, count-1]. Returns -1 when there are no photos.
func IndexFor(progress float64, count int) int {
	if count == 0 {
		return -1
	}
	idx := int(progress * float64(count))
	if idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// Sync updates the active photo for the given progress and reports
// whether it changed. No-op with no photos.
func (s *Slideshow) Sync(progress float64) bool {
	if len(s.photos) == 0 {
		return false
	}
	idx := IndexFor(progress, len(s.photos))
	if idx == s.active {
		return false
	}
	s.active = idx
	return true
}

// Active returns the active photo index, -1 with no photos.
func (s *Slideshow) Active() int {
	return s.active
}

// Count returns the number of photos.
func (s *Slideshow) Count() int {
	return len(s.photos)
}

// Draw renders the active photo centered in the given area, scaled to
// fit while preserving aspect ratio.
func (s *Slideshow) Draw(dst *ebiten.Image, x, y, width, height float64) {
	if s.active < 0 {
		return
	}
	img := s.photos[s.active]
	if img == nil {
		return
	}

	b := img.Bounds()
	scale := width / float64(b.Dx())
	if hs := height / float64(b.Dy()); hs < scale {
		scale = hs
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		x+(width-float64(b.Dx())*scale)/2,
		y+(height-float64(b.Dy())*scale)/2,
	)
	dst.DrawImage(img, &op)
}
