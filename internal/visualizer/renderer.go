package visualizer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// BarCount is the fixed number of bars across the strip.
	BarCount = 32

	// MinBarHeight keeps every bar visible even at zero magnitude.
	MinBarHeight = 4
)

// Renderer draws the bar strip. Bars are bottom-anchored rectangles;
// their color reflects horizontal position relative to playback
// progress (a hard active/inactive split), not their own magnitude.
type Renderer struct {
	Active   color.Color
	Inactive color.Color
}

// NewRenderer creates a renderer with the given progress colors.
func NewRenderer(active, inactive color.Color) *Renderer {
	return &Renderer{Active: active, Inactive: inactive}
}

// BarHeight converts a magnitude in [0, 1] to a pixel height clamped
// to [MinBarHeight, surfaceHeight].
func BarHeight(mag, surfaceHeight float64) float64 {
	h := mag * surfaceHeight
	if h < MinBarHeight {
		return MinBarHeight
	}
	if h > surfaceHeight {
		return surfaceHeight
	}
	return h
}

// BarWidth returns the drawable width of one bar for a strip of the
// given total width, leaving a one-pixel gap between bars. Adapts to
// whatever size the surface currently has.
func BarWidth(surfaceWidth float64, bars int) float64 {
	w := surfaceWidth/float64(bars) - 1
	if w < 1 {
		return 1
	}
	return w
}

// SplitX returns the x offset of the hard color transition for the
// given progress, clamped to [0, 1].
func SplitX(surfaceWidth, progress float64) float64 {
	return clamp01(progress) * surfaceWidth
}

// Draw renders the strip into dst at (x, y) with the given size. A bar
// straddling the progress split is painted in both colors, split at
// the progress x, which is what a hard-stop gradient fill produces.
func (r *Renderer) Draw(dst *ebiten.Image, x, y, width, height float64, mags []float64, progress float64) {
	if len(mags) == 0 || width <= 0 || height <= 0 {
		return
	}

	split := x + SplitX(width, progress)
	step := width / float64(len(mags))
	barW := BarWidth(width, len(mags))

	for i, mag := range mags {
		h := BarHeight(mag, height)
		bx := x + float64(i)*step
		by := y + height - h

		left, right := bx, bx+barW
		switch {
		case right <= split:
			fillRect(dst, left, by, barW, h, r.Active)
		case left >= split:
			fillRect(dst, left, by, barW, h, r.Inactive)
		default:
			fillRect(dst, left, by, split-left, h, r.Active)
			fillRect(dst, split, by, right-split, h, r.Inactive)
		}
	}
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}
