// Package game runs the crank player's frame loop: pointer input spins
// the crank, crank speed drives the transport, and every frame renders
// the visualizer, the slideshow and the crank itself.
package game

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/crank-player/internal/config"
	"github.com/iburimskiy/crank-player/internal/crank"
	"github.com/iburimskiy/crank-player/internal/playback"
	"github.com/iburimskiy/crank-player/internal/slideshow"
	"github.com/iburimskiy/crank-player/internal/util"
	"github.com/iburimskiy/crank-player/internal/visualizer"
)

var (
	backgroundColor = color.RGBA{R: 0x14, G: 0x12, B: 0x1c, A: 0xff}
	discColor       = color.RGBA{R: 0x2c, G: 0x28, B: 0x3a, A: 0xff}
	rimColor        = color.RGBA{R: 0x8f, G: 0x86, B: 0xb8, A: 0xff}
	knobColor       = color.RGBA{R: 0xe8, G: 0x43, B: 0x93, A: 0xff}
)

// Options collects everything a Game needs. All fields are required
// except that the slideshow may be empty.
type Options struct {
	Config    config.Config
	Log       *slog.Logger
	Engine    *playback.Engine
	Source    visualizer.Source
	Slideshow *slideshow.Slideshow
}

// Game implements ebiten.Game. It owns all mutable widget state; input
// and the per-frame step run on the same goroutine, so no locking
// happens here.
type Game struct {
	cfg config.Config
	log *slog.Logger

	crank  crank.State
	engine *playback.Engine
	source visualizer.Source
	viz    *visualizer.Renderer
	show   *slideshow.Slideshow

	lay        layout
	crankImage *ebiten.Image
	touchIDs   []ebiten.TouchID

	// Last pointer position seen during a drag. Drag moves are
	// event-driven: a pointer that holds still produces no move, so
	// velocity keeps its last value instead of being zeroed by a
	// zero delta.
	lastPX, lastPY int
}

// New builds the game from validated options. Config colors are
// assumed valid (config.Validate ran at startup).
func New(opts Options) *Game {
	active, _ := config.ParseHexColor(opts.Config.Visualizer.ActiveColor)
	inactive, _ := config.ParseHexColor(opts.Config.Visualizer.InactiveColor)

	lay := layoutFor(float64(opts.Config.Window.Width), float64(opts.Config.Window.Height))
	return &Game{
		cfg:        opts.Config,
		log:        opts.Log,
		engine:     opts.Engine,
		source:     opts.Source,
		viz:        visualizer.NewRenderer(active, inactive),
		show:       opts.Slideshow,
		lay:        lay,
		crankImage: newCrankImage(lay.crankR),
	}
}

// Update advances one frame: resolve the pointer, run the drag
// lifecycle, apply friction, drive the transport and sync the
// slideshow. It only ever returns ebiten.Termination; everything else
// degrades and logs, the loop must not stop.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.handlePointer(g.pointerState())

	g.crank.Step()
	playback.Drive(g.crank.Speed(), g.engine)
	if g.show.Sync(g.engine.Progress()) {
		g.log.Debug("photo changed", "index", g.show.Active())
	}
	return nil
}

// Draw renders the frame: background, active photo, visualizer strip,
// rotated crank disc, debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.show.Draw(screen, g.lay.photoX, g.lay.photoY, g.lay.photoW, g.lay.photoH)

	mags := g.source.Magnitudes(g.cfg.Visualizer.Bars, g.crank.Speed())
	g.viz.Draw(screen, g.lay.vizX, g.lay.vizY, g.lay.vizW, g.lay.vizH, mags, g.engine.Progress())

	g.drawCrank(screen)
	g.drawOverlay(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) drawCrank(screen *ebiten.Image) {
	b := g.crankImage.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(g.crank.Angle)
	op.GeoM.Translate(g.lay.crankX, g.lay.crankY)
	screen.DrawImage(g.crankImage, &op)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	speed := g.crank.Speed()
	state := "paused"
	if speed > playback.PlayThreshold {
		state = "playing"
	}

	title := g.engine.Title()
	if title == "" {
		title = "no clip - wind the crank anyway"
	}

	status := fmt.Sprintf("%s | %s | speed %.3f rate %.2f | %s / %s",
		title, state, speed, playback.RateFor(speed),
		util.FormatDuration(g.engine.Position()),
		util.FormatDuration(g.engine.Duration()),
	)
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// newCrankImage prerenders the crank disc once; Draw rotates it with a
// GeoM instead of redrawing the shapes each frame. The off-center knob
// is what makes the rotation visible.
func newCrankImage(radius float64) *ebiten.Image {
	size := int(radius*2) + 4
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	r := float32(radius)

	vector.DrawFilledCircle(img, c, c, r, discColor, true)
	vector.StrokeCircle(img, c, c, r-1, 3, rimColor, true)
	vector.DrawFilledCircle(img, c, c, r*0.08, rimColor, true)
	vector.DrawFilledCircle(img, c+r*0.65, c, r*0.18, knobColor, true)
	return img
}
