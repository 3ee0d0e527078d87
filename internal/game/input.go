package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/crank-player/internal/crank"
)

// withinDisc reports whether the pointer lies inside the crank disc.
// Drags begin only here; once a drag is active the pointer may leave
// the disc without ending it.
func withinDisc(px, py, cx, cy, r float64) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
}

// handlePointer runs one frame of the drag lifecycle. Drag moves fire
// only when the pointer actually moved since the last frame; pressing
// without moving, or holding still mid-drag, mutates nothing.
func (g *Game) handlePointer(px, py int, pressed bool) {
	fx, fy := float64(px), float64(py)
	switch {
	case pressed && !g.crank.Dragging():
		if withinDisc(fx, fy, g.lay.crankX, g.lay.crankY, g.lay.crankR) {
			g.crank.StartDrag(crank.AngleFromPivot(g.lay.crankX, g.lay.crankY, fx, fy))
			g.lastPX, g.lastPY = px, py
			// First gesture unlocks the audio backend.
			g.engine.Unlock()
		}
	case pressed:
		if px != g.lastPX || py != g.lastPY {
			g.crank.Drag(crank.AngleFromPivot(g.lay.crankX, g.lay.crankY, fx, fy))
			g.lastPX, g.lastPY = px, py
		}
	case g.crank.Dragging():
		g.crank.EndDrag()
	}
}

// pointerState resolves the active pointer: the mouse when its left
// button is down, else the first active touch. With neither, the
// cursor position is returned unpressed.
func (g *Game) pointerState() (x, y int, pressed bool) {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		return x, y, true
	}
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(g.touchIDs[0])
		return x, y, true
	}
	x, y = ebiten.CursorPosition()
	return x, y, false
}
