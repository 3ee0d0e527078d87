package game

// layout places the three display regions for a given window size:
// photos on top, the visualizer strip in the middle, the crank disc at
// the bottom center.
type layout struct {
	photoX, photoY, photoW, photoH float64
	vizX, vizY, vizW, vizH         float64
	crankX, crankY, crankR         float64
}

const margin = 16

func layoutFor(w, h float64) layout {
	short := w
	if h < short {
		short = h
	}

	var l layout
	l.crankR = 0.16 * short
	l.crankX = w / 2
	l.crankY = h - margin - l.crankR

	l.vizH = 0.2 * h
	l.vizX = margin
	l.vizW = w - 2*margin
	l.vizY = l.crankY - l.crankR - margin - l.vizH

	l.photoX = margin
	l.photoY = margin
	l.photoW = w - 2*margin
	l.photoH = l.vizY - 2*margin
	if l.photoH < 0 {
		l.photoH = 0
	}
	return l
}
