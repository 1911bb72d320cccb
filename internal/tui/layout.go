package tui

import (
	"github.com/csheth/mathscout/internal/geom"
)

type canvasLayout struct {
	windowWidth  int
	windowHeight int
	cols         int
	rows         int
	top          int
}

func newCanvasLayout() canvasLayout {
	l := canvasLayout{}
	l.Update(80, 24, false)
	return l
}

// Update recomputes the canvas area. The full help takes four more lines than
// the short one.
func (l *canvasLayout) Update(width, height int, fullHelp bool) {
	l.windowWidth = width
	l.windowHeight = height
	l.top = headerHeight
	l.cols = width
	if l.cols < minCanvasCols {
		l.cols = minCanvasCols
	}
	chrome := headerHeight + statusHeight + helpLineHeight
	if fullHelp {
		chrome += 4
	}
	l.rows = height - chrome
	if l.rows < minCanvasRows {
		l.rows = minCanvasRows
	}
}

// widthPx is the canvas width in screen pixels.
func (l canvasLayout) widthPx() float64 {
	return float64(l.cols * cellWidth)
}

// cellAt maps a screen pixel position to a canvas cell.
func (l canvasLayout) cellAt(p geom.Point) (col, row int) {
	return floorDiv(p.X, cellWidth), floorDiv(p.Y, cellHeight)
}

// screenAt maps a terminal mouse position to the screen pixel at the center
// of that cell. ok is false outside the canvas.
func (l canvasLayout) screenAt(x, y int) (geom.Point, bool) {
	row := y - l.top
	if x < 0 || x >= l.cols || row < 0 || row >= l.rows {
		return geom.Point{}, false
	}
	return geom.Point{
		X: float64(x*cellWidth + cellWidth/2),
		Y: float64(row*cellHeight + cellHeight/2),
	}, true
}

func floorDiv(v float64, size int) int {
	q := int(v) / size
	if v < 0 && float64(q*size) != v {
		q--
	}
	return q
}
