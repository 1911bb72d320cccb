package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/scene"
)

// gridSpacing is the distance between background dots in world units.
const gridSpacing = 64.0

var paperBlend = mustHex(string(paperColor))

type cell struct {
	r     rune
	style lipgloss.Style
}

type grid struct {
	cols  int
	rows  int
	cells [][]cell
}

func newGrid(cols, rows int) *grid {
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

func (g *grid) set(col, row int, r rune, style lipgloss.Style) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row][col] = cell{r: r, style: style}
}

func (g *grid) text(col, row int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, style)
	}
}

// line plots a Bresenham line between two cells.
func (g *grid) line(c0, r0, c1, r1 int, ch rune, style lipgloss.Style) {
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	errTerm := dc + dr
	for {
		g.set(c0, r0, ch, style)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * errTerm
		if e2 >= dr {
			errTerm += dr
			c0 += sc
		}
		if e2 <= dc {
			errTerm += dc
			r0 += sr
		}
	}
}

func (g *grid) render() string {
	lines := make([]string, g.rows)
	for y, row := range g.cells {
		var b strings.Builder
		blank := 0
		flush := func() {
			if blank > 0 {
				b.WriteString(paperStyle.Render(strings.Repeat(" ", blank)))
				blank = 0
			}
		}
		for _, c := range row {
			if c.r == 0 {
				blank++
				continue
			}
			flush()
			b.WriteString(c.style.Render(string(c.r)))
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (m *model) canvasView() string {
	g := newGrid(m.layout.cols, m.layout.rows)
	m.drawDots(g)
	for _, el := range m.scene.FreeDraw() {
		m.drawStroke(g, el.X, el.Y, el.Points, el.StrokeWidth, inkStyle(el.DisplayColor()))
	}
	if m.mode == modeDrawing && len(m.stroke) > 0 {
		origin := m.stroke[0]
		rel := make([]geom.Point, len(m.stroke))
		for i, p := range m.stroke {
			rel[i] = geom.Point{X: p.X - origin.X, Y: p.Y - origin.Y}
		}
		m.drawStroke(g, origin.X, origin.Y, rel, scene.DefaultStrokeWidth, inkStyle(string(accentColor)))
	}
	m.drawCaptions(g)
	m.drawSymbols(g)
	m.drawParticles(g)
	m.drawBubble(g)
	return g.render()
}

func (m *model) drawDots(g *grid) {
	zoom := m.vp.Zoom()
	if gridSpacing*zoom < 2*cellWidth {
		return
	}
	origin := m.vp.ToWorld(geom.Point{})
	startX := math.Floor(origin.X/gridSpacing) * gridSpacing
	startY := math.Floor(origin.Y/gridSpacing) * gridSpacing
	maxX := float64(g.cols * cellWidth)
	maxY := float64(g.rows * cellHeight)
	for wy := startY; ; wy += gridSpacing {
		sy := m.vp.Transform(geom.Point{X: startX, Y: wy}).Y
		if sy > maxY {
			break
		}
		for wx := startX; ; wx += gridSpacing {
			s := m.vp.Transform(geom.Point{X: wx, Y: wy})
			if s.X > maxX {
				break
			}
			col, row := m.layout.cellAt(s)
			g.set(col, row, '·', gridDotStyle)
		}
	}
}

func (m *model) drawStroke(g *grid, x, y float64, points []geom.Point, width float64, style lipgloss.Style) {
	ch := '•'
	if width*m.vp.Zoom() >= 4 {
		ch = '█'
	}
	prevCol, prevRow := 0, 0
	for i, p := range points {
		screen := m.vp.Transform(geom.Point{X: x + p.X, Y: y + p.Y})
		col, row := m.layout.cellAt(screen)
		if i == 0 {
			g.set(col, row, ch, style)
		} else {
			g.line(prevCol, prevRow, col, row, ch, style)
		}
		prevCol, prevRow = col, row
	}
}

func (m *model) drawCaptions(g *grid) {
	lines := m.eval.Lines()
	for i, anchor := range m.lineAnchors {
		if i >= len(lines) {
			break
		}
		text := lines[i].Text
		col, row := m.layout.cellAt(anchor.Screen())
		g.text(col-len([]rune(text))/2, row-1, text, captionStyle)
	}
}

func (m *model) drawSymbols(g *grid) {
	symbols := m.eval.Symbols()
	for i, anchor := range m.symbolAnchors {
		if i >= len(symbols) {
			break
		}
		col, row := m.layout.cellAt(anchor.Screen())
		if symbols[i].Correct {
			g.set(col, row, '✓', correctStyle)
		} else {
			g.set(col, row, '✗', wrongStyle)
		}
		if i < maxSymbolKeys {
			g.text(col+1, row, fmt.Sprintf("%d", i+1), symbolKeyStyle)
		}
	}
}

func (m *model) drawParticles(g *grid) {
	now := m.now()
	for _, b := range m.bursts {
		progress := float64(now.Sub(b.started)) / float64(overlay.BurstLifetime)
		if progress >= 1 {
			continue
		}
		for _, p := range b.particles {
			col, row := m.layout.cellAt(p.At(progress))
			color := p.Color.BlendRgb(paperBlend, 1-p.Opacity(progress)).Hex()
			g.set(col, row, particleRune(p.Size(progress)), inkStyle(color))
		}
	}
}

func particleRune(size float64) rune {
	switch {
	case size > 3:
		return '●'
	case size > 1.5:
		return '•'
	default:
		return '·'
	}
}

func (m *model) drawBubble(g *grid) {
	session := m.eval.Session()
	active := session.Active()
	if active == nil {
		return
	}
	idx := -1
	for i, s := range m.eval.Symbols() {
		if s == active {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(m.symbolAnchors) {
		return
	}
	screen := m.symbolAnchors[idx].Screen()
	placement := overlay.Place(screen, m.layout.widthPx(), m.config.MinHintWidth)
	if placement.Hidden {
		return
	}

	body := bubbleLines(session.Text(), session.Step(), active.Steps(), session.HasPrevious(), session.HasNext())
	symCol, symRow := m.layout.cellAt(screen)
	switch placement.Direction {
	case overlay.Right:
		left := symCol + 3
		g.set(left-1, symRow, '◀', bubbleEdge)
		for i, line := range body {
			g.text(left, symRow+i, line, bubbleStyle)
		}
	case overlay.Below:
		left := g.cols - bubbleWidth
		if left < 0 {
			left = 0
		}
		pointer, _ := m.layout.cellAt(geom.Point{X: m.layout.widthPx() - placement.TriangleRight})
		if pointer < left {
			pointer = left
		}
		g.set(pointer, symRow+1, '▲', bubbleEdge)
		for i, line := range body {
			g.text(left, symRow+2+i, line, bubbleStyle)
		}
	}
}

// bubbleLines wraps a hint step into fixed-width rows and appends the step
// navigation footer.
func bubbleLines(text string, step, steps int, hasPrev, hasNext bool) []string {
	inner := bubbleWidth - 2
	wrapped := strings.Split(wordwrap.String(text, inner), "\n")
	footer := fmt.Sprintf("step %d/%d", step+1, steps)
	if hasPrev {
		footer = "‹p " + footer
	}
	if hasNext {
		footer += " n›"
	}
	wrapped = append(wrapped, footer)
	out := make([]string, 0, len(wrapped))
	for _, line := range wrapped {
		out = append(out, " "+padRight(line, inner)+" ")
	}
	return out
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
