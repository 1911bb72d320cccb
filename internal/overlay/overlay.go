// Package overlay computes where recognition output goes: formula captions
// above each line of writing, feedback symbols to the right of each
// equation, and the placement of the hint bubble next to a symbol.
package overlay

import (
	"math"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/trace"
)

// Line is a recognized formula caption anchored in world space.
type Line struct {
	Position geom.Point
	Text     string
}

// Symbol is a ✓/✗ marker. Texts and IDs run in parallel: IDs[i] lists the
// strokes step i refers to.
type Symbol struct {
	Position geom.Point
	Texts    []string
	IDs      [][]string
	Correct  bool
}

// Steps is the number of hint steps the symbol carries.
func (s *Symbol) Steps() int {
	return len(s.Texts)
}

// LineAnchor places a caption at the horizontal middle of the traces and at
// their top edge. ok is false when the traces carry no points.
func LineAnchor(traces []*trace.Trace) (geom.Point, bool) {
	b := bounds(traces)
	if b.Empty() {
		return geom.Point{}, false
	}
	return geom.Point{X: (b.MinX + b.MaxX) / 2, Y: b.MinY}, true
}

// SymbolAnchor places a symbol offset to the right of the traces, vertically
// centered on them.
func SymbolAnchor(traces []*trace.Trace, offset float64) (geom.Point, bool) {
	b := bounds(traces)
	if b.Empty() {
		return geom.Point{}, false
	}
	return geom.Point{X: b.MaxX + offset, Y: (b.MaxY + b.MinY) / 2}, true
}

func bounds(traces []*trace.Trace) geom.Bounds {
	b := geom.EmptyBounds()
	for _, tr := range traces {
		xs, ys := tr.X(), tr.Y()
		for i := range xs {
			if i >= len(ys) {
				break
			}
			b.Extend(xs[i], ys[i])
		}
	}
	return b
}

// Direction tells the renderer which side of the symbol the bubble opens on.
type Direction int

const (
	Right Direction = iota
	Below
)

func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "right"
}

const (
	// DefaultMinBubbleWidth is the room a bubble needs to open to the right.
	DefaultMinBubbleWidth = 200.0
	offscreenCutoff       = -100.0
	pointerInset          = 30.0
)

// Placement describes how to lay out a hint bubble.
type Placement struct {
	Hidden    bool
	Direction Direction
	// Left is the bubble's left edge when it opens to the right.
	Left float64
	Top  float64
	// Space is the room between the symbol and the right window edge.
	Space float64
	// TriangleRight is the pointer's distance from the right edge for
	// bubbles rendered below, right-aligned.
	TriangleRight float64
}

// Place lays out a bubble for a symbol at screen position within a window
// windowWidth wide.
func Place(screen geom.Point, windowWidth, minWidth float64) Placement {
	if minWidth <= 0 {
		minWidth = DefaultMinBubbleWidth
	}
	space := windowWidth - screen.X
	if space < offscreenCutoff {
		return Placement{Hidden: true, Space: space}
	}
	p := Placement{
		Top:           screen.Y,
		Space:         space,
		TriangleRight: math.Max(space-pointerInset, 0),
	}
	if space > minWidth {
		p.Direction = Right
		p.Left = screen.X
	} else {
		p.Direction = Below
	}
	return p
}
