// Package trace wraps canvas strokes with the operations the recognition
// layer needs: absolute coordinates, serialization, recoloring and grey-out.
package trace

import (
	"github.com/csheth/mathscout/internal/recognizer"
	"github.com/csheth/mathscout/internal/scene"
)

// Canvas is the part of the scene a trace reads from and writes to.
type Canvas interface {
	Element(id string) (scene.Element, bool)
	Update(elements []scene.Element, capture scene.Capture)
}

// GreyStyle is applied to strokes that are not part of the current hint step.
type GreyStyle struct {
	Color      string
	WidthScale float64
}

// DefaultGreyStyle keeps the width and only swaps the color.
var DefaultGreyStyle = GreyStyle{Color: "#aaaaaa", WidthScale: 1.0}

// Trace is a view of one freedraw element. It does not own the element; every
// read goes through the canvas so it always reflects the latest version.
type Trace struct {
	id     string
	canvas Canvas
	grey   GreyStyle

	greyed    bool
	origColor string
	origWidth float64
}

// New wraps the element with the given id.
func New(id string, canvas Canvas, grey GreyStyle) *Trace {
	if grey.Color == "" {
		grey.Color = DefaultGreyStyle.Color
	}
	if grey.WidthScale <= 0 {
		grey.WidthScale = DefaultGreyStyle.WidthScale
	}
	return &Trace{id: id, canvas: canvas, grey: grey}
}

// ID returns the stroke id.
func (t *Trace) ID() string {
	return t.id
}

func (t *Trace) element() (scene.Element, bool) {
	el, ok := t.canvas.Element(t.id)
	if !ok || el.Deleted {
		return scene.Element{}, false
	}
	return el, true
}

// X returns the absolute x coordinate of every point.
func (t *Trace) X() []float64 {
	el, ok := t.element()
	if !ok {
		return nil
	}
	xs := make([]float64, len(el.Points))
	for i, p := range el.Points {
		xs[i] = p.X + el.X
	}
	return xs
}

// Y returns the absolute y coordinate of every point.
func (t *Trace) Y() []float64 {
	el, ok := t.element()
	if !ok {
		return nil
	}
	ys := make([]float64, len(el.Points))
	for i, p := range el.Points {
		ys[i] = p.Y + el.Y
	}
	return ys
}

// Color is the display color currently on the canvas.
func (t *Trace) Color() string {
	el, _ := t.element()
	return el.DisplayColor()
}

// Width is the stroke width currently on the canvas.
func (t *Trace) Width() float64 {
	el, _ := t.element()
	return el.StrokeWidth
}

// Greyed reports whether GreyOut(true) is in effect.
func (t *Trace) Greyed() bool {
	return t.greyed
}

// Serialize produces the wire form with every coordinate divided by scale.
func (t *Trace) Serialize(scale float64) recognizer.Trace {
	if scale == 0 {
		scale = 1
	}
	xs, ys := t.X(), t.Y()
	for i := range xs {
		xs[i] /= scale
	}
	for i := range ys {
		ys[i] /= scale
	}
	if xs == nil {
		xs = []float64{}
	}
	if ys == nil {
		ys = []float64{}
	}
	return recognizer.Trace{X: xs, Y: ys, ID: t.id}
}

// SetColor recolors the stroke without touching the undo history.
func (t *Trace) SetColor(color string) {
	t.apply(func(el *scene.Element) { el.Highlight = color })
}

// GreyOut(true) remembers the current color and width and applies the grey
// style. Calling it again while greyed keeps the first remembered values.
// GreyOut(false) restores them.
func (t *Trace) GreyOut(enable bool) {
	if enable {
		if t.greyed {
			return
		}
		el, ok := t.element()
		if !ok {
			return
		}
		t.origColor = el.Highlight
		t.origWidth = el.StrokeWidth
		t.greyed = true
		t.apply(func(el *scene.Element) {
			el.Highlight = t.grey.Color
			el.StrokeWidth = t.origWidth * t.grey.WidthScale
		})
		return
	}
	if !t.greyed {
		return
	}
	color, width := t.origColor, t.origWidth
	t.greyed = false
	t.origColor, t.origWidth = "", 0
	// An erased stroke is restored too, so undoing the erase brings back
	// its real color.
	el, ok := t.canvas.Element(t.id)
	if !ok {
		return
	}
	el.Highlight = color
	el.StrokeWidth = width
	t.canvas.Update([]scene.Element{el}, scene.CaptureNever)
}

func (t *Trace) apply(mutate func(el *scene.Element)) {
	el, ok := t.element()
	if !ok {
		return
	}
	mutate(&el)
	t.canvas.Update([]scene.Element{el}, scene.CaptureNever)
}
