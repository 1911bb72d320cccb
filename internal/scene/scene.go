// Package scene is a small in-memory canvas: an ordered list of freedraw
// elements with stable ids, copy-on-write updates and an operation history
// that only records captured changes.
package scene

import (
	"sync"

	"github.com/google/uuid"

	"github.com/csheth/mathscout/internal/geom"
)

// TypeFreeDraw marks a freehand stroke.
const TypeFreeDraw = "freedraw"

const (
	DefaultStrokeColor = "#000000"
	DefaultStrokeWidth = 2.0
)

// Element is one drawable on the canvas. Points are relative to (X, Y).
// Highlight, when set, overrides Color for display.
type Element struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Points      []geom.Point `json:"points"`
	Color       string       `json:"color"`
	Highlight   string       `json:"syntaxHighlighting,omitempty"`
	StrokeWidth float64      `json:"strokeWidth"`
	Deleted     bool         `json:"isDeleted"`
	Version     int          `json:"version"`
}

func (e Element) clone() Element {
	e.Points = append([]geom.Point(nil), e.Points...)
	return e
}

// Capture tells Update whether a change belongs in the undo history.
type Capture int

const (
	// CaptureImmediately records the change so Undo can revert it.
	CaptureImmediately Capture = iota
	// CaptureNever applies the change without touching the history.
	CaptureNever
)

// op is one captured change; before holds the element versions it replaced.
type op struct {
	before []Element
	added  []string
}

// Scene is safe for concurrent use.
type Scene struct {
	mu       sync.RWMutex
	elements []Element
	index    map[string]int
	history  []op
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{index: map[string]int{}}
}

// NewStroke builds a freedraw element from absolute world points. The first
// point becomes the element origin.
func NewStroke(points []geom.Point, color string, width float64) Element {
	el := Element{
		ID:          uuid.NewString(),
		Type:        TypeFreeDraw,
		Color:       color,
		StrokeWidth: width,
	}
	if el.Color == "" {
		el.Color = DefaultStrokeColor
	}
	if el.StrokeWidth <= 0 {
		el.StrokeWidth = DefaultStrokeWidth
	}
	if len(points) == 0 {
		return el
	}
	el.X, el.Y = points[0].X, points[0].Y
	el.Points = make([]geom.Point, 0, len(points))
	for _, p := range points {
		el.Points = append(el.Points, geom.Point{X: p.X - el.X, Y: p.Y - el.Y})
	}
	return el
}

// Elements returns a copy of every element, deleted ones included, in z-order.
func (s *Scene) Elements() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Element, 0, len(s.elements))
	for _, el := range s.elements {
		out = append(out, el.clone())
	}
	return out
}

// FreeDraw returns the non-deleted freehand strokes in z-order.
func (s *Scene) FreeDraw() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Element, 0, len(s.elements))
	for _, el := range s.elements {
		if el.Type != TypeFreeDraw || el.Deleted {
			continue
		}
		out = append(out, el.clone())
	}
	return out
}

// Element looks up an element by id.
func (s *Scene) Element(id string) (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return Element{}, false
	}
	return s.elements[idx].clone(), true
}

// Add appends an element as a captured change. An element without an id gets one.
func (s *Scene) Add(el Element) Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	if el.Type == "" {
		el.Type = TypeFreeDraw
	}
	el = el.clone()
	if idx, ok := s.index[el.ID]; ok {
		s.history = append(s.history, op{before: []Element{s.elements[idx]}})
		el.Version = s.elements[idx].Version + 1
		s.elements[idx] = el
		return el.clone()
	}
	el.Version = 1
	s.index[el.ID] = len(s.elements)
	s.elements = append(s.elements, el)
	s.history = append(s.history, op{added: []string{el.ID}})
	return el.clone()
}

// Delete marks an element deleted as a captured change.
func (s *Scene) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.index[id]
	if !ok || s.elements[idx].Deleted {
		return false
	}
	s.history = append(s.history, op{before: []Element{s.elements[idx]}})
	s.elements[idx].Deleted = true
	s.elements[idx].Version++
	return true
}

// Update replaces existing elements with the given versions. Unknown ids are
// ignored. With CaptureNever the change is invisible to Undo.
func (s *Scene) Update(elements []Element, capture Capture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var before []Element
	for _, el := range elements {
		idx, ok := s.index[el.ID]
		if !ok {
			continue
		}
		prev := s.elements[idx]
		if capture == CaptureImmediately {
			before = append(before, prev)
		}
		next := el.clone()
		next.Version = prev.Version + 1
		s.elements[idx] = next
	}
	if len(before) > 0 {
		s.history = append(s.history, op{before: before})
	}
}

// Undo reverts the last captured change. Highlight and width set through
// uncaptured updates are kept.
func (s *Scene) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	for _, id := range last.added {
		if idx, ok := s.index[id]; ok {
			s.elements[idx].Deleted = true
			s.elements[idx].Version++
		}
	}
	for _, prev := range last.before {
		idx, ok := s.index[prev.ID]
		if !ok {
			continue
		}
		cur := s.elements[idx]
		restored := prev.clone()
		restored.Highlight = cur.Highlight
		restored.StrokeWidth = cur.StrokeWidth
		restored.Version = cur.Version + 1
		s.elements[idx] = restored
	}
	return true
}

// CanUndo reports whether a captured change is waiting in the history.
func (s *Scene) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history) > 0
}

// LastFreeDraw returns the most recently added live stroke.
func (s *Scene) LastFreeDraw() (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.elements) - 1; i >= 0; i-- {
		el := s.elements[i]
		if el.Type == TypeFreeDraw && !el.Deleted {
			return el.clone(), true
		}
	}
	return Element{}, false
}

// DisplayColor is the color a renderer should draw el with.
func (e Element) DisplayColor() string {
	if e.Highlight != "" {
		return e.Highlight
	}
	return e.Color
}
