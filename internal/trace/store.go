package trace

import "github.com/csheth/mathscout/internal/scene"

// Store hands out one Trace per live stroke and keeps it across render
// passes, so grey-out state is not lost when the canvas redraws.
type Store struct {
	canvas Canvas
	grey   GreyStyle
	byID   map[string]*Trace
}

// NewStore builds a store reading from canvas.
func NewStore(canvas Canvas, grey GreyStyle) *Store {
	return &Store{canvas: canvas, grey: grey, byID: map[string]*Trace{}}
}

// Sync returns the traces for elements in the same order. Deleted and
// non-freedraw elements are skipped. Traces for strokes no longer present
// are forgotten.
func (s *Store) Sync(elements []scene.Element) []*Trace {
	out := make([]*Trace, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, el := range elements {
		if el.Deleted || el.Type != scene.TypeFreeDraw || seen[el.ID] {
			continue
		}
		seen[el.ID] = true
		tr, ok := s.byID[el.ID]
		if !ok {
			tr = New(el.ID, s.canvas, s.grey)
			s.byID[el.ID] = tr
		}
		out = append(out, tr)
	}
	for id := range s.byID {
		if !seen[id] {
			delete(s.byID, id)
		}
	}
	return out
}

// Len reports how many traces the store currently tracks.
func (s *Store) Len() int {
	return len(s.byID)
}
