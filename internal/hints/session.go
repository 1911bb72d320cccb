// Package hints tracks which feedback symbol is open, which hint step is
// showing, and which strokes are greyed out because the step does not refer
// to them.
package hints

import (
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/trace"
)

// Session is the hint state of one drawing surface.
type Session struct {
	active *overlay.Symbol
	step   int
	traces []*trace.Trace
	greyed []*trace.Trace
}

// New returns an inactive session.
func New() *Session {
	return &Session{}
}

// Activate opens symbol at its first step, greying out every trace the step
// does not mention. Activating the open symbol again closes it.
func (s *Session) Activate(symbol *overlay.Symbol, traces []*trace.Trace) {
	if symbol == nil {
		s.Deactivate()
		return
	}
	if s.active == symbol {
		s.Deactivate()
		return
	}
	s.restore()
	s.active = symbol
	s.step = 0
	s.traces = traces
	s.regrey()
}

// Deactivate closes the open symbol and restores every greyed trace.
func (s *Session) Deactivate() {
	s.restore()
	s.active = nil
	s.step = 0
	s.traces = nil
}

// Next moves to the following step. It stops at the last one.
func (s *Session) Next() {
	if !s.HasNext() {
		return
	}
	s.step++
	s.regrey()
}

// Previous moves back one step. It stops at the first one.
func (s *Session) Previous() {
	if !s.HasPrevious() {
		return
	}
	s.step--
	s.regrey()
}

// HasNext reports whether a "next" control should be shown.
func (s *Session) HasNext() bool {
	return s.active != nil && s.step < len(s.active.Texts)-1
}

// HasPrevious reports whether a "previous" control should be shown.
func (s *Session) HasPrevious() bool {
	return s.active != nil && s.step > 0
}

// Active returns the open symbol or nil.
func (s *Session) Active() *overlay.Symbol {
	return s.active
}

// Step returns the index of the shown step.
func (s *Session) Step() int {
	return s.step
}

// Text returns the shown step's text, or "" when nothing is open.
func (s *Session) Text() string {
	if s.active == nil || s.step >= len(s.active.Texts) {
		return ""
	}
	return s.active.Texts[s.step]
}

// Greyed returns the traces currently greyed out by the session.
func (s *Session) Greyed() []*trace.Trace {
	return append([]*trace.Trace(nil), s.greyed...)
}

func (s *Session) highlighted() map[string]bool {
	keep := map[string]bool{}
	if s.active == nil || s.step >= len(s.active.IDs) {
		return keep
	}
	for _, id := range s.active.IDs[s.step] {
		keep[id] = true
	}
	return keep
}

func (s *Session) regrey() {
	s.restore()
	keep := s.highlighted()
	for _, tr := range s.traces {
		if keep[tr.ID()] {
			continue
		}
		tr.GreyOut(true)
		s.greyed = append(s.greyed, tr)
	}
}

func (s *Session) restore() {
	for _, tr := range s.greyed {
		tr.GreyOut(false)
	}
	s.greyed = nil
}
