// Package recognizer is the HTTP client for the handwriting recognition
// service and the JSON shapes it speaks.
package recognizer

import (
	"encoding/json"
	"fmt"
)

// Trace is one stroke as sent to the service, already divided by the scale.
type Trace struct {
	X  []float64 `json:"x"`
	Y  []float64 `json:"y"`
	ID string    `json:"id"`
}

// RecognizeRequest asks the service to recognize the full trace set. Graph is
// the previously accepted graph, nil before the first answer.
type RecognizeRequest struct {
	Traces []Trace `json:"traces"`
	Graph  *string `json:"graph"`
}

// RecognizeResponse is the service's reading of the canvas.
type RecognizeResponse struct {
	Graph       string       `json:"graph"`
	TraceGroups []TraceGroup `json:"trace_groups"`
	Lines       []Line       `json:"lines"`
}

// TraceGroup is a set of strokes recognized as one symbol.
// On the wire it is the tuple [ids, symbol].
type TraceGroup struct {
	IDs    []string
	Symbol string
}

// Line is a recognized line of writing. On the wire: [ids, formula].
type Line struct {
	IDs     []string
	Formula string
}

// HintsRequest asks for feedback on the last recognized graph.
type HintsRequest struct {
	Graph  *string `json:"graph"`
	Traces []Trace `json:"traces"`
}

// HintsResponse carries one hint per equation.
type HintsResponse struct {
	Hints []Hint `json:"hints"`
}

// Hint is [equationIds, [[text, ids], ...]]. No steps means the equation is correct.
type Hint struct {
	EquationIDs []string
	Steps       []HintStep
}

// HintStep is [text, ids]. Empty IDs refer to the whole equation.
type HintStep struct {
	Text string
	IDs  []string
}

func (g TraceGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{nonNil(g.IDs), g.Symbol})
}

func (g *TraceGroup) UnmarshalJSON(data []byte) error {
	ids, text, err := decodePair(data, "trace group")
	if err != nil {
		return err
	}
	g.IDs, g.Symbol = ids, text
	return nil
}

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{nonNil(l.IDs), l.Formula})
}

func (l *Line) UnmarshalJSON(data []byte) error {
	ids, text, err := decodePair(data, "line")
	if err != nil {
		return err
	}
	l.IDs, l.Formula = ids, text
	return nil
}

func (s HintStep) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Text, nonNil(s.IDs)})
}

func (s *HintStep) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hint step: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("hint step: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Text); err != nil {
		return fmt.Errorf("hint step text: %w", err)
	}
	s.IDs = nil
	if err := json.Unmarshal(raw[1], &s.IDs); err != nil {
		return fmt.Errorf("hint step ids: %w", err)
	}
	return nil
}

func (h Hint) MarshalJSON() ([]byte, error) {
	steps := h.Steps
	if steps == nil {
		steps = []HintStep{}
	}
	return json.Marshal([]any{nonNil(h.EquationIDs), steps})
}

func (h *Hint) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hint: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("hint: expected 2 elements, got %d", len(raw))
	}
	h.EquationIDs, h.Steps = nil, nil
	if err := json.Unmarshal(raw[0], &h.EquationIDs); err != nil {
		return fmt.Errorf("hint equation ids: %w", err)
	}
	if err := json.Unmarshal(raw[1], &h.Steps); err != nil {
		return err
	}
	return nil
}

func decodePair(data []byte, what string) ([]string, string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, "", fmt.Errorf("%s: %w", what, err)
	}
	if len(raw) != 2 {
		return nil, "", fmt.Errorf("%s: expected 2 elements, got %d", what, len(raw))
	}
	var ids []string
	if err := json.Unmarshal(raw[0], &ids); err != nil {
		return nil, "", fmt.Errorf("%s ids: %w", what, err)
	}
	var text string
	if err := json.Unmarshal(raw[1], &text); err != nil {
		return nil, "", fmt.Errorf("%s text: %w", what, err)
	}
	return ids, text, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
