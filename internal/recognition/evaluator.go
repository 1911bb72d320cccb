// Package recognition keeps the remote recognizer in sync with the strokes on
// a drawing surface and turns its answers into overlay state.
//
// An Evaluator is driven from a single event loop. Update is called on every
// render pass; network calls are returned as tea.Cmd values and their results
// come back as RecognizeMsg or HintsMsg, which the loop hands to
// ApplyRecognition or ApplyHints. A result is dropped when the stroke set it
// answered is no longer the current one.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mathscout/internal/hints"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/recognizer"
	"github.com/csheth/mathscout/internal/trace"
)

const (
	DefaultScale      = 80.0
	DefaultHintOffset = 40.0
	defaultTimeout    = 30 * time.Second
)

// DefaultMotivations are shown next to equations the recognizer found correct.
var DefaultMotivations = []string{
	"Great! You beat the math monster!",
	"Keep it up! A math Jedi you will become!",
	"Well done! Math stands no chance against you!",
	"Correct! You are a true math master!",
	"Perfect! You rock the world of numbers!",
	"Very good! Math ninja incoming!",
}

// Outcome is what happened to a response handed to Apply*.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	// OutcomeStale means the strokes changed while the request was in flight.
	OutcomeStale
	// OutcomeRedundant means the recognizer returned the graph already shown.
	OutcomeRedundant
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	case OutcomeRedundant:
		return "redundant"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Config configures an Evaluator. Zero values fall back to defaults.
type Config struct {
	Client      recognizer.Client
	Scale       float64
	Palette     Palette
	HintOffset  float64
	Motivations []string
	Rand        *rand.Rand
	Logger      *log.Logger
	Timeout     time.Duration
}

// RecognizeMsg carries a /recognize answer back to the event loop.
type RecognizeMsg struct {
	Generation uint64
	IDs        []string
	Response   recognizer.RecognizeResponse
	Err        error
	Elapsed    time.Duration
}

// Failure returns the request error, if any.
func (m RecognizeMsg) Failure() error { return m.Err }

// HintsMsg carries a /hints answer back to the event loop.
type HintsMsg struct {
	Generation uint64
	IDs        []string
	Response   recognizer.HintsResponse
	Err        error
	Elapsed    time.Duration
}

// Failure returns the request error, if any.
func (m HintsMsg) Failure() error { return m.Err }

// Evaluator owns the recognition state of one drawing surface.
type Evaluator struct {
	client      recognizer.Client
	scale       float64
	palette     Palette
	hintOffset  float64
	motivations []string
	rand        *rand.Rand
	logger      *log.Logger
	timeout     time.Duration

	traces     []*trace.Trace
	lastIDs    []string
	generation uint64
	hasGraph   bool
	lastGraph  string

	lines    []overlay.Line
	symbols  []*overlay.Symbol
	session  *hints.Session
	pending  int
	revision uint64
	lastErr  error
}

// New builds an evaluator. A client is required.
func New(cfg Config) (*Evaluator, error) {
	if cfg.Client == nil {
		return nil, errors.New("recognition: client is required")
	}
	e := &Evaluator{
		client:      cfg.Client,
		scale:       cfg.Scale,
		palette:     cfg.Palette,
		hintOffset:  cfg.HintOffset,
		motivations: cfg.Motivations,
		rand:        cfg.Rand,
		logger:      cfg.Logger,
		timeout:     cfg.Timeout,
		session:     hints.New(),
	}
	if e.scale <= 0 {
		e.scale = DefaultScale
	}
	if e.hintOffset == 0 {
		e.hintOffset = DefaultHintOffset
	}
	if len(e.motivations) == 0 {
		e.motivations = DefaultMotivations
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.timeout <= 0 {
		e.timeout = defaultTimeout
	}
	return e, nil
}

// Update records the traces of the current render pass. When their id set
// changed it returns a command that asks the recognizer for a new reading;
// otherwise it returns nil.
func (e *Evaluator) Update(traces []*trace.Trace) tea.Cmd {
	e.traces = traces
	ids := trace.IDs(traces)
	if !trace.Changed(ids, e.lastIDs) {
		return nil
	}
	e.lastIDs = ids
	e.generation++
	e.session.Deactivate()

	if len(traces) == 0 {
		e.lines = nil
		e.symbols = nil
		e.hasGraph = false
		e.lastGraph = ""
		e.revision++
		return nil
	}

	if len(e.symbols) > 0 {
		e.symbols = nil
		e.revision++
	}
	req := recognizer.RecognizeRequest{
		Traces: e.serialize(),
		Graph:  e.graph(),
	}
	gen := e.generation
	client, timeout := e.client, e.timeout
	e.pending++
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		started := time.Now()
		resp, err := client.Recognize(ctx, req)
		return RecognizeMsg{Generation: gen, IDs: ids, Response: resp, Err: err, Elapsed: time.Since(started)}
	}
}

// ApplyRecognition folds a recognize answer into the overlay state: strokes
// are recolored by symbol kind, formula lines are replaced and feedback
// symbols cleared.
func (e *Evaluator) ApplyRecognition(msg RecognizeMsg) Outcome {
	e.done()
	if msg.Err != nil {
		e.fail("recognize", msg.Err)
		return OutcomeFailed
	}
	if e.stale(msg.Generation, msg.IDs) {
		return OutcomeStale
	}
	if e.hasGraph && e.lastGraph == msg.Response.Graph {
		return OutcomeRedundant
	}
	e.lastErr = nil
	e.hasGraph = true
	e.lastGraph = msg.Response.Graph
	e.session.Deactivate()

	byID := trace.ByID(e.traces)
	for _, group := range msg.Response.TraceGroups {
		color := e.palette.ColorFor(group.Symbol)
		for _, tr := range known(byID, group.IDs) {
			tr.SetColor(color)
		}
	}

	lines := make([]overlay.Line, 0, len(msg.Response.Lines))
	for _, line := range msg.Response.Lines {
		pos, ok := overlay.LineAnchor(known(byID, line.IDs))
		if !ok {
			continue
		}
		lines = append(lines, overlay.Line{Position: pos, Text: line.Formula})
	}
	e.lines = lines
	e.symbols = nil
	e.revision++
	return OutcomeApplied
}

// Check asks the recognizer for hints on the current drawing. It returns nil
// when there is nothing to check.
func (e *Evaluator) Check() tea.Cmd {
	if len(e.traces) == 0 {
		return nil
	}
	req := recognizer.HintsRequest{
		Graph:  e.graph(),
		Traces: e.serialize(),
	}
	gen := e.generation
	ids := append([]string(nil), e.lastIDs...)
	client, timeout := e.client, e.timeout
	e.pending++
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		started := time.Now()
		resp, err := client.Hints(ctx, req)
		return HintsMsg{Generation: gen, IDs: ids, Response: resp, Err: err, Elapsed: time.Since(started)}
	}
}

// ApplyHints replaces the feedback symbols with one per hinted equation.
func (e *Evaluator) ApplyHints(msg HintsMsg) Outcome {
	e.done()
	if msg.Err != nil {
		e.fail("hints", msg.Err)
		return OutcomeFailed
	}
	if e.stale(msg.Generation, msg.IDs) {
		return OutcomeStale
	}
	e.lastErr = nil

	byID := trace.ByID(e.traces)
	symbols := make([]*overlay.Symbol, 0, len(msg.Response.Hints))
	for _, hint := range msg.Response.Hints {
		pos, ok := overlay.SymbolAnchor(known(byID, hint.EquationIDs), e.hintOffset)
		if !ok {
			continue
		}
		symbol := &overlay.Symbol{Position: pos}
		if len(hint.Steps) == 0 {
			symbol.Correct = true
			symbol.Texts = []string{e.motivations[e.rand.Intn(len(e.motivations))]}
			symbol.IDs = [][]string{append([]string(nil), hint.EquationIDs...)}
		} else {
			for _, step := range hint.Steps {
				ids := step.IDs
				if len(ids) == 0 {
					ids = hint.EquationIDs
				}
				symbol.Texts = append(symbol.Texts, step.Text)
				symbol.IDs = append(symbol.IDs, append([]string(nil), ids...))
			}
		}
		symbols = append(symbols, symbol)
	}

	e.session.Deactivate()
	e.symbols = symbols
	e.revision++
	return OutcomeApplied
}

// Toggle opens or closes the hint bubble of the i-th symbol.
func (e *Evaluator) Toggle(i int) bool {
	if i < 0 || i >= len(e.symbols) {
		return false
	}
	e.session.Activate(e.symbols[i], e.traces)
	return true
}

// Lines returns the formula captions of the last applied reading.
func (e *Evaluator) Lines() []overlay.Line {
	return e.lines
}

// Symbols returns the current feedback symbols.
func (e *Evaluator) Symbols() []*overlay.Symbol {
	return e.symbols
}

// Session returns the hint session.
func (e *Evaluator) Session() *hints.Session {
	return e.session
}

// Traces returns the traces seen by the last Update.
func (e *Evaluator) Traces() []*trace.Trace {
	return e.traces
}

// Pending reports the number of requests still in flight.
func (e *Evaluator) Pending() int {
	return e.pending
}

// Revision changes whenever lines or symbols are replaced.
func (e *Evaluator) Revision() uint64 {
	return e.revision
}

// LastGraph returns the last accepted graph.
func (e *Evaluator) LastGraph() (string, bool) {
	return e.lastGraph, e.hasGraph
}

// LastError is the error of the most recent failed request, cleared by the
// next accepted one.
func (e *Evaluator) LastError() error {
	return e.lastErr
}

// Client returns the recognizer the evaluator talks to.
func (e *Evaluator) Client() recognizer.Client {
	return e.client
}

func (e *Evaluator) serialize() []recognizer.Trace {
	out := make([]recognizer.Trace, 0, len(e.traces))
	for _, tr := range e.traces {
		out = append(out, tr.Serialize(e.scale))
	}
	return out
}

func (e *Evaluator) graph() *string {
	if !e.hasGraph {
		return nil
	}
	g := e.lastGraph
	return &g
}

func (e *Evaluator) stale(gen uint64, ids []string) bool {
	return gen != e.generation || trace.Changed(ids, e.lastIDs)
}

func (e *Evaluator) done() {
	if e.pending > 0 {
		e.pending--
	}
}

func (e *Evaluator) fail(op string, err error) {
	e.lastErr = err
	e.logger.Printf("[recognition] %s via %s failed: %v", op, e.client.Name(), err)
}

func known(byID map[string]*trace.Trace, ids []string) []*trace.Trace {
	out := make([]*trace.Trace, 0, len(ids))
	for _, id := range ids {
		if tr, ok := byID[id]; ok {
			out = append(out, tr)
		}
	}
	return out
}

// DiscardLogger is a logger that writes nowhere.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
