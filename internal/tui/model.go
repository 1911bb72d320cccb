package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/recognition"
	"github.com/csheth/mathscout/internal/scene"
	"github.com/csheth/mathscout/internal/trace"
	"github.com/csheth/mathscout/internal/viewport"
)

// Config wires runtime options into the TUI program. Evaluator is required.
type Config struct {
	Scene        *scene.Scene
	ScenePath    string
	Evaluator    *recognition.Evaluator
	Grey         trace.GreyStyle
	MinHintWidth float64
	Particles    bool
	Rand         *rand.Rand
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Scene == nil {
		config.Scene = scene.New()
	}
	if config.Grey == (trace.GreyStyle{}) {
		config.Grey = trace.DefaultGreyStyle
	}
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = pendingStyle

	return &model{
		config:      config,
		scene:       config.Scene,
		store:       trace.NewStore(config.Scene, config.Grey),
		eval:        config.Evaluator,
		vp:          viewport.New(),
		jobs:        newJobBus(),
		spinner:     spin,
		keys:        newKeyMap(),
		help:        help.New(),
		layout:      newCanvasLayout(),
		rand:        config.Rand,
		now:         time.Now,
		infoMessage: heroTagline,
	}
}

type model struct {
	config Config

	scene *scene.Scene
	store *trace.Store
	eval  *recognition.Evaluator
	vp    *viewport.Broadcaster
	jobs  *jobBus

	spinner  spinner.Model
	spinning bool
	keys     keyMap
	help     help.Model
	layout   canvasLayout

	mode   interactionMode
	stroke []geom.Point

	lineAnchors    []*overlay.Anchor
	symbolAnchors  []*overlay.Anchor
	anchorRevision uint64

	bursts  []burst
	ticking bool
	rand    *rand.Rand
	now     func() time.Time

	saving       bool
	lastJob      jobSnapshot
	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return m.sync()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if env, ok := msg.(jobResultEnvelope); ok {
		m.lastJob = env.Snapshot
		msg = env.Payload
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.layout.Update(msg.Width, msg.Height, m.help.ShowAll)
	case spinner.TickMsg:
		if m.eval.Pending() == 0 && !m.saving {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case particleTickMsg:
		cmds = append(cmds, m.advanceParticles(time.Time(msg)))
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.closeAnchors()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		m.handleMouse(msg)
	case recognition.RecognizeMsg:
		m.report("recognition", m.eval.ApplyRecognition(msg), msg.Err)
	case recognition.HintsMsg:
		m.report("hints", m.eval.ApplyHints(msg), msg.Err)
	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			m.infoMessage = "Saving failed. Retry with s."
			break
		}
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Saved %d stroke(s) to %s", msg.count, msg.path)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// sync is the render pass: it refreshes the traces from the scene, lets the
// evaluator react to a changed stroke set and remounts overlay anchors when
// the evaluator replaced its lines or symbols.
func (m *model) sync() tea.Cmd {
	var cmds []tea.Cmd
	traces := m.store.Sync(m.scene.FreeDraw())
	cmds = append(cmds, m.jobs.Track(jobKindRecognize, m.eval.Update(traces)))
	if m.eval.Revision() != m.anchorRevision {
		cmds = append(cmds, m.remount())
	}
	if (m.eval.Pending() > 0 || m.saving) && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *model) remount() tea.Cmd {
	m.anchorRevision = m.eval.Revision()
	m.closeAnchors()

	lines := m.eval.Lines()
	m.lineAnchors = make([]*overlay.Anchor, 0, len(lines))
	for _, line := range lines {
		m.lineAnchors = append(m.lineAnchors, overlay.Mount(m.vp, line.Position))
	}

	symbols := m.eval.Symbols()
	m.symbolAnchors = make([]*overlay.Anchor, 0, len(symbols))
	spawned := false
	for _, symbol := range symbols {
		anchor := overlay.Mount(m.vp, symbol.Position)
		m.symbolAnchors = append(m.symbolAnchors, anchor)
		if symbol.Correct && m.config.Particles {
			m.bursts = append(m.bursts, burst{
				particles: overlay.Burst(m.rand, anchor.Screen()),
				started:   m.now(),
			})
			spawned = true
		}
	}
	if spawned && !m.ticking {
		m.ticking = true
		return particleTick()
	}
	return nil
}

func (m *model) closeAnchors() {
	overlay.CloseAll(m.lineAnchors)
	overlay.CloseAll(m.symbolAnchors)
	m.lineAnchors = nil
	m.symbolAnchors = nil
}

func (m *model) advanceParticles(now time.Time) tea.Cmd {
	live := m.bursts[:0]
	for _, b := range m.bursts {
		if now.Sub(b.started) < overlay.BurstLifetime {
			live = append(live, b)
		}
	}
	m.bursts = live
	if len(m.bursts) == 0 {
		m.ticking = false
		return nil
	}
	return particleTick()
}

func (m *model) report(op string, outcome recognition.Outcome, err error) {
	switch outcome {
	case recognition.OutcomeFailed:
		m.errorMessage = fmt.Sprintf("%s failed: %v", op, err)
	case recognition.OutcomeApplied:
		m.errorMessage = ""
		if op == "hints" {
			m.infoMessage = m.checkSummary()
		} else {
			m.infoMessage = fmt.Sprintf("Read %d line(s).", len(m.eval.Lines()))
		}
	}
}

func (m *model) checkSummary() string {
	symbols := m.eval.Symbols()
	if len(symbols) == 0 {
		return "No equations found to check."
	}
	correct := 0
	for _, s := range symbols {
		if s.Correct {
			correct++
		}
	}
	return fmt.Sprintf("%d of %d equation(s) correct. Press 1-9 to open a hint.", correct, len(symbols))
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout.Update(m.layout.windowWidth, m.layout.windowHeight, m.help.ShowAll)
	case key.Matches(msg, m.keys.Left):
		m.pan(1, 0)
	case key.Matches(msg, m.keys.Right):
		m.pan(-1, 0)
	case key.Matches(msg, m.keys.Up):
		m.pan(0, 1)
	case key.Matches(msg, m.keys.Down):
		m.pan(0, -1)
	case key.Matches(msg, m.keys.ZoomIn):
		_ = m.vp.ZoomBy(zoomInFactor)
	case key.Matches(msg, m.keys.ZoomOut):
		_ = m.vp.ZoomBy(zoomOutFactor)
	case key.Matches(msg, m.keys.Reset):
		m.vp.SetOffset(0, 0)
		_ = m.vp.SetZoom(1)
	case key.Matches(msg, m.keys.Check):
		cmd := m.eval.Check()
		if cmd == nil {
			m.infoMessage = "Nothing to check yet. Draw something first."
			return nil
		}
		m.infoMessage = "Checking your work…"
		return m.jobs.Track(jobKindHints, cmd)
	case key.Matches(msg, m.keys.Symbol):
		idx := int(msg.String()[0] - '1')
		if !m.eval.Toggle(idx) {
			m.infoMessage = fmt.Sprintf("No symbol %d on the canvas.", idx+1)
		}
	case key.Matches(msg, m.keys.Next):
		m.eval.Session().Next()
	case key.Matches(msg, m.keys.Previous):
		m.eval.Session().Previous()
	case key.Matches(msg, m.keys.Close):
		if m.mode == modeDrawing {
			m.mode = modeIdle
			m.stroke = nil
			return nil
		}
		m.eval.Session().Deactivate()
	case key.Matches(msg, m.keys.Erase):
		el, ok := m.scene.LastFreeDraw()
		if !ok {
			m.infoMessage = "Nothing to erase."
			return nil
		}
		m.scene.Delete(el.ID)
	case key.Matches(msg, m.keys.Undo):
		if !m.scene.Undo() {
			m.infoMessage = "Nothing to undo."
		}
	case key.Matches(msg, m.keys.Save):
		if m.saving {
			return nil
		}
		m.saving = true
		m.infoMessage = "Saving…"
		return m.jobs.Start(jobKindSave, saveSceneJob(m.config.ScenePath, m.scene))
	}
	return nil
}

// pan moves the view by whole steps of panStepCells cells.
func (m *model) pan(dx, dy float64) {
	zoom := m.vp.Zoom()
	m.vp.Pan(dx*panStepCells*cellWidth/zoom, dy*panStepCells*cellHeight/zoom)
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	screen, inside := m.layout.screenAt(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if !inside {
			return
		}
		world := m.vp.ToWorld(screen)
		if m.mode != modeDrawing {
			m.mode = modeDrawing
			m.stroke = nil
		}
		if n := len(m.stroke); n == 0 || m.stroke[n-1] != world {
			m.stroke = append(m.stroke, world)
		}
	case tea.MouseRelease:
		m.finishStroke()
	case tea.MouseWheelUp:
		_ = m.vp.ZoomBy(zoomInFactor)
	case tea.MouseWheelDown:
		_ = m.vp.ZoomBy(zoomOutFactor)
	}
}

func (m *model) finishStroke() {
	if m.mode != modeDrawing {
		return
	}
	m.mode = modeIdle
	if len(m.stroke) == 0 {
		return
	}
	m.scene.Add(scene.NewStroke(m.stroke, scene.DefaultStrokeColor, scene.DefaultStrokeWidth))
	m.stroke = nil
}

func (m *model) modeLabel() string {
	if m.mode == modeDrawing {
		return "DRAW"
	}
	if m.eval.Session().Active() != nil {
		return "HINT"
	}
	return "IDLE"
}
