package tui

import (
	"time"

	"github.com/csheth/mathscout/internal/overlay"
)

// A terminal cell stands for a cellWidth x cellHeight block of screen pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

const (
	headerHeight   = 1
	statusHeight   = 1
	helpLineHeight = 1
	minCanvasCols  = 20
	minCanvasRows  = 5
)

const (
	panStepCells  = 4
	zoomInFactor  = 1.25
	zoomOutFactor = 0.8
	bubbleWidth   = 30
	particleFrame = 40 * time.Millisecond
	maxSymbolKeys = 9
)

const heroTagline = "draw with the mouse · c checks your work · ? for keys"

type interactionMode int

const (
	modeIdle interactionMode = iota
	modeDrawing
)

type saveResultMsg struct {
	path  string
	count int
	err   error
}

func (m saveResultMsg) Failure() error { return m.err }

type particleTickMsg time.Time

type burst struct {
	particles []overlay.Particle
	started   time.Time
}
