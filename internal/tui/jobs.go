package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindRecognize jobKind = "recognize"
	jobKindHints     jobKind = "hints"
	jobKindSave      jobKind = "save"
)

const (
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// failer is implemented by result messages that carry a request error.
type failer interface {
	Failure() error
}

type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start runs runner in the background and delivers its message wrapped in a
// jobResultEnvelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	return func() tea.Msg {
		started := time.Now()
		payload, err := runner(context.Background())
		return jobResultEnvelope{Snapshot: finish(id, kind, started, err), Payload: payload}
	}
}

// Track wraps a command whose result message may implement failer, so it
// is logged and timed like any other job.
func (b *jobBus) Track(kind jobKind, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	id := b.nextID(kind)
	return func() tea.Msg {
		started := time.Now()
		payload := cmd()
		var err error
		if f, ok := payload.(failer); ok {
			err = f.Failure()
		}
		return jobResultEnvelope{Snapshot: finish(id, kind, started, err), Payload: payload}
	}
}

func finish(id string, kind jobKind, started time.Time, err error) jobSnapshot {
	snapshot := jobSnapshot{
		ID:          id,
		Kind:        kind,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	} else {
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(started)
	log.Printf("[jobs] %s %s (duration=%s, err=%v)", id, snapshot.Status, snapshot.Duration, err)
	return snapshot
}
