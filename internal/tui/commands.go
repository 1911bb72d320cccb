package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mathscout/internal/scene"
)

func saveSceneJob(path string, s *scene.Scene) jobRunner {
	count := len(s.FreeDraw())
	return func(parent context.Context) (tea.Msg, error) {
		if path == "" {
			err := errors.New("no scene path configured; start with --scene")
			return saveResultMsg{err: err}, err
		}
		if err := s.Save(path); err != nil {
			return saveResultMsg{path: path, err: err}, err
		}
		return saveResultMsg{path: path, count: count}, nil
	}
}

func particleTick() tea.Cmd {
	return tea.Tick(particleFrame, func(t time.Time) tea.Msg {
		return particleTickMsg(t)
	})
}
