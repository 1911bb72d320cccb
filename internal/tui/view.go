package tui

import (
	"fmt"
	"strings"
)

func (m *model) View() string {
	return strings.Join([]string{
		m.headerView(),
		m.canvasView(),
		m.statusView(),
		m.help.View(m.keys),
	}, "\n")
}

func (m *model) headerView() string {
	title := titleStyle.Render("mathscout")
	switch {
	case m.errorMessage != "":
		return title + "  " + errorStyle.Render(m.errorMessage)
	case m.infoMessage != "":
		return title + "  " + helperStyle.Render(m.infoMessage)
	}
	return title + "  " + taglineStyle.Render(heroTagline)
}

func (m *model) statusView() string {
	stats := []string{
		m.modeLabel(),
		fmt.Sprintf("strokes %d", len(m.eval.Traces())),
		fmt.Sprintf("lines %d", len(m.eval.Lines())),
		fmt.Sprintf("symbols %d", len(m.eval.Symbols())),
		fmt.Sprintf("zoom %d%%", int(m.vp.Zoom()*100+0.5)),
	}
	if session := m.eval.Session(); session.Active() != nil {
		stats = append(stats, fmt.Sprintf("hint %d/%d", session.Step()+1, session.Active().Steps()))
	}
	switch {
	case m.eval.Pending() > 0:
		stats = append(stats, m.spinner.View()+" recognizing")
	case m.saving:
		stats = append(stats, m.spinner.View()+" saving")
	case m.lastJob.ID != "":
		stats = append(stats, fmt.Sprintf("%s %s", m.lastJob.ID, m.lastJob.Status))
	}
	if graph, ok := m.eval.LastGraph(); ok && graph != "" {
		stats = append(stats, "graph ready")
	}
	return statusBarStyle.Render(joinNonEmpty(stats))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "  •  ")
}
