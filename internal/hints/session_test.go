package hints

import (
	"testing"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/scene"
	"github.com/csheth/mathscout/internal/trace"
)

func setup(t *testing.T, ids ...string) []*trace.Trace {
	t.Helper()
	canvas := scene.New()
	for _, id := range ids {
		canvas.Add(scene.Element{
			ID:          id,
			Type:        scene.TypeFreeDraw,
			Points:      []geom.Point{{X: 0, Y: 0}},
			Color:       "#000000",
			StrokeWidth: 2,
		})
	}
	store := trace.NewStore(canvas, trace.DefaultGreyStyle)
	return store.Sync(canvas.FreeDraw())
}

func greyedIDs(s *Session) map[string]bool {
	out := map[string]bool{}
	for _, tr := range s.Greyed() {
		out[tr.ID()] = true
	}
	return out
}

func TestActivateGreysTracesOutsideStep(t *testing.T) {
	traces := setup(t, "a", "b", "c")
	symbol := &overlay.Symbol{
		Texts: []string{"look at b", "now c"},
		IDs:   [][]string{{"b"}, {"c"}},
	}
	s := New()
	s.Activate(symbol, traces)

	got := greyedIDs(s)
	if len(got) != 2 || !got["a"] || !got["c"] {
		t.Fatalf("unexpected greyed set %v", got)
	}
	if traces[1].Greyed() {
		t.Fatal("highlighted trace should stay untouched")
	}
	if s.Text() != "look at b" {
		t.Fatalf("unexpected text %q", s.Text())
	}
	if s.HasPrevious() || !s.HasNext() {
		t.Fatal("first step shows only the next control")
	}
}

func TestNavigationRecomputesAndClamps(t *testing.T) {
	traces := setup(t, "a", "b", "c")
	symbol := &overlay.Symbol{
		Texts: []string{"one", "two"},
		IDs:   [][]string{{"b"}, {"c"}},
	}
	s := New()
	s.Activate(symbol, traces)

	s.Next()
	s.Next()
	if s.Step() != 1 {
		t.Fatalf("step should clamp at 1, got %d", s.Step())
	}
	got := greyedIDs(s)
	if len(got) != 2 || !got["a"] || !got["b"] {
		t.Fatalf("unexpected greyed set after next %v", got)
	}
	if traces[2].Greyed() {
		t.Fatal("step two highlights c")
	}
	if s.HasNext() || !s.HasPrevious() {
		t.Fatal("last step shows only the previous control")
	}

	s.Previous()
	s.Previous()
	if s.Step() != 0 {
		t.Fatalf("step should clamp at 0, got %d", s.Step())
	}
}

func TestReactivatingSameSymbolCloses(t *testing.T) {
	traces := setup(t, "a", "b")
	symbol := &overlay.Symbol{Texts: []string{"x"}, IDs: [][]string{{"a"}}}
	s := New()
	s.Activate(symbol, traces)
	s.Activate(symbol, traces)

	if s.Active() != nil {
		t.Fatal("second activation should close the symbol")
	}
	for _, tr := range traces {
		if tr.Greyed() || tr.Color() != "#000000" {
			t.Fatalf("trace %s not restored: greyed=%v color=%s", tr.ID(), tr.Greyed(), tr.Color())
		}
	}
}

func TestSwitchingSymbolsRestoresFirst(t *testing.T) {
	traces := setup(t, "a", "b")
	first := &overlay.Symbol{Texts: []string{"x"}, IDs: [][]string{{"a"}}}
	second := &overlay.Symbol{Texts: []string{"y"}, IDs: [][]string{{"b"}}}
	s := New()
	s.Activate(first, traces)
	s.Activate(second, traces)

	if s.Active() != second {
		t.Fatal("second symbol should be active")
	}
	if traces[1].Greyed() {
		t.Fatal("trace b belongs to the active step")
	}
	if !traces[0].Greyed() {
		t.Fatal("trace a should be greyed for the second symbol")
	}
}

func TestDeactivateRestoresAll(t *testing.T) {
	traces := setup(t, "a", "b", "c")
	traces[0].SetColor("#fdbf14")
	symbol := &overlay.Symbol{Texts: []string{"x"}, IDs: [][]string{{"c"}}}
	s := New()
	s.Activate(symbol, traces)
	s.Deactivate()

	if len(s.Greyed()) != 0 {
		t.Fatalf("greyed set should be empty, got %d", len(s.Greyed()))
	}
	if traces[0].Color() != "#fdbf14" {
		t.Fatalf("original highlight not restored: %s", traces[0].Color())
	}
	if s.Text() != "" || s.HasNext() || s.HasPrevious() {
		t.Fatal("inactive session should expose nothing")
	}
}
