package trace

import (
	"testing"

	"github.com/csheth/mathscout/internal/scene"
)

func TestSyncReusesTracesAcrossPasses(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0), stroke("b", 0, 0))
	store := NewStore(canvas, DefaultGreyStyle)

	first := store.Sync(canvas.FreeDraw())
	first[0].GreyOut(true)

	second := store.Sync(canvas.FreeDraw())
	if second[0] != first[0] {
		t.Fatal("expected the same trace for an unchanged stroke")
	}
	if !second[0].Greyed() {
		t.Fatal("grey-out memory lost between passes")
	}
}

func TestSyncDropsVanishedStrokes(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0), stroke("b", 0, 0))
	store := NewStore(canvas, DefaultGreyStyle)
	store.Sync(canvas.FreeDraw())

	canvas.Delete("a")
	got := store.Sync(canvas.Elements())
	if len(got) != 1 || got[0].ID() != "b" {
		t.Fatalf("unexpected traces: %v", IDs(got))
	}
	if store.Len() != 1 {
		t.Fatalf("store should forget deleted strokes, tracks %d", store.Len())
	}
}

func TestSyncSkipsOtherElementTypes(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0), scene.Element{ID: "r", Type: "rectangle"})
	store := NewStore(canvas, DefaultGreyStyle)
	if got := store.Sync(canvas.Elements()); len(got) != 1 {
		t.Fatalf("expected only freedraw traces, got %v", IDs(got))
	}
}

func TestChanged(t *testing.T) {
	tests := []struct {
		name     string
		current  []string
		previous []string
		want     bool
	}{
		{name: "both empty", want: false},
		{name: "same order", current: []string{"a", "b"}, previous: []string{"a", "b"}, want: false},
		{name: "permuted", current: []string{"b", "a"}, previous: []string{"a", "b"}, want: false},
		{name: "added", current: []string{"a", "b", "c"}, previous: []string{"a", "b"}, want: true},
		{name: "replaced", current: []string{"a", "c"}, previous: []string{"a", "b"}, want: true},
		{name: "cleared", current: nil, previous: []string{"a"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Changed(tt.current, tt.previous); got != tt.want {
				t.Fatalf("Changed(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestChangedLeavesInputsAlone(t *testing.T) {
	current := []string{"b", "a"}
	Changed(current, []string{"a", "b"})
	if current[0] != "b" {
		t.Fatalf("input reordered: %v", current)
	}
}

func TestIDsAreSorted(t *testing.T) {
	canvas := newCanvas(t, stroke("c", 0, 0), stroke("a", 0, 0), stroke("b", 0, 0))
	store := NewStore(canvas, DefaultGreyStyle)
	ids := IDs(store.Sync(canvas.FreeDraw()))
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("ids not sorted: %v", ids)
	}
}
