package trace

import (
	"testing"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/scene"
)

func newCanvas(t *testing.T, elements ...scene.Element) *scene.Scene {
	t.Helper()
	s := scene.New()
	for _, el := range elements {
		s.Add(el)
	}
	return s
}

func stroke(id string, x, y float64, pts ...geom.Point) scene.Element {
	return scene.Element{
		ID:          id,
		Type:        scene.TypeFreeDraw,
		X:           x,
		Y:           y,
		Points:      pts,
		Color:       "#000000",
		StrokeWidth: 2,
	}
}

func TestSerializeScalesAbsoluteCoordinates(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 80, 160, geom.Point{X: 0, Y: 0}, geom.Point{X: 80, Y: -80}))
	tr := New("a", canvas, DefaultGreyStyle)

	got := tr.Serialize(80)
	if got.ID != "a" {
		t.Fatalf("unexpected id %q", got.ID)
	}
	wantX := []float64{1, 2}
	wantY := []float64{2, 1}
	for i := range wantX {
		if got.X[i] != wantX[i] || got.Y[i] != wantY[i] {
			t.Fatalf("point %d: got (%v,%v) want (%v,%v)", i, got.X[i], got.Y[i], wantX[i], wantY[i])
		}
	}
}

func TestCoordinatesFollowCanvas(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0, geom.Point{X: 1, Y: 1}))
	tr := New("a", canvas, DefaultGreyStyle)

	el, _ := canvas.Element("a")
	el.X = 10
	canvas.Update([]scene.Element{el}, scene.CaptureImmediately)

	if xs := tr.X(); xs[0] != 11 {
		t.Fatalf("trace should read the latest element version, got %v", xs)
	}
}

func TestSetColorDoesNotEnterHistory(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0))
	tr := New("a", canvas, DefaultGreyStyle)
	tr.SetColor("#fdbf14")

	if tr.Color() != "#fdbf14" {
		t.Fatalf("unexpected color %q", tr.Color())
	}
	canvas.Undo() // reverts the add only
	if canvas.Undo() {
		t.Fatal("recoloring must not be undoable")
	}
}

func TestGreyOutTwiceThenRestore(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0))
	tr := New("a", canvas, GreyStyle{Color: "#aaaaaa", WidthScale: 0.5})
	tr.SetColor("#004e8a")

	tr.GreyOut(true)
	tr.GreyOut(true)
	if tr.Color() != "#aaaaaa" {
		t.Fatalf("expected grey, got %q", tr.Color())
	}
	if tr.Width() != 1 {
		t.Fatalf("expected scaled width 1, got %v", tr.Width())
	}
	if !tr.Greyed() {
		t.Fatal("trace should report greyed state")
	}

	tr.GreyOut(false)
	if tr.Color() != "#004e8a" {
		t.Fatalf("expected original color back, got %q", tr.Color())
	}
	if tr.Width() != 2 {
		t.Fatalf("expected original width back, got %v", tr.Width())
	}
	if tr.Greyed() {
		t.Fatal("trace should no longer be greyed")
	}
}

func TestRestoreWithoutGreyIsNoop(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0))
	tr := New("a", canvas, DefaultGreyStyle)
	tr.SetColor("#008b3a")
	before, _ := canvas.Element("a")

	tr.GreyOut(false)
	after, _ := canvas.Element("a")
	if after.Version != before.Version {
		t.Fatal("restore without grey-out should not touch the canvas")
	}
}

func TestMutationsOnVanishedStrokeAreIgnored(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0))
	tr := New("a", canvas, DefaultGreyStyle)
	canvas.Delete("a")

	tr.SetColor("#fdbf14")
	tr.GreyOut(true)
	if tr.Greyed() {
		t.Fatal("grey-out on a deleted stroke should do nothing")
	}
	if len(tr.X()) != 0 {
		t.Fatal("deleted stroke should have no points")
	}
	got := tr.Serialize(80)
	if got.X == nil || got.Y == nil {
		t.Fatal("serialized coordinates should be empty, not nil")
	}
}

func TestRestoreReachesErasedStroke(t *testing.T) {
	canvas := newCanvas(t, stroke("a", 0, 0))
	tr := New("a", canvas, DefaultGreyStyle)
	tr.SetColor("#004e8a")
	tr.GreyOut(true)

	canvas.Delete("a")
	tr.GreyOut(false)
	if !canvas.Undo() {
		t.Fatal("erase should be undoable")
	}
	if tr.Color() != "#004e8a" {
		t.Fatalf("expected original color after undo, got %q", tr.Color())
	}
	if tr.Width() != 2 {
		t.Fatalf("expected original width after undo, got %v", tr.Width())
	}
}
