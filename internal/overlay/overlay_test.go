package overlay

import (
	"math/rand"
	"testing"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/scene"
	"github.com/csheth/mathscout/internal/trace"
	"github.com/csheth/mathscout/internal/viewport"
)

func tracesFor(t *testing.T, strokes map[string][]geom.Point) []*trace.Trace {
	t.Helper()
	canvas := scene.New()
	var out []*trace.Trace
	for id, pts := range strokes {
		canvas.Add(scene.Element{ID: id, Type: scene.TypeFreeDraw, Points: pts})
		out = append(out, trace.New(id, canvas, trace.DefaultGreyStyle))
	}
	return out
}

func TestLineAnchorUsesMidXAndTopY(t *testing.T) {
	traces := tracesFor(t, map[string][]geom.Point{
		"a": {{X: 0, Y: 10}, {X: 10, Y: 20}},
		"b": {{X: 30, Y: 5}, {X: 40, Y: 15}},
	})
	got, ok := LineAnchor(traces)
	if !ok {
		t.Fatal("expected an anchor")
	}
	if got != (geom.Point{X: 20, Y: 5}) {
		t.Fatalf("unexpected anchor %+v", got)
	}
}

func TestSymbolAnchorOffsetsRight(t *testing.T) {
	traces := tracesFor(t, map[string][]geom.Point{
		"a": {{X: 0, Y: 10}, {X: 100, Y: 30}},
	})
	got, ok := SymbolAnchor(traces, 40)
	if !ok {
		t.Fatal("expected an anchor")
	}
	if got != (geom.Point{X: 140, Y: 20}) {
		t.Fatalf("unexpected anchor %+v", got)
	}
}

func TestAnchorsOfEmptyTraces(t *testing.T) {
	if _, ok := LineAnchor(nil); ok {
		t.Fatal("no traces should yield no anchor")
	}
	if _, ok := SymbolAnchor(tracesFor(t, map[string][]geom.Point{"a": nil}), 40); ok {
		t.Fatal("pointless traces should yield no anchor")
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name          string
		x             float64
		hidden        bool
		direction     Direction
		triangleRight float64
	}{
		{name: "plenty of room", x: 100, direction: Right, triangleRight: 870},
		{name: "exactly min width", x: 800, direction: Below, triangleRight: 170},
		{name: "near the edge", x: 990, direction: Below, triangleRight: 0},
		{name: "slightly off screen", x: 1090, direction: Below, triangleRight: 0},
		{name: "far off screen", x: 1101, hidden: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(geom.Point{X: tt.x, Y: 50}, 1000, 200)
			if p.Hidden != tt.hidden {
				t.Fatalf("hidden = %v, want %v", p.Hidden, tt.hidden)
			}
			if tt.hidden {
				return
			}
			if p.Direction != tt.direction {
				t.Fatalf("direction = %v, want %v", p.Direction, tt.direction)
			}
			if p.TriangleRight != tt.triangleRight {
				t.Fatalf("triangle = %v, want %v", p.TriangleRight, tt.triangleRight)
			}
			if p.Top != 50 {
				t.Fatalf("top = %v, want 50", p.Top)
			}
		})
	}
}

func TestAnchorFollowsViewport(t *testing.T) {
	vp := viewport.New()
	a := Mount(vp, geom.Point{X: 100, Y: 100})
	if a.Screen() != (geom.Point{X: 100, Y: 100}) {
		t.Fatalf("unexpected initial position %+v", a.Screen())
	}
	vp.SetOffset(10, 5)
	if a.Screen() != (geom.Point{X: 110, Y: 105}) {
		t.Fatalf("anchor did not follow offset: %+v", a.Screen())
	}
	if err := vp.SetZoom(2); err != nil {
		t.Fatalf("zoom: %v", err)
	}
	if a.Screen() != (geom.Point{X: 220, Y: 210}) {
		t.Fatalf("anchor did not follow zoom: %+v", a.Screen())
	}
	if a.World() != (geom.Point{X: 100, Y: 100}) {
		t.Fatalf("world position moved with the view: %+v", a.World())
	}
}

func TestCloseReleasesSubscription(t *testing.T) {
	vp := viewport.New()
	anchors := []*Anchor{
		Mount(vp, geom.Point{}),
		Mount(vp, geom.Point{X: 1}),
	}
	if vp.Len() != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", vp.Len())
	}
	CloseAll(anchors)
	anchors[0].Close()
	if vp.Len() != 0 {
		t.Fatalf("subscriptions leaked: %d", vp.Len())
	}
	before := anchors[0].Screen()
	vp.SetOffset(50, 50)
	if anchors[0].Screen() != before {
		t.Fatal("closed anchor should not move")
	}
}

func TestBurstIsDeterministicForSeed(t *testing.T) {
	origin := geom.Point{X: 200, Y: 100}
	a := Burst(rand.New(rand.NewSource(7)), origin)
	b := Burst(rand.New(rand.NewSource(7)), origin)
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d particles", len(a), len(b))
	}
	if len(a) < 10 || len(a) > 50 || len(a)%10 != 0 {
		t.Fatalf("unexpected particle count %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs for the same seed", i)
		}
		p := a[i]
		if p.Origin.X < origin.X-25 || p.Origin.X > origin.X+25 {
			t.Fatalf("group jitter out of range: %+v", p.Origin)
		}
		if p.Offset.X < -50 || p.Offset.X > 50 || p.Offset.Y < -50 || p.Offset.Y > 50 {
			t.Fatalf("spread out of range: %+v", p.Offset)
		}
		if p.Color.G < 155.0/255 {
			t.Fatalf("particle should lean green: %+v", p.Color)
		}
	}
}

func TestParticleLifecycle(t *testing.T) {
	p := Particle{Origin: geom.Point{X: 10, Y: 10}, Offset: geom.Point{X: 20, Y: -20}}
	if p.At(0) != p.Origin {
		t.Fatalf("particle should start at origin, got %+v", p.At(0))
	}
	end := p.At(1)
	if end != (geom.Point{X: 30, Y: 20}) {
		t.Fatalf("unexpected end position %+v", end)
	}
	if p.Opacity(1) != 0 || p.Size(1) != 0 {
		t.Fatal("particle should vanish at the end")
	}
	if p.Size(0) != 5 {
		t.Fatalf("unexpected initial size %v", p.Size(0))
	}
}
