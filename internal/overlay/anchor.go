package overlay

import (
	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/viewport"
)

// Anchor pins a world point to the screen. While mounted it tracks viewport
// changes; Close must be called when the overlay element goes away.
type Anchor struct {
	world  geom.Point
	screen geom.Point
	vp     *viewport.Broadcaster
	sub    viewport.Subscription
	closed bool
}

// Mount computes the initial screen position and subscribes to vp.
func Mount(vp *viewport.Broadcaster, world geom.Point) *Anchor {
	a := &Anchor{world: world, vp: vp}
	a.refresh()
	a.sub = vp.Subscribe(a.refresh)
	return a
}

func (a *Anchor) refresh() {
	a.screen = a.vp.Transform(a.world)
}

// World returns the anchored world point.
func (a *Anchor) World() geom.Point {
	return a.world
}

// Screen returns the position computed at the last viewport change.
func (a *Anchor) Screen() geom.Point {
	return a.screen
}

// Close unsubscribes from the viewport. Calling it more than once is fine.
func (a *Anchor) Close() {
	if a == nil || a.closed {
		return
	}
	a.closed = true
	a.vp.Unsubscribe(a.sub)
}

// Closed reports whether Close has run.
func (a *Anchor) Closed() bool {
	return a.closed
}

// CloseAll closes every anchor in anchors.
func CloseAll(anchors []*Anchor) {
	for _, a := range anchors {
		a.Close()
	}
}
