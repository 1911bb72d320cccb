// Package viewport tracks the canvas scroll offset and zoom and tells
// screen-anchored overlays when either changes.
//
// A Broadcaster belongs to a single drawing surface and is driven from that
// surface's event loop; it is not safe for concurrent use.
package viewport

import (
	"errors"
	"math"

	"github.com/csheth/mathscout/internal/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// ErrInvalidZoom is returned when a zoom factor is not a positive finite number.
var ErrInvalidZoom = errors.New("viewport: zoom must be a positive finite number")

// Subscription identifies a registered listener. The zero value is never
// handed out, so it is safe to Unsubscribe it.
type Subscription uint64

// Broadcaster holds the current viewport state and its listeners.
type Broadcaster struct {
	offset    geom.Point
	zoom      float64
	nextID    Subscription
	listeners map[Subscription]func()
	order     []Subscription
}

// New returns a broadcaster at offset (0,0) and zoom 1.
func New() *Broadcaster {
	return &Broadcaster{
		zoom:      1,
		listeners: map[Subscription]func(){},
	}
}

// Offset returns the current scroll offset.
func (b *Broadcaster) Offset() geom.Point {
	return b.offset
}

// Zoom returns the current zoom factor.
func (b *Broadcaster) Zoom() float64 {
	return b.zoom
}

// SetOffset moves the viewport. Listeners run only when the offset changed.
func (b *Broadcaster) SetOffset(x, y float64) {
	if b.offset.X == x && b.offset.Y == y {
		return
	}
	b.offset = geom.Point{X: x, Y: y}
	b.notify()
}

// SetZoom changes the zoom factor. Listeners run only when it changed.
func (b *Broadcaster) SetZoom(z float64) error {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return ErrInvalidZoom
	}
	if z == b.zoom {
		return nil
	}
	b.zoom = z
	b.notify()
	return nil
}

// Pan shifts the offset by (dx, dy) world units.
func (b *Broadcaster) Pan(dx, dy float64) {
	b.SetOffset(b.offset.X+dx, b.offset.Y+dy)
}

// ZoomBy multiplies the zoom by factor, clamped to [MinZoom, MaxZoom].
func (b *Broadcaster) ZoomBy(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ErrInvalidZoom
	}
	z := b.zoom * factor
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	return b.SetZoom(z)
}

// Transform maps a world point to screen space: (world + offset) * zoom.
func (b *Broadcaster) Transform(world geom.Point) geom.Point {
	return world.Add(b.offset).Scale(b.zoom)
}

// ToWorld is the inverse of Transform.
func (b *Broadcaster) ToWorld(screen geom.Point) geom.Point {
	return geom.Point{
		X: screen.X/b.zoom - b.offset.X,
		Y: screen.Y/b.zoom - b.offset.Y,
	}
}

// Subscribe registers fn to run after every viewport change. Callers must
// Unsubscribe the returned handle when the overlay goes away.
func (b *Broadcaster) Subscribe(fn func()) Subscription {
	b.nextID++
	id := b.nextID
	b.listeners[id] = fn
	b.order = append(b.order, id)
	return id
}

// Unsubscribe removes a listener. Unknown or already removed handles are ignored.
func (b *Broadcaster) Unsubscribe(sub Subscription) {
	if _, ok := b.listeners[sub]; !ok {
		return
	}
	delete(b.listeners, sub)
	for i, id := range b.order {
		if id == sub {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of live subscriptions.
func (b *Broadcaster) Len() int {
	return len(b.listeners)
}

func (b *Broadcaster) notify() {
	ids := append([]Subscription(nil), b.order...)
	for _, id := range ids {
		// a listener may have unsubscribed another one during this pass
		if fn, ok := b.listeners[id]; ok {
			fn()
		}
	}
}
