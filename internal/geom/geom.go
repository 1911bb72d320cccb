package geom

import "math"

// Point is a 2D coordinate. Whether it is in world or screen space depends on
// the caller.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p multiplied by factor on both axes.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Bounds is an axis-aligned bounding box accumulated from points.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
	empty      bool
}

// EmptyBounds returns a box that contains nothing; extending it with the first
// point collapses it onto that point.
func EmptyBounds() Bounds {
	return Bounds{
		MinX:  math.Inf(1),
		MinY:  math.Inf(1),
		MaxX:  math.Inf(-1),
		MaxY:  math.Inf(-1),
		empty: true,
	}
}

// Extend grows the box to contain (x, y).
func (b *Bounds) Extend(x, y float64) {
	b.empty = false
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// Empty reports whether no point was added.
func (b Bounds) Empty() bool {
	return b.empty
}
