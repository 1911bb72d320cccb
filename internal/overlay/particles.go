package overlay

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/csheth/mathscout/internal/geom"
)

const (
	// BurstLifetime is how long a celebration burst stays on screen.
	BurstLifetime = 400 * time.Millisecond

	maxBurstGroups    = 5
	particlesPerGroup = 10
	groupJitter       = 25.0
	spreadRadius      = 50.0
	particleSize      = 5.0
	fallDistance      = 30.0
)

// Particle is one dot of a celebration burst, in screen space.
type Particle struct {
	Origin geom.Point
	Offset geom.Point
	Color  colorful.Color
}

// At returns the particle position for progress in [0,1]. Particles drift
// outward and fall slightly.
func (p Particle) At(progress float64) geom.Point {
	progress = clamp01(progress)
	return geom.Point{
		X: p.Origin.X + p.Offset.X*progress,
		Y: p.Origin.Y + p.Offset.Y*progress + fallDistance*progress*progress,
	}
}

// Opacity fades linearly to zero.
func (p Particle) Opacity(progress float64) float64 {
	return 1 - clamp01(progress)
}

// Size shrinks linearly to zero.
func (p Particle) Size(progress float64) float64 {
	return particleSize * (1 - clamp01(progress))
}

// Burst spawns 1 to 5 groups of particles around origin. Each group is
// jittered around origin and every particle gets a random spread and a
// green-leaning color.
func Burst(r *rand.Rand, origin geom.Point) []Particle {
	groups := r.Intn(maxBurstGroups) + 1
	out := make([]Particle, 0, groups*particlesPerGroup)
	for g := 0; g < groups; g++ {
		center := geom.Point{
			X: origin.X + r.Float64()*2*groupJitter - groupJitter,
			Y: origin.Y + r.Float64()*2*groupJitter - groupJitter,
		}
		for i := 0; i < particlesPerGroup; i++ {
			out = append(out, Particle{
				Origin: center,
				Offset: geom.Point{
					X: r.Float64()*2*spreadRadius - spreadRadius,
					Y: r.Float64()*2*spreadRadius - spreadRadius,
				},
				Color: colorful.Color{
					R: r.Float64() * 100 / 255,
					G: (r.Float64()*100 + 155) / 255,
					B: r.Float64() * 100 / 255,
				},
			})
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
