package nxcube

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultShuffleTurns is the number of turns a shuffle applies unless
// configured otherwise.
const DefaultShuffleTurns = 10

// Shuffle applies k random quarter turns instantaneously and returns them
// in the order applied. Axis, layer and direction are drawn uniformly and
// independently for each turn. Nothing is applied while an animated turn
// is in flight.
func (p *Puzzle) Shuffle(k int) []Rotation {
	if p.animator != nil {
		return nil
	}
	turns := make([]Rotation, 0, max(k, 0))
	for i := 0; i < k; i++ {
		r := randomRotation(p.cfg.rng, p.n)
		// Random rotations are always in range.
		_ = p.Apply(r)
		turns = append(turns, r)
	}
	return turns
}

func randomRotation(rng *rand.Rand, n int) Rotation {
	r := Rotation{
		Axis:      Axis(rng.IntN(3)),
		Layer:     rng.IntN(n),
		Direction: Positive,
	}
	if rng.IntN(2) == 0 {
		r.Direction = Negative
	}
	return r
}

// Reset returns every cubie to its reference cell with identity
// orientation and rebuilds slice membership from scratch. A turn in flight
// is aborted. Drag offsets are left as they are.
func (p *Puzzle) Reset() {
	if p.animator != nil {
		p.animator.Abort()
	}
	p.slices.clear()
	for _, c := range p.cubies {
		p.slices.assign(c)
		c.Orientation = mgl64.Ident4()
		c.rest = mgl64.Ident4()
	}
}
