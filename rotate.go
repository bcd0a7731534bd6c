package nxcube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction is the sense of a quarter turn about an axis. Positive is
// counterclockwise when looking down the axis toward the origin.
type Direction int

const (
	Negative Direction = -1
	Positive Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "?"
	}
}

// Valid reports whether d is Positive or Negative.
func (d Direction) Valid() bool {
	return d == Positive || d == Negative
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	return -d
}

// Rotation identifies a quarter turn of one slice.
type Rotation struct {
	Axis      Axis      `json:"axis"`
	Layer     int       `json:"layer"`
	Direction Direction `json:"direction"`
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	r.Direction = r.Direction.Inverse()
	return r
}

func (r Rotation) String() string {
	return fmt.Sprintf("%s%d%s", r.Axis, r.Layer, r.Direction)
}

// validate rejects a rotation for a size n puzzle before anything is
// mutated.
func (r Rotation) validate(n int) error {
	if !r.Axis.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, int(r.Axis))
	}
	if r.Layer < 0 || r.Layer >= n {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidLayer, r.Layer, n-1)
	}
	if !r.Direction.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(r.Direction))
	}
	return nil
}

// turnMatrix returns a rotation by angle radians about axis, signed by d.
func turnMatrix(axis Axis, d Direction, angle float64) mgl64.Mat4 {
	return mgl64.HomogRotate3D(angle, axis.Unit().Mul(float64(d)))
}

// quarterTurn returns the exact 90 degree rotation about axis. Entries are
// rounded so repeated composition never drifts.
func quarterTurn(axis Axis, d Direction) mgl64.Mat4 {
	return snap(turnMatrix(axis, d, math.Pi/2))
}

func snap(m mgl64.Mat4) mgl64.Mat4 {
	for i := range m {
		m[i] = math.Round(m[i])
	}
	return m
}

// Rotate turns the slice at layer on axis by a quarter turn in direction d.
//
// Every member's orientation is left-multiplied by the quarter turn, then
// the two grid coordinates perpendicular to the axis are permuted and the
// slice families for those axes are updated. Invalid arguments are rejected
// before anything changes.
func (p *Puzzle) Rotate(axis Axis, layer int, d Direction) error {
	return p.Apply(Rotation{Axis: axis, Layer: layer, Direction: d})
}

// Apply performs r instantaneously. See Rotate. It fails with ErrAnimating
// while an animated turn is in flight.
func (p *Puzzle) Apply(r Rotation) error {
	if err := r.validate(p.n); err != nil {
		return err
	}
	if p.animator != nil {
		return ErrAnimating
	}

	ids := p.slices.Layer(r.Axis, r.Layer).IDs()
	q := quarterTurn(r.Axis, r.Direction)
	for _, id := range ids {
		c := p.cubies[id]
		c.Orientation = q.Mul4(c.Orientation)
	}
	p.commit(r, ids)
	return nil
}

// commit settles the orientation of ids after a quarter turn r and moves
// them to their new grid cells. The animation path calls it once its
// increments have been applied.
func (p *Puzzle) commit(r Rotation, ids []int) {
	q := quarterTurn(r.Axis, r.Direction)
	b, c := r.Axis.others()
	last := p.n - 1

	for _, id := range ids {
		cubie := p.cubies[id]
		cubie.rest = q.Mul4(cubie.rest)
		cubie.Orientation = cubie.rest

		oldB, oldC := cubie.Grid[b], cubie.Grid[c]
		var newB, newC int
		if r.Direction == Positive {
			newB, newC = last-oldC, oldB
		} else {
			newB, newC = oldC, last-oldB
		}

		p.slices.move(id, b, oldB, newB)
		p.slices.move(id, c, oldC, newC)
		cubie.Grid[b], cubie.Grid[c] = newB, newC
	}
}
