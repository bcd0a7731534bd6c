package nxcube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxPickIDs is the number of distinct ids a picking color can carry,
// enough for every build up to N=1673.
const MaxPickIDs = 1 << 24

// PickColor returns the RGBA value a picking pass draws c with: the type
// code in red and the id split across green (bits 0-7), blue (bits 8-15)
// and alpha (bits 16-23, stored inverted). Ids below 65536 therefore draw
// fully opaque.
func (c *Cubie) PickColor() [4]byte {
	return [4]byte{byte(c.Type), byte(c.ID), byte(c.ID >> 8), ^byte(c.ID >> 16)}
}

// DecodePick reverses PickColor. ok is false for background pixels.
func DecodePick(px [4]byte) (t CubieType, id int, ok bool) {
	t = CubieType(px[0])
	if t < Corner || t > Trivial {
		return 0, 0, false
	}
	return t, int(px[1]) | int(px[2])<<8 | int(^px[3])<<16, true
}

// Pick resolves a picking pixel to a cubie of this build. Pixels whose type
// does not match the cubie at that id are rejected, as is every pixel of a
// build with more than MaxPickIDs cubies, where colors are no longer unique.
func (p *Puzzle) Pick(px [4]byte) (*Cubie, bool) {
	t, id, ok := DecodePick(px)
	if !ok || len(p.cubies) > MaxPickIDs {
		return nil, false
	}
	c, ok := p.Cubie(id)
	if !ok || c.Type != t {
		return nil, false
	}
	return c, true
}

// Select marks a cubie for free drag by id.
func (p *Puzzle) Select(id int) error {
	if _, ok := p.Cubie(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	p.selected = id
	return nil
}

// Selected returns the selected cubie id.
func (p *Puzzle) Selected() (int, bool) {
	return p.selected, p.selected >= 0
}

// ClearSelection drops the current selection.
func (p *Puzzle) ClearSelection() {
	p.selected = -1
}

// Nudge translates the selected cubie's offset by delta. It only affects
// rendering; grid and slice membership are unchanged.
func (p *Puzzle) Nudge(delta mgl64.Vec3) error {
	c, ok := p.Cubie(p.selected)
	if !ok {
		return ErrNoSelection
	}
	c.Offset = c.Offset.Mul4(mgl64.Translate3D(delta[0], delta[1], delta[2]))
	return nil
}
