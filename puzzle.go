package nxcube

import (
	"fmt"
	"strings"
)

// Puzzle is the complete state of an NxNxN cube: its cubies and the three
// slice families indexing them.
type Puzzle struct {
	n        int
	mode     Mode
	cubies   []*Cubie
	slices   *Registry
	selected int
	animator *Animator // Set while a turn is in flight

	cfg *config
}

// New builds a solved puzzle of size n. The mode defaults to Standard and
// can be changed with WithMode.
func New(n int, opts ...Option) (*Puzzle, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Puzzle{cfg: cfg, selected: -1}
	if err := p.Rebuild(n, cfg.mode); err != nil {
		return nil, err
	}
	return p, nil
}

// Rebuild discards all cubies and builds a solved puzzle of size n in mode
// m. Ids from the previous build are no longer valid. A turn in flight is
// aborted. On error the puzzle is left untouched.
func (p *Puzzle) Rebuild(n int, m Mode) error {
	cubies, err := build(n, m)
	if err != nil {
		return err
	}
	if p.animator != nil {
		p.animator.Abort()
	}

	reg := newRegistry(n)
	for _, c := range cubies {
		reg.assign(c)
	}

	p.n = n
	p.mode = m
	p.cubies = cubies
	p.slices = reg
	p.selected = -1
	return nil
}

// Animating reports whether an Animator has a turn in flight on p.
func (p *Puzzle) Animating() bool {
	return p.animator != nil
}

// Size returns N.
func (p *Puzzle) Size() int {
	return p.n
}

// Mode returns the variant the puzzle was built in.
func (p *Puzzle) Mode() Mode {
	return p.mode
}

// Len returns the number of cubies.
func (p *Puzzle) Len() int {
	return len(p.cubies)
}

// Cubies returns the cubies ordered by id.
func (p *Puzzle) Cubies() []*Cubie {
	out := make([]*Cubie, len(p.cubies))
	copy(out, p.cubies)
	return out
}

// Cubie returns the cubie with the given id.
func (p *Puzzle) Cubie(id int) (*Cubie, bool) {
	if id < 0 || id >= len(p.cubies) {
		return nil, false
	}
	return p.cubies[id], true
}

// Slice returns the slice at layer on axis, or nil when out of range.
func (p *Puzzle) Slice(axis Axis, layer int) *Slice {
	return p.slices.Layer(axis, layer)
}

// Slices returns the slice registry.
func (p *Puzzle) Slices() *Registry {
	return p.slices
}

// At returns the cubie occupying grid cell g, or nil if the cell is empty.
func (p *Puzzle) At(g Coord) *Cubie {
	for _, c := range p.cubies {
		if c.Grid == g {
			return c
		}
	}
	return nil
}

// grid indexes cubies by their current cell.
func (p *Puzzle) grid() map[Coord]*Cubie {
	m := make(map[Coord]*Cubie, len(p.cubies))
	for _, c := range p.cubies {
		m[c.Grid] = c
	}
	return m
}

// CheckInvariants verifies that every slice family partitions the cubies,
// that membership matches grid coordinates, and that no two cubies share a
// cell.
func (p *Puzzle) CheckInvariants() error {
	if err := p.slices.check(p.cubies); err != nil {
		return err
	}
	seen := make(map[Coord]int, len(p.cubies))
	for _, c := range p.cubies {
		if other, ok := seen[c.Grid]; ok {
			return fmt.Errorf("cubies %d and %d share cell %s", other, c.ID, c.Grid)
		}
		seen[c.Grid] = c.ID
	}
	return nil
}

// String renders the puzzle as an unfolded net of sticker letters.
func (p *Puzzle) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%dx%d %s\n", p.n, p.n, p.n, p.mode)

	pad := strings.Repeat(" ", p.n+1)
	row := func(f Face, r int) string {
		var s strings.Builder
		for _, c := range p.Facelets(f)[r] {
			s.WriteString(c.String())
		}
		return s.String()
	}

	for r := 0; r < p.n; r++ {
		fmt.Fprintf(&b, "%s%s\n", pad, row(FaceU, r))
	}
	for r := 0; r < p.n; r++ {
		fmt.Fprintf(&b, "%s %s %s %s\n", row(FaceL, r), row(FaceF, r), row(FaceR, r), row(FaceB, r))
	}
	for r := 0; r < p.n; r++ {
		fmt.Fprintf(&b, "%s%s\n", pad, row(FaceD, r))
	}
	return b.String()
}
