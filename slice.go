package nxcube

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the three principal axes.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Unit returns the axis unit vector.
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// others returns the two axes permuted by a turn about a, in the order
// (B, C) used by the permutation rule.
func (a Axis) others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisZ, AxisX
	default:
		return AxisX, AxisY
	}
}

// ParseAxis parses "x", "y" or "z" (either case).
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Slice is the set of cubies whose grid coordinate on Axis equals Layer.
type Slice struct {
	Axis  Axis
	Layer int

	members map[int]struct{}
}

// Contains reports whether id is a member.
func (s *Slice) Contains(id int) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the member count.
func (s *Slice) Len() int {
	return len(s.members)
}

// IDs returns the member ids in ascending order.
func (s *Slice) IDs() []int {
	ids := make([]int, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Registry holds the three slice families of a puzzle. For every axis the
// slices of that family partition the cubie ids.
type Registry struct {
	n        int
	families [3][]*Slice
}

func newRegistry(n int) *Registry {
	r := &Registry{n: n}
	for a := range r.families {
		r.families[a] = make([]*Slice, n)
		for l := 0; l < n; l++ {
			r.families[a][l] = &Slice{
				Axis:    Axis(a),
				Layer:   l,
				members: make(map[int]struct{}),
			}
		}
	}
	return r
}

// Layer returns the slice at layer on axis, or nil when out of range.
func (r *Registry) Layer(axis Axis, layer int) *Slice {
	if !axis.Valid() || layer < 0 || layer >= r.n {
		return nil
	}
	return r.families[axis][layer]
}

// Family returns the slices of one axis ordered by layer.
func (r *Registry) Family(axis Axis) []*Slice {
	if !axis.Valid() {
		return nil
	}
	return r.families[axis]
}

// assign derives the cubie's grid coordinate from its reference position
// and inserts it into one slice per axis.
func (r *Registry) assign(c *Cubie) {
	c.Grid = gridFromPosition(c.Position, r.n)
	for a, layer := range c.Grid {
		r.families[a][layer].members[c.ID] = struct{}{}
	}
}

// move transfers id between two slices of the same family.
func (r *Registry) move(id int, axis Axis, from, to int) {
	if from == to {
		return
	}
	delete(r.families[axis][from].members, id)
	r.families[axis][to].members[id] = struct{}{}
}

func (r *Registry) clear() {
	for _, family := range r.families {
		for _, s := range family {
			clear(s.members)
		}
	}
}

// check verifies that each family partitions cubies and agrees with every
// cubie's grid coordinate.
func (r *Registry) check(cubies []*Cubie) error {
	for a, family := range r.families {
		total := 0
		for _, s := range family {
			total += s.Len()
		}
		if total != len(cubies) {
			return fmt.Errorf("%s family holds %d ids, want %d", Axis(a), total, len(cubies))
		}
		for _, c := range cubies {
			layer := c.Grid[a]
			if layer < 0 || layer >= r.n {
				return fmt.Errorf("cubie %d: %s coordinate %d out of range", c.ID, Axis(a), layer)
			}
			if !family[layer].Contains(c.ID) {
				return fmt.Errorf("cubie %d missing from %s slice %d", c.ID, Axis(a), layer)
			}
		}
	}
	return nil
}
