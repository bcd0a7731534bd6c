package nxcube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CubieType classifies a cubie by how many faces it shows. The values
// double as the type byte of a picking color.
type CubieType byte

const (
	Corner  CubieType = 1
	Edge    CubieType = 2
	Center  CubieType = 3
	Trivial CubieType = 4 // The single piece of a 1x1x1 cube
)

func (t CubieType) String() string {
	switch t {
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	case Center:
		return "center"
	case Trivial:
		return "trivial"
	default:
		return "unknown"
	}
}

// Coord is a grid coordinate, each component in [0, N-1].
type Coord [3]int

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c[0], c[1], c[2])
}

// Cubie is one physical piece of the puzzle.
//
// Position is fixed for the lifetime of a build. Orientation and Grid are
// only changed by rotations and Reset; Offset only by free drag.
type Cubie struct {
	ID          int
	Type        CubieType
	Position    mgl64.Vec3 // Reference position, components in [-(N-1), N-1]
	Orientation mgl64.Mat4 // Accumulated rotation, animated
	Offset      mgl64.Mat4 // Translation used for rendering and free drag
	Grid        Coord
	VisualIndex int

	home Coord      // Grid coordinate at the reference position
	rest mgl64.Mat4 // Orientation as of the last committed turn, exact
}

// Model returns the transform a renderer applies to the cubie's template.
func (c *Cubie) Model() mgl64.Mat4 {
	return c.Orientation.Mul4(c.Offset)
}

// Home returns the grid coordinate the cubie occupies when solved.
func (c *Cubie) Home() Coord {
	return c.home
}

// Settled returns the orientation as of the last committed turn. Entries are
// always exactly 0, 1 or -1.
func (c *Cubie) Settled() mgl64.Mat4 {
	return c.rest
}

func (c *Cubie) String() string {
	return fmt.Sprintf("#%d %s home=%s grid=%s visual=%d", c.ID, c.Type, c.home, c.Grid, c.VisualIndex)
}

// Canonical piece placements for a cube of half-width 1. Edge and face
// pieces are derived from these.
var (
	cornerPositions = [8]mgl64.Vec3{
		{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1},
		{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
	}

	// Corner pairs bounding each edge.
	edgeCorners = [12][2]int{
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
	}

	edgePositions = [12]mgl64.Vec3{
		{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1},
		{0, 1, -1}, {1, 1, 0}, {0, 1, 1}, {-1, 1, 0},
		{0, -1, -1}, {1, -1, 0}, {0, -1, 1}, {-1, -1, 0},
	}

	// Edges surrounding each face, in order F, R, D, L, U, B. Opposite
	// entries span the face's two in-plane directions.
	faceEdges = [6][4]int{
		{2, 10, 3, 6}, {1, 9, 2, 5}, {8, 9, 10, 11},
		{3, 11, 0, 7}, {4, 5, 6, 7}, {0, 8, 1, 4},
	}

	facePositions = [6]mgl64.Vec3{
		{0, 0, 1}, {1, 0, 0}, {0, -1, 0}, {-1, 0, 0}, {0, 1, 0}, {0, 0, -1},
	}
)

// CubieCount returns how many cubies a build of size n in mode m holds.
func CubieCount(n int, m Mode) int {
	switch {
	case n < 1:
		return 0
	case n == 1:
		return 1
	}
	count := 8 + 12*(n-2)
	if m != Void {
		count += 6 * (n - 2) * (n - 2)
	}
	return count
}

// build enumerates the cubies of a size n puzzle. Ids are assigned in
// enumeration order: corners, then edges, then face centers.
func build(n int, m Mode) ([]*Cubie, error) {
	if err := validateBuild(n, m); err != nil {
		return nil, err
	}

	cubies := make([]*Cubie, 0, CubieCount(n, m))
	add := func(t CubieType, pos mgl64.Vec3) {
		cubies = append(cubies, newCubie(len(cubies), t, pos, n))
	}

	if n == 1 {
		add(Trivial, mgl64.Vec3{})
		return cubies, nil
	}

	half := float64(n - 1)
	for _, p := range cornerPositions {
		add(Corner, p.Mul(half))
	}

	if n < 3 {
		return cubies, nil
	}

	// Offsets along an edge or face run -(n-3), -(n-3)+2, ..., n-3.
	step := func(j int) float64 { return float64(2*j - (n - 3)) }

	for i, e := range edgeCorners {
		dir := cornerPositions[e[0]].Sub(cornerPositions[e[1]]).Mul(0.5)
		for j := 0; j < n-2; j++ {
			add(Edge, edgePositions[i].Mul(half).Add(dir.Mul(step(j))))
		}
	}

	if m == Void {
		return cubies, nil
	}

	for i, f := range faceEdges {
		dir1 := edgePositions[f[0]].Sub(edgePositions[f[2]]).Mul(0.5)
		dir2 := edgePositions[f[1]].Sub(edgePositions[f[3]]).Mul(0.5)
		for j := 0; j < n-2; j++ {
			for k := 0; k < n-2; k++ {
				p := facePositions[i].Mul(half).
					Add(dir1.Mul(step(j))).
					Add(dir2.Mul(step(k)))
				add(Center, p)
			}
		}
	}

	return cubies, nil
}

func validateBuild(n int, m Mode) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return nil
}

func newCubie(id int, t CubieType, pos mgl64.Vec3, n int) *Cubie {
	c := &Cubie{
		ID:          id,
		Type:        t,
		Position:    pos,
		Orientation: mgl64.Ident4(),
		Offset:      mgl64.Translate3D(pos[0], pos[1], pos[2]),
		rest:        mgl64.Ident4(),
	}
	c.home = gridFromPosition(pos, n)
	c.Grid = c.home
	c.VisualIndex = VisualIndex(c.home, n)
	return c
}

// gridFromPosition maps a reference position to its grid cell:
// (p + (n-1)) / 2 on each axis.
func gridFromPosition(p mgl64.Vec3, n int) Coord {
	var g Coord
	for i := range g {
		g[i] = int(math.Round((p[i] + float64(n-1)) / 2))
	}
	return g
}
