// Package nxcube models the state of an NxNxN twisty cube and turns its
// slices.
//
// # Features
//
//   - Any size from 1x1x1 up, in standard, mirror-blocks and void variants
//   - Quarter turns of any slice on any axis in either direction
//   - Frame-stepped turn animation with an explicit state machine
//   - Random shuffles and reset to solved
//   - Per-cubie visual classification and picking colors for renderers
//
// # Quick Start
//
//	p, err := nxcube.New(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Turn the right face, then undo it
//	p.Rotate(nxcube.AxisX, 2, nxcube.Positive)
//	p.Rotate(nxcube.AxisX, 2, nxcube.Negative)
//
//	fmt.Println("Solved:", p.IsSolved())
//
// # Frame Loop
//
// A Controller owns the animation. Call Tick once per frame and draw each
// cubie with its Model transform:
//
//	c, _ := nxcube.NewController(4, nxcube.WithMode(nxcube.MirrorBlocks))
//	c.Press('R')
//	for c.Busy() {
//	    c.Tick()
//	    draw(c.Puzzle().Cubies())
//	}
//
// # Coordinates
//
// Cubie i sits at grid cell (x, y, z) with each component in [0, N-1]. Its
// reference position is 2*cell - (N-1), so the puzzle is centered on the
// origin. Slices are indexed by axis and layer; the layer of a cubie on an
// axis is its grid coordinate on that axis.
package nxcube
