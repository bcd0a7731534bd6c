package nxcube

import "github.com/go-gl/mathgl/mgl64"

// Per-axis layer classes used by the variant classifier.
const (
	classLow      = 0
	classInterior = 1
	classHigh     = 2
)

// mirrorOffsets is how far the outward face of an outer layer is pushed in
// mirror-blocks mode, per axis.
var mirrorOffsets = mgl64.Vec3{0.5, 0.1, 0.9}

func layerClass(v, n int) int {
	switch v {
	case 0:
		return classLow
	case n - 1:
		return classHigh
	default:
		return classInterior
	}
}

// VisualIndex collapses a grid cell into one of 27 categories, 9x+3y+z over
// the per-axis classes low (0), interior (1) and high (2). A 1x1x1 puzzle
// has the single index 0.
func VisualIndex(g Coord, n int) int {
	if n <= 1 {
		return 0
	}
	return 9*layerClass(g[0], n) + 3*layerClass(g[1], n) + layerClass(g[2], n)
}

// categoryOf derives the cubie type shown by a visual index.
func categoryOf(index int) CubieType {
	interior := 0
	for _, c := range [3]int{index / 9, index / 3 % 3, index % 3} {
		if c == classInterior {
			interior++
		}
	}
	switch interior {
	case 0:
		return Corner
	case 1:
		return Edge
	default:
		return Center
	}
}

// Template describes the geometry a renderer draws for one visual index.
// Paint holds the color of each template face, indexed by Face; faces that
// never point outward are Neutral. Min and Max bound the template box in
// cubie-local units.
type Template struct {
	Index    int
	Category CubieType
	Paint    [6]Color
	Min, Max mgl64.Vec3
}

// Templates returns the template catalogue for mode m ordered by index.
// The all-interior cell never holds a cubie and is omitted; void mode also
// omits the face-center categories.
func Templates(m Mode) []Template {
	var out []Template
	for index := 0; index < 27; index++ {
		if index == 13 {
			continue
		}
		t := newTemplate(index, m)
		if m == Void && t.Category == Center {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TemplateFor returns the template used to draw c in mode m.
func TemplateFor(c *Cubie, m Mode) Template {
	if c.Type == Trivial {
		t := Template{Category: Trivial, Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
		for f := range t.Paint {
			t.Paint[f] = Face(f).SolvedColor()
		}
		return t
	}
	return newTemplate(c.VisualIndex, m)
}

func newTemplate(index int, m Mode) Template {
	class := [3]int{index / 9, index / 3 % 3, index % 3}
	t := Template{
		Index:    index,
		Category: categoryOf(index),
		Min:      mgl64.Vec3{-1, -1, -1},
		Max:      mgl64.Vec3{1, 1, 1},
	}

	for f := range t.Paint {
		face := Face(f)
		want := classLow
		if face.Sign() > 0 {
			want = classHigh
		}
		if class[face.Axis()] == want {
			t.Paint[f] = face.SolvedColor()
		} else {
			t.Paint[f] = Neutral
		}
	}

	if m == MirrorBlocks {
		for a, c := range class {
			switch c {
			case classLow:
				t.Min[a] += mirrorOffsets[a]
			case classHigh:
				t.Max[a] += mirrorOffsets[a]
			}
		}
	}
	return t
}
