package nxcube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVisualIndex(t *testing.T) {
	tests := []struct {
		g    Coord
		n    int
		want int
	}{
		{Coord{0, 0, 0}, 3, 0},
		{Coord{2, 2, 2}, 3, 26},
		{Coord{1, 0, 2}, 3, 11},
		{Coord{0, 1, 1}, 3, 4},
		{Coord{1, 2, 3}, 4, 9 + 3 + 2},
		{Coord{1, 0, 1}, 2, 9*2 + 0 + 2},
		{Coord{0, 0, 0}, 1, 0},
	}
	for _, tt := range tests {
		if got := VisualIndex(tt.g, tt.n); got != tt.want {
			t.Errorf("VisualIndex(%s, %d) = %d, want %d", tt.g, tt.n, got, tt.want)
		}
	}
}

func TestVisualCategoryMatchesType(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for _, m := range allModes {
			p := mustNew(t, n, WithMode(m))
			for _, c := range p.Cubies() {
				if got := categoryOf(c.VisualIndex); got != c.Type {
					t.Errorf("n=%d cubie %d: category %s, type %s", n, c.ID, got, c.Type)
				}
			}
		}
	}
}

func TestVisualIndexFixedAtBuild(t *testing.T) {
	p := mustNew(t, 3)
	want := map[int]int{}
	for _, c := range p.Cubies() {
		want[c.ID] = c.VisualIndex
	}
	p.Shuffle(15)
	for _, c := range p.Cubies() {
		if c.VisualIndex != want[c.ID] {
			t.Errorf("cubie %d visual index changed by turning", c.ID)
		}
	}
}

func TestTemplateCatalogue(t *testing.T) {
	if got := len(Templates(Standard)); got != 26 {
		t.Errorf("standard templates = %d, want 26", got)
	}
	if got := len(Templates(MirrorBlocks)); got != 26 {
		t.Errorf("mirror templates = %d, want 26", got)
	}
	if got := len(Templates(Void)); got != 20 {
		t.Errorf("void templates = %d, want 20", got)
	}
	for _, tpl := range Templates(Void) {
		if tpl.Category == Center {
			t.Errorf("void catalogue has center template %d", tpl.Index)
		}
	}
}

func TestTemplatePaint(t *testing.T) {
	var corner Template
	for _, tpl := range Templates(Standard) {
		if tpl.Index == 26 {
			corner = tpl
		}
	}
	want := [6]Color{Red, White, Green, Neutral, Neutral, Neutral}
	if corner.Paint != want {
		t.Errorf("template 26 paint = %v, want %v", corner.Paint, want)
	}

	// Index 4 is x low, y and z interior: the left face center.
	for _, tpl := range Templates(Standard) {
		if tpl.Index != 4 {
			continue
		}
		if tpl.Category != Center {
			t.Errorf("template 4 category %s", tpl.Category)
		}
		painted := 0
		for f, c := range tpl.Paint {
			if c != Neutral {
				painted++
				if Face(f) != FaceL || c != Orange {
					t.Errorf("template 4 paints face %s %s", Face(f), c)
				}
			}
		}
		if painted != 1 {
			t.Errorf("template 4 paints %d faces", painted)
		}
	}
}

func TestMirrorBlocksExtents(t *testing.T) {
	byIndex := map[int]Template{}
	for _, tpl := range Templates(MirrorBlocks) {
		byIndex[tpl.Index] = tpl
	}

	hi := byIndex[26]
	if !hi.Max.ApproxEqual(mgl64.Vec3{1.5, 1.1, 1.9}) || !hi.Min.ApproxEqual(mgl64.Vec3{-1, -1, -1}) {
		t.Errorf("template 26 extents %v..%v", hi.Min, hi.Max)
	}
	lo := byIndex[0]
	if !lo.Min.ApproxEqual(mgl64.Vec3{-0.5, -0.9, -0.1}) || !lo.Max.ApproxEqual(mgl64.Vec3{1, 1, 1}) {
		t.Errorf("template 0 extents %v..%v", lo.Min, lo.Max)
	}

	for _, tpl := range Templates(Standard) {
		if !tpl.Min.ApproxEqual(mgl64.Vec3{-1, -1, -1}) || !tpl.Max.ApproxEqual(mgl64.Vec3{1, 1, 1}) {
			t.Errorf("standard template %d is not a unit box", tpl.Index)
		}
	}
}

func TestTrivialTemplatePaintsEverything(t *testing.T) {
	p := mustNew(t, 1)
	c, _ := p.Cubie(0)
	tpl := TemplateFor(c, Standard)
	for _, f := range Faces {
		if tpl.Paint[f] != f.SolvedColor() {
			t.Errorf("trivial template face %s = %s", f, tpl.Paint[f])
		}
	}
}
