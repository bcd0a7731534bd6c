package nxcube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPuzzleIsSolved(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for _, m := range allModes {
			p := mustNew(t, n, WithMode(m))
			if !p.IsSolved() {
				t.Errorf("new %dx%d %s should be solved", n, n, m)
				t.Log(p.String())
			}
		}
	}
}

func TestSingleTurnBreaksSolved(t *testing.T) {
	for n := 2; n <= 4; n++ {
		p := mustNew(t, n)
		p.Rotate(AxisX, n-1, Positive)
		if p.IsSolved() {
			t.Errorf("%dx%d should not be solved after R", n, n)
			t.Log(p.String())
		}
	}
}

func TestTrivialCubeStaysSolved(t *testing.T) {
	p := mustNew(t, 1)
	p.Rotate(AxisX, 0, Positive)
	if !p.IsSolved() {
		t.Error("a turned 1x1x1 still shows one color per face")
	}
	if got := p.Facelets(FaceF)[0][0]; got != White {
		t.Errorf("front after x turn = %s, want W", got)
	}
}

func TestRFaceletsN3(t *testing.T) {
	p := mustNew(t, 3)
	p.Rotate(AxisX, 2, Positive)

	front := p.Facelets(FaceF)
	up := p.Facelets(FaceU)
	for row := 0; row < 3; row++ {
		if front[row][2] != White {
			t.Errorf("F[%d][2] = %s, want W", row, front[row][2])
		}
		if front[row][0] != Green {
			t.Errorf("F[%d][0] = %s, want G", row, front[row][0])
		}
		if up[row][2] != Blue {
			t.Errorf("U[%d][2] = %s, want B", row, up[row][2])
		}
	}
	for _, row := range p.Facelets(FaceR) {
		for _, c := range row {
			if c != Red {
				t.Errorf("R face shows %s after turning R", c)
			}
		}
	}
	if t.Failed() {
		t.Log(p.String())
	}
}

func TestVoidFaceletsHaveHoles(t *testing.T) {
	p := mustNew(t, 3, WithMode(Void))
	for _, f := range Faces {
		if got := p.Facelets(f)[1][1]; got != None {
			t.Errorf("face %s center = %s, want None", f, got)
		}
	}
}

func TestFaceletNetOrientation(t *testing.T) {
	// Each face cell must map onto that face's layer.
	const n = 4
	for _, f := range Faces {
		seen := map[Coord]bool{}
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				g := cellAt(f, row, col, n)
				want := 0
				if f.Sign() > 0 {
					want = n - 1
				}
				if g[f.Axis()] != want {
					t.Errorf("face %s (%d,%d) -> %s off the face", f, row, col, g)
				}
				seen[g] = true
			}
		}
		if len(seen) != n*n {
			t.Errorf("face %s covers %d cells", f, len(seen))
		}
	}
}

func TestFaceNormals(t *testing.T) {
	for _, f := range Faces {
		n := f.Normal()
		if faceFor(f.Axis(), f.Sign()) != f {
			t.Errorf("faceFor(%s, %d) != %s", f.Axis(), f.Sign(), f)
		}
		if n.Len() != 1 {
			t.Errorf("face %s normal %v", f, n)
		}
	}
	if !FaceR.Normal().ApproxEqual(mgl64.Vec3{1, 0, 0}) || !FaceD.Normal().ApproxEqual(mgl64.Vec3{0, -1, 0}) {
		t.Error("unexpected face normals")
	}
}
