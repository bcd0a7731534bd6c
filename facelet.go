package nxcube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a sticker color.
type Color byte

const (
	White   Color = 0 // Up face when solved
	Yellow  Color = 1 // Down face when solved
	Green   Color = 2 // Front face when solved
	Blue    Color = 3 // Back face when solved
	Red     Color = 4 // Right face when solved
	Orange  Color = 5 // Left face when solved
	Neutral Color = 6 // Unstickered plastic
	None    Color = 7 // No cubie in the cell
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Neutral:
		return "#"
	case None:
		return "."
	default:
		return "?"
	}
}

// RGB returns the display color.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case White:
		return 255, 255, 255
	case Yellow:
		return 254, 244, 86
	case Green:
		return 75, 164, 47
	case Blue:
		return 35, 103, 246
	case Red:
		return 235, 65, 38
	case Orange:
		return 236, 151, 63
	case Neutral:
		return 24, 24, 24
	default:
		return 0, 0, 0
	}
}

// Face is one of the six outer faces, identified by its outward normal.
// The order matches Template.Paint.
type Face int

const (
	FaceR Face = iota // +X
	FaceU             // +Y
	FaceF             // +Z
	FaceB             // -Z
	FaceD             // -Y
	FaceL             // -X
)

// Faces lists all faces in Template.Paint order.
var Faces = [6]Face{FaceR, FaceU, FaceF, FaceB, FaceD, FaceL}

func (f Face) String() string {
	switch f {
	case FaceR:
		return "R"
	case FaceU:
		return "U"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceD:
		return "D"
	case FaceL:
		return "L"
	default:
		return "?"
	}
}

// Axis returns the axis the face is perpendicular to.
func (f Face) Axis() Axis {
	switch f {
	case FaceR, FaceL:
		return AxisX
	case FaceU, FaceD:
		return AxisY
	default:
		return AxisZ
	}
}

// Sign is +1 for faces on the positive side of their axis, -1 otherwise.
func (f Face) Sign() int {
	switch f {
	case FaceR, FaceU, FaceF:
		return 1
	default:
		return -1
	}
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl64.Vec3 {
	return f.Axis().Unit().Mul(float64(f.Sign()))
}

// SolvedColor returns the color the face shows when solved.
func (f Face) SolvedColor() Color {
	switch f {
	case FaceR:
		return Red
	case FaceU:
		return White
	case FaceF:
		return Green
	case FaceB:
		return Blue
	case FaceD:
		return Yellow
	default:
		return Orange
	}
}

func faceFor(axis Axis, sign int) Face {
	for _, f := range Faces {
		if f.Axis() == axis && f.Sign() == sign {
			return f
		}
	}
	return FaceR
}

// cellAt maps a (row, col) position on a face, as seen from outside with
// the net's usual orientation, to a grid cell.
func cellAt(f Face, row, col, n int) Coord {
	last := n - 1
	switch f {
	case FaceF:
		return Coord{col, last - row, last}
	case FaceB:
		return Coord{last - col, last - row, 0}
	case FaceR:
		return Coord{last, last - row, last - col}
	case FaceL:
		return Coord{0, last - row, col}
	case FaceU:
		return Coord{col, last, row}
	default:
		return Coord{col, 0, last - row}
	}
}

// Facelets returns the colors visible on face f, N rows of N cells, top row
// first. Cells without a cubie read None.
//
// Colors come from settled orientations, so a turn that is still animating
// shows as not yet made.
func (p *Puzzle) Facelets(f Face) [][]Color {
	cells := p.grid()
	out := make([][]Color, p.n)
	for row := range out {
		out[row] = make([]Color, p.n)
		for col := range out[row] {
			c, ok := cells[cellAt(f, row, col, p.n)]
			if !ok {
				out[row][col] = None
				continue
			}
			out[row][col] = p.sticker(c, f)
		}
	}
	return out
}

// sticker returns the color c shows toward face f.
func (p *Puzzle) sticker(c *Cubie, f Face) Color {
	// The local face pointing along f's normal is R^T * normal.
	local := c.rest.Transpose().Mul4x1(f.Normal().Vec4(0)).Vec3()
	for a := range local {
		v := int(math.Round(local[a]))
		if v == 0 {
			continue
		}
		lf := faceFor(Axis(a), v)
		want := 0
		if v > 0 {
			want = p.n - 1
		}
		if c.home[a] == want {
			return lf.SolvedColor()
		}
		return Neutral
	}
	return Neutral
}

// IsSolved reports whether every face shows a single color.
func (p *Puzzle) IsSolved() bool {
	for _, f := range Faces {
		first := None
		for _, row := range p.Facelets(f) {
			for _, c := range row {
				if c == None {
					continue
				}
				if first == None {
					first = c
				} else if c != first {
					return false
				}
			}
		}
	}
	return true
}
