package nxcube

import "unicode"

// FaceKeys lists the face letters KeyRotation understands.
const FaceKeys = "RLUDFBMES"

// KeyRotation maps a face letter to the turn it triggers on a size n puzzle
// in mode m. Letters are case-insensitive.
//
// R, U and F turn the high layer of X, Y and Z in the positive direction;
// L, D and B turn the low layer in the negative direction, so every outer
// key turns its face counterclockwise as seen from that face. M and E turn
// the middle layer positively and S negatively. The middle-layer keys only
// exist for odd n outside void mode; ok is false otherwise and for unknown
// letters. Even sizes have no single middle layer, so M, E and S are not
// mapped to layer n/2 there; use Rotation directly to turn an inner layer
// of an even cube.
func KeyRotation(key rune, n int, m Mode) (r Rotation, ok bool) {
	if n < 1 {
		return Rotation{}, false
	}
	last := n - 1
	switch unicode.ToUpper(key) {
	case 'R':
		return Rotation{AxisX, last, Positive}, true
	case 'L':
		return Rotation{AxisX, 0, Negative}, true
	case 'U':
		return Rotation{AxisY, last, Positive}, true
	case 'D':
		return Rotation{AxisY, 0, Negative}, true
	case 'F':
		return Rotation{AxisZ, last, Positive}, true
	case 'B':
		return Rotation{AxisZ, 0, Negative}, true
	}

	if m == Void || n%2 == 0 {
		return Rotation{}, false
	}
	mid := n / 2
	switch unicode.ToUpper(key) {
	case 'M':
		return Rotation{AxisX, mid, Positive}, true
	case 'E':
		return Rotation{AxisY, mid, Positive}, true
	case 'S':
		// S turns against M and E.
		return Rotation{AxisZ, mid, Negative}, true
	}
	return Rotation{}, false
}

// FaceRotation maps an outer face to its key turn. When clockwise is true
// the direction is reversed, giving the clockwise turn as seen from the
// face.
func FaceRotation(f Face, n int, clockwise bool) Rotation {
	r, _ := KeyRotation(rune(f.String()[0]), n, Standard)
	if clockwise {
		r = r.Inverse()
	}
	return r
}
