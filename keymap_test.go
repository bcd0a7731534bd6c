package nxcube

import "testing"

func TestKeyRotation(t *testing.T) {
	tests := []struct {
		key  rune
		want Rotation
	}{
		{'R', Rotation{AxisX, 4, Positive}},
		{'L', Rotation{AxisX, 0, Negative}},
		{'U', Rotation{AxisY, 4, Positive}},
		{'D', Rotation{AxisY, 0, Negative}},
		{'F', Rotation{AxisZ, 4, Positive}},
		{'B', Rotation{AxisZ, 0, Negative}},
		{'M', Rotation{AxisX, 2, Positive}},
		{'E', Rotation{AxisY, 2, Positive}},
		{'S', Rotation{AxisZ, 2, Negative}},
		{'f', Rotation{AxisZ, 4, Positive}},
	}
	for _, tt := range tests {
		got, ok := KeyRotation(tt.key, 5, Standard)
		if !ok || got != tt.want {
			t.Errorf("KeyRotation(%c) = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
	}
}

func TestMiddleKeysNeedOddSize(t *testing.T) {
	for _, k := range "MES" {
		if _, ok := KeyRotation(k, 4, Standard); ok {
			t.Errorf("%c bound on an even cube", k)
		}
		if _, ok := KeyRotation(k, 3, Void); ok {
			t.Errorf("%c bound in void mode", k)
		}
		if _, ok := KeyRotation(k, 3, MirrorBlocks); !ok {
			t.Errorf("%c not bound in mirror mode", k)
		}
		for _, n := range []int{2, 6, 8} {
			if _, ok := KeyRotation(k, n, MirrorBlocks); ok {
				t.Errorf("%c bound on a %dx%dx%d cube", k, n, n, n)
			}
		}
	}

	// The n/2 layer of an even cube is still reachable as a plain rotation.
	p := mustNew(t, 4)
	if err := p.Apply(Rotation{AxisX, 2, Positive}); err != nil {
		t.Fatal(err)
	}
	if p.IsSolved() {
		t.Error("inner layer turn left the cube solved")
	}
}

func TestUnknownKey(t *testing.T) {
	for _, k := range "XYZq1 " {
		if _, ok := KeyRotation(k, 3, Standard); ok {
			t.Errorf("%q should not be bound", k)
		}
	}
	if _, ok := KeyRotation('R', 0, Standard); ok {
		t.Error("keys on an empty puzzle should not be bound")
	}
}

func TestFaceRotation(t *testing.T) {
	for _, f := range Faces {
		ccw := FaceRotation(f, 3, false)
		cw := FaceRotation(f, 3, true)
		if cw != ccw.Inverse() {
			t.Errorf("face %s: clockwise %v is not the inverse of %v", f, cw, ccw)
		}
		if ccw.Axis != f.Axis() {
			t.Errorf("face %s turns axis %s", f, ccw.Axis)
		}
	}
}
