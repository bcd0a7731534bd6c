package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube"
)

// frame wraps a type and payload the way the cube does.
func frame(msgType byte, payload ...byte) []byte {
	data := []byte{framePrefix, byte(len(payload) + 4), msgType}
	data = append(data, payload...)
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, sum, frameSuffix1, frameSuffix2)
}

func TestParse(t *testing.T) {
	msg, err := Parse(frame(TypeRotation, 0x08, 0x03))
	require.NoError(t, err)
	assert.Equal(t, TypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03}, msg.Payload)
	assert.NotEmpty(t, msg.RawBase64)
}

func TestParseErrors(t *testing.T) {
	good := frame(TypeBattery, 80)

	_, err := Parse(good[:3])
	assert.ErrorIs(t, err, ErrFrameTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidSuffix)

	_, err = Parse(good[:len(good)-1])
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, BuildCommand(CmdRequestBattery))
}

func TestDecodeRotation(t *testing.T) {
	// white clockwise, red counterclockwise
	turns, err := DecodeRotation([]byte{0x04, 0x00, 0x09, 0x06})
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, nxcube.FaceU, turns[0].Face)
	assert.True(t, turns[0].Clockwise)
	assert.Equal(t, "white", turns[0].Color)

	assert.Equal(t, nxcube.FaceR, turns[1].Face)
	assert.False(t, turns[1].Clockwise)
	assert.Equal(t, byte(0x06), turns[1].CenterOrientation)

	_, err = DecodeRotation([]byte{0x04})
	assert.Error(t, err)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestFaceForColor(t *testing.T) {
	want := map[byte]nxcube.Face{
		0: nxcube.FaceB, 1: nxcube.FaceF, 2: nxcube.FaceU,
		3: nxcube.FaceD, 4: nxcube.FaceR, 5: nxcube.FaceL,
	}
	for idx, face := range want {
		got, ok := FaceForColor(idx)
		require.True(t, ok)
		assert.Equal(t, face, got, "color %d", idx)
	}
	_, ok := FaceForColor(6)
	assert.False(t, ok)
}

func TestTurnRotation(t *testing.T) {
	ccw := Turn{Face: nxcube.FaceR, Clockwise: false}
	cw := Turn{Face: nxcube.FaceR, Clockwise: true}

	r, _ := nxcube.KeyRotation('R', 3, nxcube.Standard)
	assert.Equal(t, r, ccw.Rotation(3))
	assert.Equal(t, r.Inverse(), cw.Rotation(3))
}

func TestDecodeOrientation(t *testing.T) {
	o, err := DecodeOrientation([]byte("0#0#0#1"))
	require.NoError(t, err)
	assert.Equal(t, "U", o.Up)
	assert.Equal(t, "F", o.Front)

	// Half turn about X flips up to down.
	o, err = DecodeOrientation([]byte("1#0#0#0"))
	require.NoError(t, err)
	assert.Equal(t, "D", o.Up)
	assert.Equal(t, "B", o.Front)

	_, err = DecodeOrientation([]byte("1#2"))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	msg, err := Parse(frame(TypeBattery, 77))
	require.NoError(t, err)

	eventType, payload, err := Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, "battery", eventType)

	var b Battery
	require.NoError(t, json.Unmarshal([]byte(payload), &b))
	assert.Equal(t, 77, b.Level)

	msg, err = Parse(frame(TypeOfflineStats, []byte("12#30#2")...))
	require.NoError(t, err)
	_, payload, err = Decode(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"moves":12,"time":30,"solves":2}`, payload)

	msg, err = Parse(frame(0x7F, 0xAB))
	require.NoError(t, err)
	eventType, payload, err = Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, "unknown_0x7F", eventType)
	assert.JSONEq(t, `{"raw_hex":"AB"}`, payload)
}
