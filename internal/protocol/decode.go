package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/nxcube"
)

// Turn is one face turn reported by the cube.
type Turn struct {
	Code              byte        `json:"code"`
	CenterOrientation byte        `json:"center_orientation"`
	Clockwise         bool        `json:"clockwise"`
	Color             string      `json:"color"`
	Face              nxcube.Face `json:"-"`
	FaceName          string      `json:"face"`
}

// Battery is a battery level notification.
type Battery struct {
	Level int `json:"level"`
}

// CubeType is a cube type notification.
type CubeType struct {
	Code byte   `json:"code"`
	Name string `json:"name"`
}

// Orientation is a gyro notification with the faces it points up and front.
type Orientation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`

	Up    string `json:"up_face"`
	Front string `json:"front_face"`
}

// OfflineStats is the counter block the cube keeps while disconnected.
type OfflineStats struct {
	Moves  int `json:"moves"`
	Time   int `json:"time"`
	Solves int `json:"solves"`
}

// Center colors in protocol order, and the face each one sits on in the
// standard scheme (white up, green front, red right).
var (
	colorNames = [6]string{"blue", "green", "white", "yellow", "red", "orange"}
	colorFaces = [6]nxcube.Face{nxcube.FaceB, nxcube.FaceF, nxcube.FaceU, nxcube.FaceD, nxcube.FaceR, nxcube.FaceL}
)

// FaceForColor maps a protocol color index to the face it names.
func FaceForColor(idx byte) (nxcube.Face, bool) {
	if int(idx) >= len(colorFaces) {
		return 0, false
	}
	return colorFaces[idx], true
}

// DecodeRotation decodes a rotation payload of [code][center] pairs. Even
// codes are clockwise turns; code/2 is the color index.
func DecodeRotation(payload []byte) ([]Turn, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	turns := make([]Turn, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		face, ok := FaceForColor(code / 2)
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", code/2, code)
		}
		turns = append(turns, Turn{
			Code:              code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             colorNames[code/2],
			Face:              face,
			FaceName:          face.String(),
		})
	}
	return turns, nil
}

// Rotation returns the puzzle rotation that replays t on an N cube.
func (t Turn) Rotation(n int) nxcube.Rotation {
	return nxcube.FaceRotation(t.Face, n, t.Clockwise)
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*Battery, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &Battery{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (*CubeType, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("cube type payload too short")
	}
	name := "standard"
	if payload[0] == 0x01 {
		name = "edge"
	}
	return &CubeType{Code: payload[0], Name: name}, nil
}

// DecodeOrientation decodes an "x#y#z#w" quaternion payload.
func DecodeOrientation(payload []byte) (*Orientation, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	o := &Orientation{X: v[0], Y: v[1], Z: v[2], W: v[3]}
	q := mgl64.Quat{W: o.W, V: mgl64.Vec3{o.X, o.Y, o.Z}}
	if q.Len() > 0 {
		q = q.Normalize()
	}
	o.Up = nearestFace(q.Rotate(nxcube.FaceU.Normal())).String()
	o.Front = nearestFace(q.Rotate(nxcube.FaceF.Normal())).String()
	return o, nil
}

func nearestFace(v mgl64.Vec3) nxcube.Face {
	best, bestDot := nxcube.FaceU, -2.0
	for _, f := range nxcube.Faces {
		if d := v.Dot(f.Normal()); d > bestDot {
			best, bestDot = f, d
		}
	}
	return best
}

// DecodeOfflineStats decodes a "moves#time#solves" payload.
func DecodeOfflineStats(payload []byte) (*OfflineStats, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return nil, fmt.Errorf("offline stats payload must have 3 parts, got %d", len(parts))
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid offline stats field %d: %w", i, err)
		}
		v[i] = n
	}
	return &OfflineStats{Moves: v[0], Time: v[1], Solves: v[2]}, nil
}

// Decode decodes a message into its journal event type and JSON payload.
func Decode(msg *Message) (eventType, payloadJSON string, err error) {
	eventType = TypeName(msg.Type)

	var payload any
	switch msg.Type {
	case TypeRotation:
		payload, err = DecodeRotation(msg.Payload)
	case TypeBattery:
		payload, err = DecodeBattery(msg.Payload)
	case TypeCubeType:
		payload, err = DecodeCubeType(msg.Payload)
	case TypeOrientation:
		payload, err = DecodeOrientation(msg.Payload)
	case TypeOfflineStats:
		payload, err = DecodeOfflineStats(msg.Payload)
	default:
		payload = map[string]string{"raw_hex": fmt.Sprintf("%X", msg.Payload)}
	}
	if err != nil {
		return eventType, "", err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return eventType, "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return eventType, string(data), nil
}
