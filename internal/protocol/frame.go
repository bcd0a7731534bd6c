// Package protocol decodes the GoCube smart cube BLE protocol into nxcube
// face turns.
package protocol

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types.
const (
	TypeRotation     byte = 0x01
	TypeState        byte = 0x02
	TypeOrientation  byte = 0x03
	TypeBattery      byte = 0x05
	TypeOfflineStats byte = 0x07
	TypeCubeType     byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
	CmdRequestCubeType    byte = 0x56
)

const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D
	frameSuffix2 byte = 0x0A
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid frame prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid frame suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrFrameTooShort   = errors.New("protocol: frame too short")
	ErrInvalidLength   = errors.New("protocol: invalid frame length")
)

// Message is one parsed notification frame.
type Message struct {
	Type      byte
	Payload   []byte
	RawBase64 string
}

// Parse parses a raw notification.
//
// Frame: [0x2A] [len] [type] [payload...] [checksum] [0x0D 0x0A], where len
// counts every byte after itself and the checksum is the byte sum of
// everything before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrFrameTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if len(data) < total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, total, len(data))
	}

	sumIdx := length - 1
	if sumIdx < 3 {
		return nil, ErrFrameTooShort
	}
	if data[sumIdx+1] != frameSuffix1 || data[sumIdx+2] != frameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return &Message{
		Type:      data[2],
		Payload:   data[3:sumIdx],
		RawBase64: base64.StdEncoding.EncodeToString(data[:total]),
	}, nil
}

// BuildCommand frames a payload-less command.
func BuildCommand(cmd byte) []byte {
	const length byte = 0x01
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameSuffix1, frameSuffix2}
}

// TypeName returns the journal name of a message type.
func TypeName(t byte) string {
	switch t {
	case TypeRotation:
		return "rotation"
	case TypeState:
		return "state"
	case TypeOrientation:
		return "orientation"
	case TypeBattery:
		return "battery"
	case TypeOfflineStats:
		return "offline_stats"
	case TypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", t)
	}
}
