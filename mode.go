package nxcube

import (
	"fmt"
	"strings"
)

// Mode selects the puzzle variant.
type Mode int

const (
	Standard     Mode = 0 // Regular stickered cube
	MirrorBlocks Mode = 1 // Same mechanism, cubies vary in size per layer
	Void         Mode = 2 // No center-face pieces
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case MirrorBlocks:
		return "mirror"
	case Void:
		return "void"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known variants.
func (m Mode) Valid() bool {
	return m >= Standard && m <= Void
}

// Next returns the mode that follows m in the cycle
// standard, mirror, void, standard.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

// ParseMode parses a mode name. It accepts the names produced by String
// plus a few common spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "std", "0":
		return Standard, nil
	case "mirror", "mirror-blocks", "mirrorblocks", "1":
		return MirrorBlocks, nil
	case "void", "2":
		return Void, nil
	}
	return Standard, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
