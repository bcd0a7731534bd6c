// Package render draws puzzles as terminal face nets.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/nxcube"
)

// Scheme selects how stickers are drawn.
type Scheme int

const (
	SchemeColor   Scheme = iota // colored blocks
	SchemeLetters               // colored letters
	SchemeMono                  // plain letters
)

func (s Scheme) String() string {
	switch s {
	case SchemeColor:
		return "color"
	case SchemeLetters:
		return "letters"
	case SchemeMono:
		return "mono"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// Next returns the following scheme in the cycle.
func (s Scheme) Next() Scheme {
	return (s + 1) % 3
}

// ParseScheme parses a scheme name.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "color", "colour", "":
		return SchemeColor, nil
	case "letters":
		return SchemeLetters, nil
	case "mono":
		return SchemeMono, nil
	}
	return 0, fmt.Errorf("unknown color scheme %q", name)
}

var (
	noneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	faceLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func hex(c nxcube.Color) lipgloss.Color {
	r, g, b := c.RGB()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// Cell renders one sticker two columns wide.
func Cell(c nxcube.Color, s Scheme) string {
	if c == nxcube.None {
		if s == SchemeMono {
			return ". "
		}
		return noneStyle.Render("· ")
	}
	switch s {
	case SchemeColor:
		return lipgloss.NewStyle().Background(hex(c)).Render("  ")
	case SchemeLetters:
		return lipgloss.NewStyle().Foreground(hex(c)).Bold(true).Render(c.String() + " ")
	default:
		return c.String() + " "
	}
}

// Face renders one face as n lines.
func Face(p *nxcube.Puzzle, f nxcube.Face, s Scheme) []string {
	grid := p.Facelets(f)
	lines := make([]string, len(grid))
	for i, row := range grid {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(Cell(c, s))
		}
		lines[i] = b.String()
	}
	return lines
}

// Net renders the unfolded puzzle: U above, then L F R B, then D below.
func Net(p *nxcube.Puzzle, s Scheme) string {
	n := p.Size()
	pad := strings.Repeat(" ", 2*n+1)

	var b strings.Builder
	for _, line := range Face(p, nxcube.FaceU, s) {
		b.WriteString(pad + line + "\n")
	}

	strip := make([]string, 0, 4*2)
	for i, f := range []nxcube.Face{nxcube.FaceL, nxcube.FaceF, nxcube.FaceR, nxcube.FaceB} {
		if i > 0 {
			strip = append(strip, strings.Repeat(" \n", n-1)+" ")
		}
		strip = append(strip, strings.Join(Face(p, f, s), "\n"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strip...) + "\n")

	for _, line := range Face(p, nxcube.FaceD, s) {
		b.WriteString(pad + line + "\n")
	}
	return b.String()
}

// Legend labels the net's faces.
func Legend() string {
	return faceLabel.Render("U top · L F R B middle · D bottom")
}

// ProgressBar renders a turn's progress as a bar of width cells.
func ProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
