// Package replay loads match logs and renders ticks for the inspector.
package replay

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/delta/tickreplay/internal/gamelog"
)

// palette holds the styles used to render a tick. Each renderer gets its
// own so colour can be switched off per output.
type palette struct {
	// Structural / metadata
	dim   lipgloss.Style // Gray - footers, legend, elapsed stamps
	label lipgloss.Style // Gray - labels
	value lipgloss.Style // White - values
	title lipgloss.Style // White bold - headers

	// Diagnostic kinds
	warn  lipgloss.Style // Yellow
	err   lipgloss.Style // Red
	debug lipgloss.Style // Cyan
	move  lipgloss.Style // Default
	other lipgloss.Style // Gray - unknown kinds

	// Players
	players [2]lipgloss.Style // Blue / Magenta

	// Grid glyphs
	wall   lipgloss.Style
	algae  lipgloss.Style
	poison lipgloss.Style
	bank   lipgloss.Style
	pad    lipgloss.Style

	divider string
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return palette{
		dim: r.NewStyle().
			Foreground(lipgloss.Color("8")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("8")),
		value: r.NewStyle().
			Foreground(lipgloss.Color("15")),
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),

		warn: r.NewStyle().
			Foreground(lipgloss.Color("11")),
		err: r.NewStyle().
			Foreground(lipgloss.Color("9")),
		debug: r.NewStyle().
			Foreground(lipgloss.Color("14")),
		move:  r.NewStyle(),
		other: r.NewStyle().Foreground(lipgloss.Color("8")),

		players: [2]lipgloss.Style{
			r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		},

		wall:   r.NewStyle().Foreground(lipgloss.Color("8")),
		algae:  r.NewStyle().Foreground(lipgloss.Color("10")),
		poison: r.NewStyle().Foreground(lipgloss.Color("9")),
		bank:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		pad:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),

		divider: r.NewStyle().
			Foreground(lipgloss.Color("8")).
			Render(strings.Repeat("=", 80)),
	}
}

// kindStyle returns the tag style for a record kind.
func (p palette) kindStyle(kind gamelog.Kind) lipgloss.Style {
	switch kind {
	case gamelog.KindWarn:
		return p.warn
	case gamelog.KindError:
		return p.err
	case gamelog.KindDebug:
		return p.debug
	case gamelog.KindMove:
		return p.move
	default:
		return p.other
	}
}

// player returns the style for a player index, falling back to value.
func (p palette) player(owner int) lipgloss.Style {
	if owner < 0 || owner >= len(p.players) {
		return p.value
	}
	return p.players[owner]
}
