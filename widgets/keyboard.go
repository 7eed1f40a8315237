package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoview/player"
	"go-pianoview/theme"
)

// IsBlack reports whether pitch is a black key
func IsBlack(pitch uint8) bool {
	switch pitch % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Keyboard renders the 88 keys as one row, one cell per key. Sounding keys
// take their track colour.
func Keyboard(snap player.Snapshot, th *theme.Theme) string {
	white := lipgloss.NewStyle().Foreground(th.WhiteKey())
	black := lipgloss.NewStyle().Foreground(th.BlackKey())

	var out strings.Builder
	for i, k := range snap {
		pitch := player.LowestKey + uint8(i)
		isBlack := IsBlack(pitch)
		switch {
		case k.On:
			style := lipgloss.NewStyle().Foreground(th.Track(k.Track, isBlack))
			out.WriteString(style.Render(string(th.Symbols.Pressed)))
		case isBlack:
			out.WriteString(black.Render(string(th.Symbols.BlackKey)))
		default:
			out.WriteString(white.Render(string(th.Symbols.WhiteKey)))
		}
	}
	return out.String()
}
