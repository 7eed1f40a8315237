package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoview/theme"
)

// progressHead returns the head column for pct on a bar of width cells
func progressHead(pct float64, width int) int {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	return int(math.Round(pct * float64(width-1)))
}

// ProgressBar renders pct (clamped to 0-1) across width cells
func ProgressBar(pct float64, width int, th *theme.Theme) string {
	if width <= 0 {
		return ""
	}
	head := progressHead(pct, width)
	done := lipgloss.NewStyle().Foreground(th.Accent())
	rest := lipgloss.NewStyle().Foreground(th.Muted())

	var out strings.Builder
	if head > 0 {
		out.WriteString(done.Render(strings.Repeat(string(th.Symbols.Filled), head)))
	}
	out.WriteString(done.Render(string(th.Symbols.Head)))
	if tail := width - head - 1; tail > 0 {
		out.WriteString(rest.Render(strings.Repeat(string(th.Symbols.Track), tail)))
	}
	return out.String()
}

// ProgressFraction maps a click at column x of a width-cell bar back to the
// fraction its head would be drawn at
func ProgressFraction(x, width int) float64 {
	if width <= 1 || x <= 0 {
		return 0
	}
	if x >= width-1 {
		return 1
	}
	return float64(x) / float64(width-1)
}
