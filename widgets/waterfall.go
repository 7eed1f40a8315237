package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoview/player"
	"go-pianoview/sequence"
	"go-pianoview/theme"
)

// MinNoteHeight is the shortest span a note is drawn with, in seconds
const MinNoteHeight = 0.1

// WaterfallOptions sizes the falling-notes view
type WaterfallOptions struct {
	Rows   int     // terminal rows
	Window float64 // seconds of upcoming music shown
	Theme  *theme.Theme
}

// Cell is one key column of one waterfall row
type Cell struct {
	On    bool
	Track int
}

// Row is a waterfall row, one cell per key
type Row [player.KeyCount]Cell

// WaterfallGrid lays out the notes visible from time t. Row 0 is the top
// (furthest ahead); the last row covers [t, t+Window/Rows) and sits right
// above the keyboard. Notes outside the drawable keys are skipped.
func WaterfallGrid(seq *sequence.Sequence, t float64, opts WaterfallOptions) []Row {
	if opts.Rows <= 0 || opts.Window <= 0 {
		return nil
	}
	grid := make([]Row, opts.Rows)
	dt := opts.Window / float64(opts.Rows)

	// every note with start <= t+Window and end > t-MinNoteHeight
	notes := seq.Window(nil, t+opts.Window, opts.Window+MinNoteHeight)
	for _, n := range notes {
		col, ok := player.KeyIndex(n.Pitch)
		if !ok {
			continue
		}
		height := n.Duration
		if height < MinNoteHeight {
			height = MinNoteHeight
		}
		for r := range grid {
			lo := t + float64(opts.Rows-1-r)*dt
			hi := lo + dt
			if n.Start < hi && n.Start+height > lo {
				grid[r][col] = Cell{On: true, Track: n.Track}
			}
		}
	}
	return grid
}

// Waterfall renders WaterfallGrid, one line per row
func Waterfall(seq *sequence.Sequence, t float64, opts WaterfallOptions) string {
	th := opts.Theme
	if th == nil {
		th = theme.New(nil)
	}
	grid := WaterfallGrid(seq, t, opts)
	lane := lipgloss.NewStyle().Foreground(th.Surface())

	lines := make([]string, len(grid))
	for r, row := range grid {
		var line strings.Builder
		for i, c := range row {
			isBlack := IsBlack(player.LowestKey + uint8(i))
			switch {
			case c.On:
				style := lipgloss.NewStyle().Foreground(th.Track(c.Track, isBlack))
				line.WriteString(style.Render(string(th.Symbols.Note)))
			case isBlack:
				line.WriteString(string(th.Symbols.Black))
			default:
				line.WriteString(lane.Render(string(th.Symbols.Empty)))
			}
		}
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}
