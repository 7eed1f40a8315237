package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Keyboard row
	WhiteKey rune // █ idle white key
	BlackKey rune // ▀ idle black key
	Pressed  rune // █ sounding key

	// Waterfall
	Note  rune // █ note body
	Empty rune // · empty cell
	Black rune //   empty cell above a black key

	// Progress bar
	Filled rune // ━
	Track  rune // ─
	Head   rune // ●
}

// New builds a theme. A nil palette means DefaultPalette.
func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			WhiteKey: '█',
			BlackKey: '▀',
			Pressed:  '█',

			Note:  '█',
			Empty: '·',
			Black: ' ',

			Filled: '━',
			Track:  '─',
			Head:   '●',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.2
	RoleMuted   = 0.35
	RoleFG      = 0.65
	RoleAccent  = 0.8
	RoleWhite   = 1.0
)

// Track colours. Even tracks are blue, odd tracks purple; the dark variant
// is used on black keys.
var trackColors = [2][2]RGB{
	{{93, 188, 255}, {48, 124, 255}},
	{{210, 89, 222}, {125, 69, 134}},
}

// TrackRGB returns the note colour for a track
func TrackRGB(track int, black bool) RGB {
	i := track % 2
	if i < 0 {
		i = -i
	}
	if black {
		return trackColors[i][1]
	}
	return trackColors[i][0]
}

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

// WhiteKey and BlackKey colour idle keys
func (t *Theme) WhiteKey() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWhite))
}

func (t *Theme) BlackKey() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

// Track returns the lipgloss colour for a sounding note of track
func (t *Theme) Track(track int, black bool) lipgloss.Color {
	return rgbToLipgloss(TrackRGB(track, black))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

// Hex formats c as #rrggbb
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
