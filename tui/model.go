package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoview/player"
	"go-pianoview/theme"
	"go-pianoview/widgets"
)

const (
	// SeekStep is how far left/right jump, in seconds
	SeekStep = 5.0

	defaultFPS    = 60
	defaultWindow = 4.0

	// screen rows above the waterfall: header, progress bar
	progressRow = 1
	headerRows  = 2
	// rows below it: keyboard, help
	footerRows = 2
	minRows    = 4
)

var helpKeys = []widgets.KeyBinding{
	{Key: "space", Desc: "pause"},
	{Key: "←/→", Desc: "seek"},
	{Key: "click", Desc: "jump"},
	{Key: "q", Desc: "quit"},
}

// Options configures the view
type Options struct {
	Title  string
	FPS    int
	Window float64 // seconds of upcoming notes in the waterfall
}

type Model struct {
	Player *player.Player
	Theme  *theme.Theme

	title    string
	frame    time.Duration
	window   float64
	snap     player.Snapshot
	width    int
	height   int
	quitting bool
}

type tickMsg time.Time

func NewModel(p *player.Player, th *theme.Theme, opts Options) Model {
	if th == nil {
		th = theme.New(nil)
	}
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	return Model{
		Player: p,
		Theme:  th,
		title:  opts.Title,
		frame:  time.Second / time.Duration(opts.FPS),
		window: opts.Window,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts playback and the frame ticker
func (m Model) Init() tea.Cmd {
	m.Player.Start()
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.Player.Close()
			return m, tea.Quit

		case " ":
			m.Player.PauseResume()

		case "left", "h":
			m.seekBy(-SeekStep)

		case "right", "l":
			m.seekBy(SeekStep)

		case "home", "0":
			m.Player.SetTime(0)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == progressRow {
			m.Player.SeekFraction(widgets.ProgressFraction(msg.X, player.KeyCount))
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.snap = m.Player.Update()
		return m, m.tick()
	}

	return m, nil
}

func (m Model) seekBy(seconds float64) {
	t := m.Player.Elapsed().Seconds() + seconds
	if t < 0 {
		t = 0
	}
	m.Player.SetTime(t)
}

// waterfallRows is what is left of the screen for falling notes
func (m Model) waterfallRows() int {
	rows := m.height - headerRows - footerRows
	if rows < minRows {
		return minRows
	}
	return rows
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	state := "PLAY"
	if m.Player.Paused() {
		state = "PAUSE"
	}
	header := headerStyle.Render(fmt.Sprintf("go-pianoview  %s  %s  %s / %s  notes:%d",
		m.title, state,
		formatClock(m.Player.Elapsed().Seconds()), formatClock(m.Player.Duration()),
		m.Player.ActiveCount()))
	if n := m.Player.OutOfRange(); n > 0 {
		header += warnStyle.Render(fmt.Sprintf("  (%d notes outside 88 keys)", n))
	}

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(widgets.ProgressBar(m.Player.Percentage(), player.KeyCount, m.Theme))
	out.WriteString("\n")
	out.WriteString(widgets.Waterfall(m.Player.Sequence(), m.Player.Time(), widgets.WaterfallOptions{
		Rows:   m.waterfallRows(),
		Window: m.window,
		Theme:  m.Theme,
	}))
	out.WriteString("\n")
	out.WriteString(widgets.Keyboard(m.snap, m.Theme))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyLine(helpKeys)))

	return out.String()
}

// formatClock renders seconds as m:ss
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
