package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-pianoview/config"
	"go-pianoview/debug"
	"go-pianoview/midi"
	"go-pianoview/player"
	"go-pianoview/sequence"
	"go-pianoview/theme"
	"go-pianoview/tui"
)

var flags struct {
	port      string
	backend   string
	soundFont string
	leadIn    float64
	fps       int
	palette   string
	debug     bool
	save      bool
}

var rootCmd = &cobra.Command{
	Use:   "go-pianoview [file.mid]",
	Short: "Play a MIDI file on a falling-notes piano",
	Long: `Plays a Standard MIDI File to a MIDI output port or a SoundFont synth
while drawing the notes falling onto an 88-key keyboard.

Without a file argument the most recently played file is opened.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.port, "port", "p", "", "MIDI output port name (substring match)")
	f.StringVarP(&flags.backend, "backend", "b", "", "output backend: midi, synth, both or none")
	f.StringVarP(&flags.soundFont, "soundfont", "s", "", "SoundFont (.sf2) for the synth backend")
	f.Float64Var(&flags.leadIn, "lead-in", 0, "seconds of silence before the first note")
	f.IntVar(&flags.fps, "fps", 0, "frames per second")
	f.StringVar(&flags.palette, "palette", "", "GIMP .gpl palette file")
	f.BoolVar(&flags.debug, "debug", false, "write a debug log to "+debug.DefaultPath())
	f.BoolVar(&flags.save, "save", false, "store the given flags in the config file")
}

// applyFlags copies explicitly set flags over cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("port") {
		cfg.Output.PortName = flags.port
	}
	if f.Changed("backend") {
		cfg.Output.Backend = config.Backend(flags.backend)
	}
	if f.Changed("soundfont") {
		cfg.Output.SoundFont = flags.soundFont
	}
	if f.Changed("lead-in") && flags.leadIn > 0 {
		cfg.Playback.LeadIn = flags.leadIn
	}
	if f.Changed("fps") && flags.fps > 0 {
		cfg.UI.FPS = flags.fps
	}
	if f.Changed("palette") {
		cfg.UI.Palette = flags.palette
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flags.debug {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// stored is what gets written back; flags only reach it with --save
	stored := *cfg
	stored.Recent = append([]string(nil), cfg.Recent...)
	applyFlags(cmd, cfg)
	if flags.save {
		stored = *cfg
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case len(cfg.Recent) > 0:
		path = cfg.Recent[0]
	default:
		return errors.New("no MIDI file given")
	}

	seq, err := sequence.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	stored.AddRecent(path)
	if err := stored.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}

	th := theme.New(nil)
	if cfg.UI.Palette != "" {
		palette, err := theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			return fmt.Errorf("load palette: %w", err)
		}
		th = theme.New(palette)
	}

	sink, err := midi.Open(cfg.Output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer sink.Close()

	p, err := player.New(seq, sink, player.WithLeadIn(cfg.Playback.LeadIn))
	if err != nil {
		return err
	}

	m := tui.NewModel(p, th, tui.Options{
		Title:  filepath.Base(path),
		FPS:    cfg.UI.FPS,
		Window: cfg.UI.WindowLength,
	})
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = prog.Run()
	// a panic or kill skips the quit key; never leave notes hanging
	p.Close()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
