package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Backend selects where note signals go
type Backend string

const (
	BackendMIDI  Backend = "midi"  // external MIDI port
	BackendSynth Backend = "synth" // built-in SoundFont synth
	BackendBoth  Backend = "both"
	BackendNone  Backend = "none" // silent, visuals only
)

// maxRecent caps the recent files list
const maxRecent = 10

// OutputConfig defines the sound output
type OutputConfig struct {
	Backend    Backend `json:"backend"`
	PortName   string  `json:"portName,omitempty"`
	SoundFont  string  `json:"soundFont,omitempty"`
	SampleRate int     `json:"sampleRate,omitempty"`
}

// PlaybackConfig tunes the transport
type PlaybackConfig struct {
	LeadIn float64 `json:"leadIn"` // seconds before the first note
}

// UIConfig stores UI preferences
type UIConfig struct {
	FPS          int     `json:"fps"`
	WindowLength float64 `json:"windowLength"` // seconds of upcoming notes shown
	Palette      string  `json:"palette,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output   OutputConfig   `json:"output"`
	Playback PlaybackConfig `json:"playback"`
	UI       UIConfig       `json:"ui"`
	Recent   []string       `json:"recent,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Backend:    BackendMIDI,
			SampleRate: 44100,
		},
		Playback: PlaybackConfig{
			LeadIn: 3.0,
		},
		UI: UIConfig{
			FPS:          60,
			WindowLength: 4.0,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoview"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Missing files yield defaults; fields
// absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()

	return cfg, nil
}

// normalize replaces values the player cannot work with
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Playback.LeadIn <= 0 {
		c.Playback.LeadIn = def.Playback.LeadIn
	}
	if c.UI.FPS <= 0 {
		c.UI.FPS = def.UI.FPS
	}
	if c.UI.WindowLength <= 0 {
		c.UI.WindowLength = def.UI.WindowLength
	}
	if c.Output.Backend == "" {
		c.Output.Backend = def.Output.Backend
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AddRecent moves path to the front of the recent files list
func (c *Config) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.Recent {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	c.Recent = recent
}
