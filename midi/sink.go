package midi

import (
	"errors"
	"fmt"

	"go-pianoview/config"
)

var (
	ErrPortNotFound = errors.New("midi output port not found")
	ErrNoSoundFont  = errors.New("soundfont path required for synth output")
)

// Sink receives note signals and owns whatever device sits behind them
type Sink interface {
	NoteOn(channel, key, velocity uint8)
	NoteOff(channel, key uint8)
	Close() error
}

// Null discards everything
type Null struct{}

func (Null) NoteOn(channel, key, velocity uint8) {}
func (Null) NoteOff(channel, key uint8)          {}
func (Null) Close() error                        { return nil }

// Fanout forwards every signal to all of its sinks in order
type Fanout []Sink

func (f Fanout) NoteOn(channel, key, velocity uint8) {
	for _, s := range f {
		s.NoteOn(channel, key, velocity)
	}
}

func (f Fanout) NoteOff(channel, key uint8) {
	for _, s := range f {
		s.NoteOff(channel, key)
	}
}

// Close closes every sink and joins their errors
func (f Fanout) Close() error {
	var errs []error
	for _, s := range f {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open builds the sink selected by cfg.Backend
func Open(cfg config.OutputConfig) (Sink, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return Null{}, nil
	case config.BackendMIDI, "":
		return OpenPort(cfg.PortName)
	case config.BackendSynth:
		return OpenSynth(cfg.SoundFont, cfg.SampleRate)
	case config.BackendBoth:
		port, err := OpenPort(cfg.PortName)
		if err != nil {
			return nil, err
		}
		synth, err := OpenSynth(cfg.SoundFont, cfg.SampleRate)
		if err != nil {
			port.Close()
			return nil, err
		}
		return Fanout{port, synth}, nil
	}
	return nil, fmt.Errorf("unknown output backend %q", cfg.Backend)
}
