package midi

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"go-pianoview/debug"
)

// DefaultSampleRate is used when the config leaves it at zero
const DefaultSampleRate = 44100

// SynthOutput renders notes with a SoundFont and plays them on the default
// audio device. oto pulls samples from its own goroutine, so every access to
// the synthesizer goes through mu.
type SynthOutput struct {
	mu    sync.Mutex
	synth *meltysynth.Synthesizer
	left  []float32
	right []float32

	player *oto.Player
}

// OpenSynth loads the SoundFont at path and starts audio output
func OpenSynth(path string, sampleRate int) (*SynthOutput, error) {
	if path == "" {
		return nil, ErrNoSoundFont
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open soundfont: %w", err)
	}
	defer f.Close()

	sf, err := meltysynth.NewSoundFont(f)
	if err != nil {
		return nil, fmt.Errorf("parse soundfont %s: %w", path, err)
	}
	settings := meltysynth.NewSynthesizerSettings(int32(sampleRate))
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	s := &SynthOutput{synth: synth}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	debug.Log("out", "synth started soundfont=%s rate=%d", path, sampleRate)
	return s, nil
}

func (s *SynthOutput) NoteOn(channel, key, velocity uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synth.NoteOn(int32(channel), int32(key), int32(velocity))
}

func (s *SynthOutput) NoteOff(channel, key uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synth.NoteOff(int32(channel), int32(key))
}

// Read renders interleaved float32 stereo for oto
func (s *SynthOutput) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}

	s.mu.Lock()
	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	left, right := s.left[:frames], s.right[:frames]
	s.synth.Render(left, right)
	s.mu.Unlock()

	return encodeStereo(p, left, right), nil
}

// Close silences the synthesizer and releases the audio player
func (s *SynthOutput) Close() error {
	s.mu.Lock()
	s.synth.NoteOffAll(true)
	s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	return s.player.Close()
}

// encodeStereo interleaves left/right into dst as little-endian float32 and
// returns the bytes written
func encodeStereo(dst []byte, left, right []float32) int {
	n := 0
	for i := range left {
		if n+8 > len(dst) {
			break
		}
		binary.LittleEndian.PutUint32(dst[n:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(dst[n+4:], math.Float32bits(right[i]))
		n += 8
	}
	return n
}
