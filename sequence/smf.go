package sequence

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

type noteKey struct {
	track   int
	channel uint8
	pitch   uint8
}

type pendingNote struct {
	startUS  int64
	velocity uint8
}

// Load reads a Standard MIDI File from disk
func Load(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open midi file: %w", err)
	}
	defer f.Close()

	seq, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// Read parses SMF data into a Sequence. Note-ons are paired with note-offs
// (or velocity-0 note-ons) per track, channel and key, first in first out.
// Notes still open at the end of their track are closed there. Track ids are
// the SMF track indices; note ids are assigned in start order.
func Read(r io.Reader) (seq *Sequence, err error) {
	// gomidi panics on some malformed files (gomidi/midi#20)
	defer func() {
		if rec := recover(); rec != nil {
			seq = nil
			err = fmt.Errorf("parse midi: %v", rec)
		}
	}()

	pending := make(map[noteKey][]pendingNote)
	trackEnd := make(map[int]int64)
	var notes []Note

	closeNote := func(k noteKey, endUS int64) {
		queue := pending[k]
		if len(queue) == 0 {
			return // stray note-off
		}
		p := queue[0]
		if len(queue) == 1 {
			delete(pending, k)
		} else {
			pending[k] = queue[1:]
		}
		notes = append(notes, Note{
			Channel:  k.channel,
			Pitch:    k.pitch,
			Velocity: p.velocity,
			Start:    float64(p.startUS) / 1e6,
			Duration: float64(endUS-p.startUS) / 1e6,
			Track:    k.track,
		})
	}

	tr := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		if ev.AbsMicroSeconds > trackEnd[ev.TrackNo] {
			trackEnd[ev.TrackNo] = ev.AbsMicroSeconds
		}

		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteStart(&ch, &key, &vel):
			k := noteKey{track: ev.TrackNo, channel: ch, pitch: key}
			pending[k] = append(pending[k], pendingNote{startUS: ev.AbsMicroSeconds, velocity: vel})
		case ev.Message.GetNoteEnd(&ch, &key):
			closeNote(noteKey{track: ev.TrackNo, channel: ch, pitch: key}, ev.AbsMicroSeconds)
		}
	})
	if err := tr.Error(); err != nil {
		return nil, fmt.Errorf("parse midi: %w", err)
	}

	// Close dangling notes in a stable order
	keys := make([]noteKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.track != b.track {
			return a.track < b.track
		}
		if a.channel != b.channel {
			return a.channel < b.channel
		}
		return a.pitch < b.pitch
	})
	for _, k := range keys {
		for len(pending[k]) > 0 {
			closeNote(k, trackEnd[k.track])
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		if notes[i].Track != notes[j].Track {
			return notes[i].Track < notes[j].Track
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	for i := range notes {
		notes[i].ID = i
	}

	return New(notes)
}
