package player

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"go-pianoview/sequence"
)

// Each note gets its own pitch so per-key alternation equals per-note
// alternation.
func propertyNotes(starts, durs []float64) []sequence.Note {
	n := len(starts)
	if len(durs) < n {
		n = len(durs)
	}
	if n > KeyCount {
		n = KeyCount
	}
	notes := make([]sequence.Note, n)
	for i := 0; i < n; i++ {
		notes[i] = sequence.Note{
			ID:       i,
			Pitch:    LowestKey + uint8(i),
			Velocity: 100,
			Start:    starts[i],
			Duration: durs[i],
		}
	}
	return notes
}

// runProgram interprets ops as a random session of ticks, seeks and pauses.
// It reports false as soon as an on/off alternation or bookkeeping rule breaks.
func runProgram(t *testing.T, notes []sequence.Note, ops []int) bool {
	h := newHarness(t, notes)
	p := h.player
	p.Start()

	sounding := make(map[uint8]bool)
	seen := 0
	check := func() bool {
		for _, c := range h.out.calls[seen:] {
			if c.on == sounding[c.key] {
				return false // double on or double off
			}
			sounding[c.key] = c.on
		}
		seen = len(h.out.calls)
		count := 0
		for _, on := range sounding {
			if on {
				count++
			}
		}
		return count == p.ActiveCount()
	}

	for _, op := range ops {
		switch op % 5 {
		case 0, 1:
			h.advance(float64(op%7) * 0.05)
			p.Update()
		case 2:
			h.advance(float64(op%40) * 0.1)
			p.Update()
		case 3:
			p.SetTime(float64(op%300) * 0.1)
			if p.ActiveCount() != 0 {
				return false
			}
		case 4:
			p.PauseResume()
			if p.ActiveCount() != 0 {
				return false
			}
		}
		if !check() {
			return false
		}
	}

	p.Close()
	if !check() {
		return false
	}
	return h.out.ons() == h.out.offs()
}

func TestNoteSignalsAlternateProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("note-on and note-off alternate per note and balance on close", prop.ForAll(
		func(starts, durs []float64, ops []int) bool {
			return runProgram(t, propertyNotes(starts, durs), ops)
		},
		gen.SliceOf(gen.Float64Range(0, 20)),
		gen.SliceOf(gen.Float64Range(-0.5, 4)),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.TestingRun(t)
}

func TestInactiveNeverSignalsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("no Start means no output and silent snapshots", prop.ForAll(
		func(starts, durs []float64, steps []float64) bool {
			h := newHarness(t, propertyNotes(starts, durs))
			for _, s := range steps {
				h.advance(s)
				if h.player.Update() != (Snapshot{}) {
					return false
				}
			}
			return len(h.out.calls) == 0
		},
		gen.SliceOf(gen.Float64Range(0, 10)),
		gen.SliceOf(gen.Float64Range(0, 4)),
		gen.SliceOf(gen.Float64Range(0, 2)),
	))

	properties.TestingRun(t)
}

// Any note fully inside its sounding range at a tick is drawn and active.
func TestSoundingNotesAreDrawnProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("notes covering the play line are on in the snapshot", prop.ForAll(
		func(starts, durs []float64, at float64) bool {
			notes := propertyNotes(starts, durs)
			h := newHarness(t, notes)
			p := h.player
			p.Start()
			p.SetTime(at + p.LeadIn() - p.FirstNoteStart())
			snap := p.Update()
			for _, n := range notes {
				if n.Start <= p.Time() && n.Start+n.Duration >= p.Time() {
					i, _ := KeyIndex(n.Pitch)
					if !snap[i].On || !p.IsActive(n.ID) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 10)),
		gen.SliceOf(gen.Float64Range(0, 4)),
		gen.Float64Range(0, 15),
	))

	properties.TestingRun(t)
}
