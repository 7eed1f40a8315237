// Package player turns transport time into note-on/note-off signals and the
// per-key state the keyboard and note views draw from.
//
// A Player is driven by a single goroutine, once per frame. It owns its clock
// and the set of notes it has started; nothing else may send to its Output
// while a session is running.
package player

import (
	"errors"
	"time"

	"go-pianoview/clock"
	"go-pianoview/debug"
	"go-pianoview/sequence"
)

const (
	// DefaultLeadIn is the pre-roll before the first note, in seconds
	DefaultLeadIn = 3.0

	// PostRoll keeps a note selected this long after its end so the tick
	// that first sees it finished can still send its note-off
	PostRoll = 0.5

	// KeyCount is the number of keys in a Snapshot (piano A0..C8)
	KeyCount = 88

	LowestKey  uint8 = 21
	HighestKey uint8 = LowestKey + KeyCount - 1
)

var (
	ErrNoSequence = errors.New("player: no sequence")
	ErrNoOutput   = errors.New("player: no output")
)

// Output receives note signals. Implementations must not block and handle
// their own failures.
type Output interface {
	NoteOn(channel, key, velocity uint8)
	NoteOff(channel, key uint8)
}

// KeyState is one key of a Snapshot. Track is only meaningful when On.
type KeyState struct {
	On    bool
	Track int
}

// Snapshot is the per-key state for one tick, index 0 = LowestKey
type Snapshot [KeyCount]KeyState

// KeyIndex maps a MIDI pitch to its Snapshot index
func KeyIndex(pitch uint8) (int, bool) {
	if pitch < LowestKey || pitch > HighestKey {
		return 0, false
	}
	return int(pitch - LowestKey), true
}

// Phase is the player's lifecycle state
type Phase int

const (
	// Inactive: constructed, not started. Updates are silent and side-effect free.
	Inactive Phase = iota
	// Active: started; the clock may be running or paused.
	Active
)

func (p Phase) String() string {
	switch p {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	}
	return "unknown"
}

// Option configures a Player
type Option func(*Player)

// WithLeadIn sets the pre-roll in seconds. Non-positive values keep the default.
func WithLeadIn(seconds float64) Option {
	return func(p *Player) {
		if seconds > 0 {
			p.leadIn = seconds
		}
	}
}

// WithClock supplies the transport clock (tests inject a fake time source)
func WithClock(c *clock.Clock) Option {
	return func(p *Player) {
		if c != nil {
			p.clock = c
		}
	}
}

// Player is the playback/transport engine for one loaded sequence
type Player struct {
	seq   *sequence.Sequence
	out   Output
	clock *clock.Clock
	phase Phase

	leadIn         float64
	firstNoteStart float64
	lastNoteEnd    float64

	// derived every tick
	time       float64
	percentage float64

	active     map[int]*sequence.Note
	window     []*sequence.Note // scratch buffer reused across ticks
	outOfRange int
}

// New creates an inactive player for seq that will signal out
func New(seq *sequence.Sequence, out Output, opts ...Option) (*Player, error) {
	if seq == nil {
		return nil, ErrNoSequence
	}
	if out == nil {
		return nil, ErrNoOutput
	}

	p := &Player{
		seq:            seq,
		out:            out,
		clock:          clock.New(),
		phase:          Inactive,
		leadIn:         DefaultLeadIn,
		firstNoteStart: seq.FirstStart(),
		lastNoteEnd:    seq.LastEnd(),
		active:         make(map[int]*sequence.Note),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Warm-up: establish time/percentage for the not-yet-started state.
	// Nothing can sound before first_note_start, so no note pass is needed.
	p.derive()

	if n := seq.CountOutside(LowestKey, HighestKey); n > 0 {
		p.outOfRange = n
		debug.Log("warn", "sequence wider than %d keys: %d notes outside %d-%d are not drawn",
			KeyCount, n, LowestKey, HighestKey)
	}

	return p, nil
}

// Start makes the player active and starts the clock
func (p *Player) Start() {
	p.phase = Active
	p.clock.Start()
	debug.Log("player", "start notes=%d first=%.3f last=%.3f", p.seq.Len(), p.firstNoteStart, p.lastNoteEnd)
}

// Update advances the clock and returns the key state for the new position.
// Notes entering their sounding range are started; notes that have passed
// their end but are still within PostRoll are stopped. While paused the
// snapshot is still computed but nothing is sent.
func (p *Player) Update() Snapshot {
	var snap Snapshot
	if p.phase == Inactive {
		return snap
	}

	p.clock.Update()
	p.derive()
	emit := p.clock.Running()

	p.window = p.seq.Window(p.window[:0], p.time, PostRoll)
	for _, n := range p.window {
		_, sounding := p.active[n.ID]
		if n.Start+n.Duration >= p.time {
			if i, ok := KeyIndex(n.Pitch); ok {
				snap[i] = KeyState{On: true, Track: n.Track}
			}
			if !sounding && emit {
				p.active[n.ID] = n
				p.out.NoteOn(n.Channel, n.Pitch, n.Velocity)
			}
		} else if sounding {
			delete(p.active, n.ID)
			p.out.NoteOff(n.Channel, n.Pitch)
		}
	}

	return snap
}

// PauseResume stops every sounding note, then toggles the clock
func (p *Player) PauseResume() {
	p.clear()
	p.clock.PauseResume()
	debug.Log("player", "pause/resume running=%v elapsed=%s", p.clock.Running(), p.clock.Elapsed())
}

// SetTime seeks to t seconds of elapsed transport time (lead-in included)
// and stops every sounding note. The next Update recomputes from scratch.
func (p *Player) SetTime(t float64) {
	p.clock.SetTime(time.Duration(t * float64(time.Second)))
	p.clear()
	debug.Log("player", "seek elapsed=%.3fs", t)
}

// SeekFraction seeks to a fraction of Duration, as a progress bar click does
func (p *Player) SeekFraction(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	p.SetTime(f * p.Duration())
}

// Close stops every sounding note. Call on teardown.
func (p *Player) Close() {
	p.clear()
}

// clear sends note-off for every active note and forgets them
func (p *Player) clear() {
	for id, n := range p.active {
		p.out.NoteOff(n.Channel, n.Pitch)
		delete(p.active, id)
	}
}

func (p *Player) derive() {
	raw := p.clock.Elapsed().Seconds()
	p.percentage = raw / (p.lastNoteEnd + p.leadIn)
	p.time = raw + p.firstNoteStart - p.leadIn
}

// Time returns the playback position in sequence seconds
func (p *Player) Time() float64 { return p.time }

// Percentage returns elapsed/(last note end + lead-in). Not clamped.
func (p *Player) Percentage() float64 { return p.percentage }

// Duration returns the full transport length in seconds (lead-in included)
func (p *Player) Duration() float64 { return p.lastNoteEnd + p.leadIn }

// Elapsed returns the clock's elapsed time
func (p *Player) Elapsed() time.Duration { return p.clock.Elapsed() }

func (p *Player) Phase() Phase { return p.phase }

// Paused reports an active player whose clock is frozen
func (p *Player) Paused() bool { return p.phase == Active && !p.clock.Running() }

// ActiveCount returns how many notes are currently sounding
func (p *Player) ActiveCount() int { return len(p.active) }

// IsActive reports whether note id is currently sounding
func (p *Player) IsActive(id int) bool {
	_, ok := p.active[id]
	return ok
}

func (p *Player) Sequence() *sequence.Sequence { return p.seq }

func (p *Player) LeadIn() float64 { return p.leadIn }

func (p *Player) FirstNoteStart() float64 { return p.firstNoteStart }

func (p *Player) LastNoteEnd() float64 { return p.lastNoteEnd }

// OutOfRange returns how many notes fall outside the drawable key range.
// They still sound.
func (p *Player) OutOfRange() int { return p.outOfRange }
