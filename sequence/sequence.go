// Package sequence holds the immutable note list a playback session works on.
package sequence

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateID is returned when two notes share an ID
var ErrDuplicateID = errors.New("duplicate note id")

// windowSlack widens the binary-search lower bound so rounding in
// t-maxDuration-tail never drops a note the exact check would keep.
const windowSlack = 1e-6

// Note is a single timed note. Times are seconds from the start of the file.
type Note struct {
	ID       int
	Channel  uint8
	Pitch    uint8
	Velocity uint8
	Start    float64
	Duration float64
	Track    int
}

// End returns Start+Duration
func (n *Note) End() float64 {
	return n.Start + n.Duration
}

// Sequence is a start-sorted, read-only collection of notes
type Sequence struct {
	notes       []*Note
	maxDuration float64
	lastEnd     float64
}

// New copies notes into a Sequence sorted by start time (ties keep input
// order). IDs must be unique.
func New(notes []Note) (*Sequence, error) {
	s := &Sequence{notes: make([]*Note, len(notes))}
	seen := make(map[int]bool, len(notes))
	for i := range notes {
		n := notes[i]
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
		}
		seen[n.ID] = true
		s.notes[i] = &n
	}

	sort.SliceStable(s.notes, func(i, j int) bool {
		return s.notes[i].Start < s.notes[j].Start
	})

	for i, n := range s.notes {
		if i == 0 || n.Duration > s.maxDuration {
			s.maxDuration = n.Duration
		}
		if i == 0 || n.End() > s.lastEnd {
			s.lastEnd = n.End()
		}
	}
	return s, nil
}

// Len returns the number of notes
func (s *Sequence) Len() int {
	return len(s.notes)
}

// Notes returns the sorted notes. Callers must not modify them.
func (s *Sequence) Notes() []*Note {
	return s.notes
}

// FirstStart returns the start of the earliest note, or 0 when empty
func (s *Sequence) FirstStart() float64 {
	if len(s.notes) == 0 {
		return 0
	}
	return s.notes[0].Start
}

// LastEnd returns the latest Start+Duration, or 0 when empty
func (s *Sequence) LastEnd() float64 {
	return s.lastEnd
}

// Window appends to dst every note with Start <= t and End()+tail > t, in
// start order. Only notes that began within maxDuration+tail of t are
// visited, so cost tracks the window size rather than the file size.
func (s *Sequence) Window(dst []*Note, t, tail float64) []*Note {
	hi := sort.Search(len(s.notes), func(i int) bool {
		return s.notes[i].Start > t
	})
	floor := t - s.maxDuration - tail - windowSlack
	lo := sort.Search(hi, func(i int) bool {
		return s.notes[i].Start > floor
	})
	for _, n := range s.notes[lo:hi] {
		if n.Start+n.Duration+tail > t {
			dst = append(dst, n)
		}
	}
	return dst
}

// CountOutside returns how many notes have a pitch outside [low, high]
func (s *Sequence) CountOutside(low, high uint8) int {
	count := 0
	for _, n := range s.notes {
		if n.Pitch < low || n.Pitch > high {
			count++
		}
	}
	return count
}

// Tracks returns the number of distinct track ids
func (s *Sequence) Tracks() int {
	tracks := make(map[int]bool)
	for _, n := range s.notes {
		tracks[n.Track] = true
	}
	return len(tracks)
}
