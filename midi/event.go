package midi

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is one note signal as seen by a Recorder
type Event struct {
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Recorder is a Sink that keeps every event in order. Not safe for
// concurrent use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) NoteOn(channel, key, velocity uint8) {
	r.Events = append(r.Events, Event{Type: NoteOn, Channel: channel, Note: key, Velocity: velocity})
}

func (r *Recorder) NoteOff(channel, key uint8) {
	r.Events = append(r.Events, Event{Type: NoteOff, Channel: channel, Note: key})
}

func (r *Recorder) Close() error { return nil }

// Sounding returns the (channel, note) pairs that are on after replaying
// the recorded events
func (r *Recorder) Sounding() map[[2]uint8]bool {
	on := make(map[[2]uint8]bool)
	for _, e := range r.Events {
		k := [2]uint8{e.Channel, e.Note}
		if e.Type == NoteOn {
			on[k] = true
		} else {
			delete(on, k)
		}
	}
	return on
}
