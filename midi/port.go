package midi

import (
	"fmt"
	"strings"
	"time"

	"go-pianoview/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// CoreMIDI can hang while listing ports
const portListTimeout = 3 * time.Second

// PortOutput sends note signals to a MIDI output port
type PortOutput struct {
	name string
	port drivers.Out
	send func(msg gomidi.Message) error
}

// OutPorts lists output port names. It gives up after timeout.
func OutPorts(timeout time.Duration) ([]string, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		names := make([]string, len(outs))
		for i, p := range outs {
			names[i] = p.String()
		}
		return names, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("listing midi ports timed out after %s", timeout)
	}
}

// matchPort picks a port by exact name, then by case-insensitive substring.
// An empty want takes the first port.
func matchPort(names []string, want string) int {
	if len(names) == 0 {
		return -1
	}
	if want == "" {
		return 0
	}
	for i, n := range names {
		if n == want {
			return i
		}
	}
	lw := strings.ToLower(want)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), lw) {
			return i
		}
	}
	return -1
}

// OpenPort opens the output port matching name (first port when empty)
func OpenPort(name string) (*PortOutput, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	var outs []drivers.Out
	select {
	case outs = <-ch:
	case <-time.After(portListTimeout):
		return nil, fmt.Errorf("open %q: listing midi ports timed out", name)
	}

	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	idx := matchPort(names, name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
	}

	send, err := gomidi.SendTo(outs[idx])
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", names[idx], err)
	}
	debug.Log("out", "opened port %s", names[idx])
	return &PortOutput{name: names[idx], port: outs[idx], send: send}, nil
}

func (o *PortOutput) Name() string {
	return o.name
}

func (o *PortOutput) NoteOn(channel, key, velocity uint8) {
	o.sendMsg(gomidi.NoteOn(channel, key, velocity))
}

func (o *PortOutput) NoteOff(channel, key uint8) {
	o.sendMsg(gomidi.NoteOff(channel, key))
}

// sendMsg never fails from the caller's point of view; errors are logged
func (o *PortOutput) sendMsg(msg gomidi.Message) {
	if err := o.send(msg); err != nil {
		debug.LogEvery(50, "out", "send to %s failed: %v", o.name, err)
	}
}

// Close sends All Notes Off on every channel, then closes the port
func (o *PortOutput) Close() error {
	for ch := uint8(0); ch < 16; ch++ {
		o.sendMsg(gomidi.ControlChange(ch, 123, 0))
	}
	if o.port == nil {
		return nil
	}
	return o.port.Close()
}
