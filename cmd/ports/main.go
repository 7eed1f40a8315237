package main

import (
	"fmt"
	"os"
	"time"

	"go-pianoview/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "test":
		name := ""
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		testPort(name)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI output ports")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - List all MIDI output ports")
	fmt.Println("  test [name]  - Play a C major arpeggio on a port")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.OutPorts(3 * time.Second)
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Println("  (none)")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func testPort(name string) {
	out, err := midi.OpenPort(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Printf("Playing on %s\n", out.Name())
	for _, key := range []uint8{60, 64, 67, 72} {
		out.NoteOn(0, key, 100)
		time.Sleep(250 * time.Millisecond)
		out.NoteOff(0, key)
	}
}
