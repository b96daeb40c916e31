package midiio

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/abhisek/solfa/internal/pitch"
)

// NoteFunc receives notes struck on a MIDI keyboard.
type NoteFunc func(note pitch.Note, velocity uint8)

// Listen opens the named input port and calls fn for every note-on. The
// returned stop function closes the listener. A driver must be registered
// by importing one (e.g. rtmididrv) in the main package.
func Listen(portName string, fn NoteFunc) (stop func(), err error) {
	in, err := gomidi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("find midi input %q: %w", portName, err)
	}

	stop, err = gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		if n, vel, ok := noteOn(msg); ok {
			fn(n, vel)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", portName, err)
	}
	return stop, nil
}

// InPortNames lists the MIDI inputs visible to the registered driver.
func InPortNames() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Close releases the MIDI driver.
func Close() {
	gomidi.CloseDriver()
}
