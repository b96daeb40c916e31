// Package midiio moves notes between exercises and MIDI: Standard MIDI File
// export and live keyboard input.
package midiio

import (
	"errors"
	"fmt"
	"io"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
)

// ErrEmptyExercise is returned when exporting an exercise with no items.
var ErrEmptyExercise = errors.New("exercise has no notes")

// ExportOptions controls how an exercise is rendered to a MIDI file.
type ExportOptions struct {
	Octave          int
	Channel         uint8
	Velocity        uint8
	BPM             float64
	TicksPerQuarter uint16

	// WithTonic prepends the tonic (do) as a reference note followed by a
	// quarter rest.
	WithTonic bool
}

// DefaultExportOptions returns quarter notes at 90 bpm in octave 4.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Octave:          pitch.ReferenceOctave,
		Velocity:        100,
		BPM:             90,
		TicksPerQuarter: 960,
		WithTonic:       true,
	}
}

// ExportExercise writes the target notes of ex as a single-track SMF, one
// quarter note per item.
func ExportExercise(w io.Writer, ex *exercise.Exercise, opts ExportOptions) (int64, error) {
	if ex == nil || ex.Len() == 0 {
		return 0, ErrEmptyExercise
	}
	if opts.Channel > 15 {
		return 0, fmt.Errorf("export exercise: invalid channel %d", opts.Channel)
	}
	if opts.TicksPerQuarter == 0 {
		opts.TicksPerQuarter = DefaultExportOptions().TicksPerQuarter
	}
	if opts.BPM <= 0 {
		opts.BPM = DefaultExportOptions().BPM
	}

	ticks := smf.MetricTicks(opts.TicksPerQuarter)
	quarter := ticks.Ticks4th()

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("solfa dictation in %s", ex.Key)))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(opts.BPM))

	var rest uint32
	if opts.WithTonic {
		key, err := midiKey(pitch.Note{Class: ex.Key, Octave: opts.Octave})
		if err != nil {
			return 0, fmt.Errorf("export exercise: %w", err)
		}
		tr.Add(0, gomidi.NoteOn(opts.Channel, key, opts.Velocity))
		tr.Add(quarter, gomidi.NoteOff(opts.Channel, key))
		rest = quarter
	}

	for i, it := range ex.Items {
		key, err := midiKey(pitch.Note{Class: it.Note, Octave: opts.Octave})
		if err != nil {
			return 0, fmt.Errorf("export exercise: item %d: %w", i, err)
		}
		tr.Add(rest, gomidi.NoteOn(opts.Channel, key, opts.Velocity))
		tr.Add(quarter, gomidi.NoteOff(opts.Channel, key))
		rest = 0
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(tr); err != nil {
		return 0, fmt.Errorf("export exercise: %w", err)
	}
	return s.WriteTo(w)
}

// ReadNotes returns the notes started in an SMF, in file order across tracks.
func ReadNotes(r io.Reader) ([]pitch.Note, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read midi: %w", err)
	}
	var out []pitch.Note
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			if n, _, ok := noteOn(gomidi.Message(ev.Message)); ok {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func midiKey(n pitch.Note) (uint8, error) {
	if !n.Class.Valid() {
		return 0, fmt.Errorf("%w: %q", pitch.ErrUnknownPitchClass, string(n.Class))
	}
	k := n.MIDI()
	if k < 0 || k > 127 {
		return 0, fmt.Errorf("note %s outside midi range", n)
	}
	return uint8(k), nil
}

// noteOn decodes a note-on with non-zero velocity.
func noteOn(msg gomidi.Message) (pitch.Note, uint8, bool) {
	var ch, key, vel uint8
	if !msg.GetNoteOn(&ch, &key, &vel) || vel == 0 {
		return pitch.Note{}, 0, false
	}
	return pitch.NoteFromMIDI(int(key)), vel, true
}
