package midiio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
)

func testExercise(t *testing.T, key pitch.PitchClass, degrees ...pitch.Degree) *exercise.Exercise {
	t.Helper()
	ex, err := exercise.Generate(exercise.DefaultConfig(), key, len(degrees), exercise.NewFixedSource(degrees...))
	require.NoError(t, err)
	return ex
}

func noteNames(notes []pitch.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.String()
	}
	return out
}

func TestExportExercise_RoundTrip(t *testing.T) {
	ex := testExercise(t, pitch.G, pitch.Do, pitch.Mi, pitch.Sol, pitch.Si)

	var buf bytes.Buffer
	n, err := ExportExercise(&buf, ex, DefaultExportOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	notes, err := ReadNotes(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"G4", "G4", "B4", "D4", "F#4"}, noteNames(notes))
}

func TestExportExercise_WithoutTonic(t *testing.T) {
	ex := testExercise(t, pitch.C, pitch.La, pitch.Re)
	opts := DefaultExportOptions()
	opts.WithTonic = false
	opts.Octave = 5

	var buf bytes.Buffer
	_, err := ExportExercise(&buf, ex, opts)
	require.NoError(t, err)

	notes, err := ReadNotes(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"A5", "D5"}, noteNames(notes))
}

func TestExportExercise_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := ExportExercise(&buf, &exercise.Exercise{}, DefaultExportOptions())
	assert.ErrorIs(t, err, ErrEmptyExercise)

	ex := testExercise(t, pitch.C, pitch.Do)
	opts := DefaultExportOptions()
	opts.Channel = 16
	_, err = ExportExercise(&buf, ex, opts)
	assert.Error(t, err)

	opts = DefaultExportOptions()
	opts.Octave = 11
	_, err = ExportExercise(&buf, ex, opts)
	assert.Error(t, err)
}

func TestNoteOn(t *testing.T) {
	n, vel, ok := noteOn(gomidi.NoteOn(0, 69, 90))
	require.True(t, ok)
	assert.Equal(t, "A4", n.String())
	assert.Equal(t, uint8(90), vel)

	_, _, ok = noteOn(gomidi.NoteOn(0, 60, 0))
	assert.False(t, ok, "zero velocity is a note-off")

	_, _, ok = noteOn(gomidi.NoteOff(0, 60))
	assert.False(t, ok)
}
