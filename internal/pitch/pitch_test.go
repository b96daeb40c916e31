package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyOf_A4(t *testing.T) {
	f, err := FrequencyOf(A, 4)
	require.NoError(t, err)
	assert.Equal(t, 440.0, f)
}

func TestFrequencyOf_KnownValues(t *testing.T) {
	tests := []struct {
		pc     PitchClass
		octave int
		want   float64
	}{
		{C, 4, 261.6256},
		{A, 3, 220},
		{E, 4, 329.6276},
		{B, 4, 493.8833},
		{C, 0, 16.3516},
	}
	for _, tt := range tests {
		got, err := FrequencyOf(tt.pc, tt.octave)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 0.001, "%s%d", tt.pc, tt.octave)
	}
}

func TestFrequencyOf_OctaveDoubles(t *testing.T) {
	for _, pc := range AllPitchClasses() {
		for o := 0; o < 8; o++ {
			lo, err := FrequencyOf(pc, o)
			require.NoError(t, err)
			hi, err := FrequencyOf(pc, o+1)
			require.NoError(t, err)
			assert.InEpsilon(t, 2*lo, hi, 1e-12, "%s%d", pc, o)
		}
	}
}

func TestFrequencyOf_MonotonicInSemitones(t *testing.T) {
	prev := 0.0
	for o := 0; o <= 8; o++ {
		for _, pc := range AllPitchClasses() {
			f, err := FrequencyOf(pc, o)
			require.NoError(t, err)
			if f <= prev {
				t.Fatalf("%s%d = %f not above previous %f", pc, o, f, prev)
			}
			prev = f
		}
	}
}

func TestFrequencyOf_UnknownPitchClass(t *testing.T) {
	_, err := FrequencyOf("H", 4)
	assert.True(t, errors.Is(err, ErrUnknownPitchClass))
}

func TestParsePitchClass(t *testing.T) {
	tests := []struct {
		in      string
		want    PitchClass
		wantErr bool
	}{
		{"C", C, false},
		{"c#", CSharp, false},
		{" g ", G, false},
		{"A#", ASharp, false},
		{"Db", "", true},
		{"", "", true},
		{"X", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePitchClass(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownPitchClass)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in      string
		want    Note
		wantErr error
	}{
		{"C4", Note{C, 4}, nil},
		{"f#3", Note{FSharp, 3}, nil},
		{"A-1", Note{A, -1}, nil},
		{"B10", Note{B, 10}, nil},
		{"C", Note{}, ErrInvalidNote},
		{"4", Note{}, ErrInvalidNote},
		{"H4", Note{}, ErrUnknownPitchClass},
		{"C4x", Note{}, ErrInvalidNote},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNote(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoteMIDIRoundTrip(t *testing.T) {
	c4 := Note{C, 4}
	assert.Equal(t, 60, c4.MIDI())
	assert.Equal(t, 69, Note{A, 4}.MIDI())
	assert.Equal(t, 0, Note{C, -1}.MIDI())

	for n := 0; n < 128; n++ {
		assert.Equal(t, n, NoteFromMIDI(n).MIDI())
	}
}

func TestNoteTranspose(t *testing.T) {
	assert.Equal(t, Note{C, 5}, Note{B, 4}.Transpose(1))
	assert.Equal(t, Note{B, 3}, Note{C, 4}.Transpose(-1))
	assert.Equal(t, Note{G, 4}, Note{C, 4}.Transpose(7))
}

func TestNoteFrequencyMatchesMIDIFormula(t *testing.T) {
	for n := 12; n < 120; n++ {
		note := NoteFromMIDI(n)
		got, err := note.Frequency()
		require.NoError(t, err)
		want := 440 * math.Pow(2, float64(n-69)/12)
		assert.InEpsilon(t, want, got, 1e-9, note.String())
	}
}

func TestIsAccidental(t *testing.T) {
	var black int
	for _, pc := range AllPitchClasses() {
		if pc.IsAccidental() {
			black++
		}
	}
	assert.Equal(t, 5, black)
	assert.False(t, E.IsAccidental())
	assert.True(t, GSharp.IsAccidental())
}
