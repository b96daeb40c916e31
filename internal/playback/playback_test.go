package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/solfa/internal/pitch"
)

func TestComputeParams_Rate(t *testing.T) {
	tests := []struct {
		note string
		want float64
	}{
		{"C4", 1},
		{"C5", 2},
		{"C3", 0.5},
		{"G4", 1.498307},
	}
	for _, tt := range tests {
		n, err := pitch.ParseNote(tt.note)
		require.NoError(t, err)
		p, err := ComputeParams(n, ReferenceNote, DefaultEnvelope())
		require.NoError(t, err)
		assert.InDelta(t, tt.want, p.PlaybackRate, 1e-6, tt.note)
		assert.InDelta(t, 261.6256, p.ReferenceFrequency, 1e-3)
	}
}

func TestComputeParams_BadNote(t *testing.T) {
	_, err := ComputeParams(pitch.Note{Class: "H", Octave: 4}, ReferenceNote, DefaultEnvelope())
	assert.ErrorIs(t, err, pitch.ErrUnknownPitchClass)
}

func TestEnvelope(t *testing.T) {
	env := DefaultEnvelope()
	assert.Equal(t, 2.5, env.GainAt(0))
	assert.InDelta(t, 0.001, env.GainAt(3*time.Second), 1e-12)
	assert.Equal(t, 0.001, env.GainAt(4*time.Second), "holds after decay")

	mid := env.GainAt(1500 * time.Millisecond)
	assert.InDelta(t, 0.05, mid, 1e-9) // geometric mean of 2.5 and 0.001

	prev := env.GainAt(0)
	for ms := 100; ms <= 3000; ms += 100 {
		g := env.GainAt(time.Duration(ms) * time.Millisecond)
		assert.Less(t, g, prev)
		prev = g
	}
}

func TestSampler_IgnoresUntilReady(t *testing.T) {
	var voiced []Params
	s := NewSampler(DefaultEnvelope(), SinkFunc(func(p Params) { voiced = append(voiced, p) }))
	a4 := pitch.Note{Class: pitch.A, Octave: 4}

	_, ok := s.Play(a4)
	assert.False(t, ok)

	s.Activate()
	_, ok = s.Play(a4)
	assert.False(t, ok, "sample not loaded yet")

	s.MarkReady(Sample{Name: "piano", Reference: ReferenceNote})
	require.True(t, s.Ready())
	p, ok := s.Play(a4)
	require.True(t, ok)
	assert.Equal(t, 440.0, p.TargetFrequency)
	assert.Len(t, voiced, 1)
}

func TestSampler_NeedsActivation(t *testing.T) {
	s := NewSampler(DefaultEnvelope(), nil)
	s.MarkReady(Sample{Reference: ReferenceNote})
	assert.False(t, s.Ready())
	s.Activate()
	s.Activate()
	assert.True(t, s.Ready())
	_, ok := s.Play(pitch.Note{Class: pitch.C, Octave: 3})
	assert.True(t, ok)
}
