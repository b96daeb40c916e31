package playback

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/solfa/internal/pitch"
)

// ReferenceNote is the pitch of the bundled piano sample.
var ReferenceNote = pitch.Note{Class: pitch.C, Octave: 4}

// Envelope is a one-shot exponential gain decay.
type Envelope struct {
	StartGain float64
	EndGain   float64
	Decay     time.Duration
}

// DefaultEnvelope returns the piano envelope: 2.5 decaying to 0.001 over 3s.
func DefaultEnvelope() Envelope {
	return Envelope{
		StartGain: 2.5,
		EndGain:   0.001,
		Decay:     3 * time.Second,
	}
}

// GainAt returns the gain t after note start. Once the decay has elapsed
// the gain holds at EndGain.
func (e Envelope) GainAt(t time.Duration) float64 {
	switch {
	case t <= 0:
		return e.StartGain
	case t >= e.Decay:
		return e.EndGain
	}
	frac := float64(t) / float64(e.Decay)
	return e.StartGain * math.Pow(e.EndGain/e.StartGain, frac)
}

// Params is everything an audio backend needs to voice one key press.
type Params struct {
	Note               pitch.Note
	TargetFrequency    float64
	ReferenceFrequency float64
	PlaybackRate       float64
	Envelope           Envelope
}

// ComputeParams derives playback parameters for note against a sample
// recorded at reference.
func ComputeParams(note, reference pitch.Note, env Envelope) (Params, error) {
	target, err := note.Frequency()
	if err != nil {
		return Params{}, fmt.Errorf("target frequency: %w", err)
	}
	ref, err := reference.Frequency()
	if err != nil {
		return Params{}, fmt.Errorf("reference frequency: %w", err)
	}
	return Params{
		Note:               note,
		TargetFrequency:    target,
		ReferenceFrequency: ref,
		PlaybackRate:       target / ref,
		Envelope:           env,
	}, nil
}
