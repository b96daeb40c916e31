package playback

import (
	"sync"

	"github.com/abhisek/solfa/internal/pitch"
)

// Sink receives computed voices. Rendering them is up to the backend.
type Sink interface {
	Voice(p Params)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Params)

func (f SinkFunc) Voice(p Params) { f(p) }

// Sample describes a decoded reference recording.
type Sample struct {
	Name      string
	Reference pitch.Note
}

// Sampler gates playback on the sample being loaded and the output device
// being active. Requests made before both are true are dropped.
type Sampler struct {
	mu       sync.Mutex
	sample   *Sample
	active   bool
	envelope Envelope
	sink     Sink
}

// NewSampler creates a Sampler voicing into sink (nil discards).
func NewSampler(env Envelope, sink Sink) *Sampler {
	return &Sampler{envelope: env, sink: sink}
}

// MarkReady records that the sample finished loading.
func (s *Sampler) MarkReady(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sample = &sample
}

// Activate resumes the output device. It is idempotent.
func (s *Sampler) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
}

// Ready reports whether a Play call would produce sound.
func (s *Sampler) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sample != nil && s.active
}

// Play computes and emits the voice for note. It returns false, without
// error, when the sampler is not ready.
func (s *Sampler) Play(note pitch.Note) (Params, bool) {
	s.mu.Lock()
	sample, active, sink := s.sample, s.active, s.sink
	s.mu.Unlock()

	if sample == nil || !active {
		return Params{}, false
	}
	p, err := ComputeParams(note, sample.Reference, s.envelope)
	if err != nil {
		return Params{}, false
	}
	if sink != nil {
		sink.Voice(p)
	}
	return p, true
}
