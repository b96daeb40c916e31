package exercise

import (
	"fmt"

	"github.com/abhisek/solfa/internal/pitch"
)

// Phase is the lifecycle phase of an exercise.
type Phase int

const (
	PhaseIdle       Phase = iota // No exercise generated yet
	PhaseInProgress              // Waiting for the next note
	PhaseCompleted               // Every note played correctly
	PhaseFailed                  // A wrong note ended the exercise
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Status is the per-item result.
type Status string

const (
	StatusPending Status = "pending"
	StatusCorrect Status = "correct"
	StatusWrong   Status = "wrong"
)

// Item is one target note of an exercise.
type Item struct {
	Degree pitch.Degree
	Note   pitch.PitchClass
	Status Status
}

// Outcome describes the effect of a single Submit call.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // Exercise not in progress; nothing changed
	OutcomeCorrect                  // Matched; more notes remain
	OutcomeCompleted                // Matched the final note
	OutcomeWrong                    // Mismatch; exercise failed
	OutcomeInvalid                  // Unknown pitch class; nothing changed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCorrect:
		return "correct"
	case OutcomeCompleted:
		return "completed"
	case OutcomeWrong:
		return "wrong"
	case OutcomeInvalid:
		return "invalid"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Exercise holds a generated dictation sequence and progress through it.
// The zero value is an idle exercise.
type Exercise struct {
	Key    pitch.PitchClass
	Items  []Item
	Cursor int
	Phase  Phase
}

// Generate builds a new exercise of length degrees drawn from src, resolved
// against key. The length must already be within cfg's range.
func Generate(cfg Config, key pitch.PitchClass, length int, src DegreeSource) (*Exercise, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("generate exercise: %w: %q", pitch.ErrUnknownPitchClass, string(key))
	}
	if err := cfg.Validate(length); err != nil {
		return nil, fmt.Errorf("generate exercise: %w", err)
	}

	items := make([]Item, length)
	for i := range items {
		d := src.NextDegree()
		note, err := pitch.ResolveDegree(key, d)
		if err != nil {
			return nil, fmt.Errorf("generate exercise: item %d: %w", i, err)
		}
		items[i] = Item{Degree: d, Note: note, Status: StatusPending}
	}

	return &Exercise{
		Key:    key,
		Items:  items,
		Cursor: 0,
		Phase:  PhaseInProgress,
	}, nil
}

// Submit compares pc against the item at the cursor. It is a no-op unless
// the exercise is in progress, and an unknown pitch class is rejected with
// OutcomeInvalid before any item is touched.
func (e *Exercise) Submit(pc pitch.PitchClass) Outcome {
	if !pc.Valid() {
		return OutcomeInvalid
	}
	if e.Phase != PhaseInProgress || e.Cursor >= len(e.Items) {
		return OutcomeIgnored
	}

	target := &e.Items[e.Cursor]
	if pc != target.Note {
		target.Status = StatusWrong
		e.Phase = PhaseFailed
		return OutcomeWrong
	}

	target.Status = StatusCorrect
	e.Cursor++
	if e.Cursor == len(e.Items) {
		e.Phase = PhaseCompleted
		return OutcomeCompleted
	}
	return OutcomeCorrect
}

// Reset clears all results and restarts the same note sequence.
func (e *Exercise) Reset() {
	if e.Phase == PhaseIdle {
		return
	}
	for i := range e.Items {
		e.Items[i].Status = StatusPending
	}
	e.Cursor = 0
	e.Phase = PhaseInProgress
}

// Finished reports whether the exercise reached a terminal phase.
func (e *Exercise) Finished() bool {
	return e.Phase == PhaseCompleted || e.Phase == PhaseFailed
}

// Len returns the number of items.
func (e *Exercise) Len() int {
	return len(e.Items)
}

// Current returns the item at the cursor, or nil when none is expected.
func (e *Exercise) Current() *Item {
	if e.Phase != PhaseInProgress || e.Cursor >= len(e.Items) {
		return nil
	}
	return &e.Items[e.Cursor]
}

// CorrectCount returns the number of items marked correct.
func (e *Exercise) CorrectCount() int {
	n := 0
	for _, it := range e.Items {
		if it.Status == StatusCorrect {
			n++
		}
	}
	return n
}

// Notes returns the target pitch classes in order.
func (e *Exercise) Notes() []pitch.PitchClass {
	out := make([]pitch.PitchClass, len(e.Items))
	for i, it := range e.Items {
		out[i] = it.Note
	}
	return out
}

// Degrees returns the drawn degrees in order.
func (e *Exercise) Degrees() []pitch.Degree {
	out := make([]pitch.Degree, len(e.Items))
	for i, it := range e.Items {
		out[i] = it.Degree
	}
	return out
}
