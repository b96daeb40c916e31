package piano

import (
	"fmt"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
)

// Recorder observes controller activity. Calls happen on the input path
// between key presses, so implementations should be fast.
type Recorder interface {
	ExerciseStarted(ex *exercise.Exercise)
	NotePlayed(ex *exercise.Exercise, position int, played pitch.PitchClass, outcome exercise.Outcome)
	ExerciseFinished(ex *exercise.Exercise)
	SettingsChanged(key pitch.PitchClass, length int)
}

// PressResult reports what a single key press did.
type PressResult struct {
	Note     pitch.Note
	Played   bool
	Voice    playback.Params
	Outcome  exercise.Outcome
	Position int
}

// Options configures a Controller.
type Options struct {
	Config   exercise.Config
	Key      pitch.PitchClass
	Length   int
	Source   exercise.DegreeSource
	Sampler  *playback.Sampler
	Recorder Recorder
}

// Controller owns the piano's mutable state: the selected key, the exercise
// length and the active exercise. It is not safe for concurrent use.
type Controller struct {
	cfg      exercise.Config
	key      pitch.PitchClass
	length   int
	source   exercise.DegreeSource
	sampler  *playback.Sampler
	recorder Recorder
	ex       *exercise.Exercise
}

// NewController creates a controller and generates its first exercise.
// Zero-valued options fall back to C, the default length and a random source.
func NewController(opts Options) (*Controller, error) {
	cfg := opts.Config
	if cfg.MaxLength == 0 {
		cfg = exercise.DefaultConfig()
	}
	key := opts.Key
	if key == "" {
		key = pitch.C
	}
	if !key.Valid() {
		return nil, fmt.Errorf("new controller: %w: %q", pitch.ErrUnknownPitchClass, string(key))
	}
	length := opts.Length
	if length == 0 {
		length = cfg.DefaultLength
	}
	if err := cfg.Validate(length); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	src := opts.Source
	if src == nil {
		src = exercise.NewRandomSource(nil)
	}

	c := &Controller{
		cfg:      cfg,
		key:      key,
		length:   length,
		source:   src,
		sampler:  opts.Sampler,
		recorder: opts.Recorder,
	}
	if err := c.NewExercise(); err != nil {
		return nil, err
	}
	return c, nil
}

// Key returns the current tonic.
func (c *Controller) Key() pitch.PitchClass { return c.key }

// Length returns the current exercise length.
func (c *Controller) Length() int { return c.length }

// Config returns the length bounds.
func (c *Controller) Config() exercise.Config { return c.cfg }

// Exercise returns the active exercise.
func (c *Controller) Exercise() *exercise.Exercise { return c.ex }

// NewExercise replaces the active exercise with a freshly generated one.
func (c *Controller) NewExercise() error {
	ex, err := exercise.Generate(c.cfg, c.key, c.length, c.source)
	if err != nil {
		return err
	}
	c.ex = ex
	if c.recorder != nil {
		c.recorder.ExerciseStarted(ex)
	}
	return nil
}

// SetKey changes the tonic and regenerates the exercise.
func (c *Controller) SetKey(key pitch.PitchClass) error {
	if !key.Valid() {
		return fmt.Errorf("set key: %w: %q", pitch.ErrUnknownPitchClass, string(key))
	}
	if key == c.key {
		return nil
	}
	c.key = key
	c.settingsChanged()
	return c.NewExercise()
}

// Configure sets both the tonic and the length, then regenerates the
// exercise once. Both values are validated before any state changes.
func (c *Controller) Configure(key pitch.PitchClass, length int) error {
	if !key.Valid() {
		return fmt.Errorf("configure: %w: %q", pitch.ErrUnknownPitchClass, string(key))
	}
	if err := c.cfg.Validate(length); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	if key != c.key || length != c.length {
		c.key = key
		c.length = length
		c.settingsChanged()
	}
	return c.NewExercise()
}

// ShiftKey moves the tonic by the given number of semitones.
func (c *Controller) ShiftKey(semitones int) error {
	n := pitch.Note{Class: c.key, Octave: pitch.ReferenceOctave}.Transpose(semitones)
	return c.SetKey(n.Class)
}

// ChangeLength adjusts the exercise length by delta. Changes leaving the
// configured range are rejected and leave all state untouched.
func (c *Controller) ChangeLength(delta int) error {
	next := c.length + delta
	if err := c.cfg.Validate(next); err != nil {
		return err
	}
	if next == c.length {
		return nil
	}
	c.length = next
	c.settingsChanged()
	return c.NewExercise()
}

// Reset restarts the active exercise with the same notes.
func (c *Controller) Reset() {
	c.ex.Reset()
	if c.recorder != nil && c.ex.Phase == exercise.PhaseInProgress {
		c.recorder.ExerciseStarted(c.ex)
	}
}

// Press handles a piano key. Once the exercise is finished presses are
// ignored entirely, and a note with an unknown pitch class is rejected
// without sound. Otherwise the note is voiced (if audio is ready) and its
// pitch class submitted to the exercise.
func (c *Controller) Press(note pitch.Note) PressResult {
	res := PressResult{Note: note, Position: c.ex.Cursor}
	if !note.Class.Valid() {
		res.Outcome = exercise.OutcomeInvalid
		return res
	}
	if c.ex.Finished() {
		return res
	}

	if c.sampler != nil {
		c.sampler.Activate()
		res.Voice, res.Played = c.sampler.Play(note)
	}

	res.Outcome = c.ex.Submit(note.Class)
	if c.recorder != nil && res.Outcome != exercise.OutcomeIgnored && res.Outcome != exercise.OutcomeInvalid {
		c.recorder.NotePlayed(c.ex, res.Position, note.Class, res.Outcome)
		if c.ex.Finished() {
			c.recorder.ExerciseFinished(c.ex)
		}
	}
	return res
}

// Play voices a note without touching the exercise (free play).
func (c *Controller) Play(note pitch.Note) PressResult {
	res := PressResult{Note: note, Position: c.ex.Cursor}
	if c.sampler != nil {
		c.sampler.Activate()
		res.Voice, res.Played = c.sampler.Play(note)
	}
	return res
}

func (c *Controller) settingsChanged() {
	if c.recorder != nil {
		c.recorder.SettingsChanged(c.key, c.length)
	}
}
