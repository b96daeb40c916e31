package piano

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
)

type recordedPress struct {
	position int
	played   pitch.PitchClass
	outcome  exercise.Outcome
}

// fakeRecorder captures Recorder callbacks.
type fakeRecorder struct {
	started  int
	finished int
	presses  []recordedPress
	settings []int
}

func (f *fakeRecorder) ExerciseStarted(*exercise.Exercise) { f.started++ }
func (f *fakeRecorder) NotePlayed(_ *exercise.Exercise, pos int, pc pitch.PitchClass, o exercise.Outcome) {
	f.presses = append(f.presses, recordedPress{pos, pc, o})
}
func (f *fakeRecorder) ExerciseFinished(*exercise.Exercise) { f.finished++ }
func (f *fakeRecorder) SettingsChanged(_ pitch.PitchClass, length int) {
	f.settings = append(f.settings, length)
}

func note(t *testing.T, s string) pitch.Note {
	t.Helper()
	n, err := pitch.ParseNote(s)
	require.NoError(t, err)
	return n
}

func readySampler() *playback.Sampler {
	s := playback.NewSampler(playback.DefaultEnvelope(), nil)
	s.MarkReady(playback.Sample{Name: "test", Reference: playback.ReferenceNote})
	return s
}

func newTestController(t *testing.T, rec Recorder, degrees ...pitch.Degree) *Controller {
	t.Helper()
	c, err := NewController(Options{
		Key:      pitch.C,
		Length:   len(degrees),
		Source:   exercise.NewFixedSource(degrees...),
		Sampler:  readySampler(),
		Recorder: rec,
	})
	require.NoError(t, err)
	return c
}

func TestController_PressCompletes(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Mi, pitch.Sol)
	assert.Equal(t, 1, rec.started)

	r := c.Press(note(t, "C3"))
	assert.True(t, r.Played)
	assert.Equal(t, exercise.OutcomeCorrect, r.Outcome)
	assert.InDelta(t, 0.5, r.Voice.PlaybackRate, 1e-9)

	c.Press(note(t, "E4"))
	r = c.Press(note(t, "G3"))
	assert.Equal(t, exercise.OutcomeCompleted, r.Outcome)
	assert.Equal(t, exercise.PhaseCompleted, c.Exercise().Phase)
	assert.Equal(t, 1, rec.finished)
	assert.Len(t, rec.presses, 3)
}

func TestController_PressAfterFinishIgnored(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Re, pitch.Re)

	r := c.Press(note(t, "C4"))
	require.Equal(t, exercise.OutcomeWrong, r.Outcome)
	require.Equal(t, 1, rec.finished)

	r = c.Press(note(t, "D4"))
	assert.False(t, r.Played)
	assert.Equal(t, exercise.OutcomeIgnored, r.Outcome)
	assert.Len(t, rec.presses, 1)
	assert.Equal(t, exercise.StatusPending, c.Exercise().Items[1].Status)
}

func TestController_SubmitsWhenAudioNotReady(t *testing.T) {
	c, err := NewController(Options{
		Key:     pitch.G,
		Length:  2,
		Source:  exercise.NewFixedSource(pitch.Do, pitch.Sol),
		Sampler: playback.NewSampler(playback.DefaultEnvelope(), nil),
	})
	require.NoError(t, err)

	r := c.Press(note(t, "G3"))
	assert.False(t, r.Played)
	assert.Equal(t, exercise.OutcomeCorrect, r.Outcome)
}

func TestController_ChangeLength(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Re)
	require.Equal(t, 2, c.Length())

	err := c.ChangeLength(-1)
	assert.ErrorIs(t, err, exercise.ErrLengthOutOfRange)
	assert.Equal(t, 2, c.Length())
	assert.Equal(t, 2, c.Exercise().Len())
	assert.Equal(t, 1, rec.started)

	require.NoError(t, c.ChangeLength(1))
	assert.Equal(t, 3, c.Length())
	assert.Equal(t, 3, c.Exercise().Len())
	assert.Equal(t, 2, rec.started)
	assert.Equal(t, []int{3}, rec.settings)

	for c.Length() < 10 {
		require.NoError(t, c.ChangeLength(1))
	}
	before := c.Exercise()
	assert.ErrorIs(t, c.ChangeLength(1), exercise.ErrLengthOutOfRange)
	assert.Same(t, before, c.Exercise())
}

func TestController_SetKeyRegenerates(t *testing.T) {
	c := newTestController(t, nil, pitch.Do, pitch.Fa)
	require.NoError(t, c.SetKey(pitch.D))
	assert.Equal(t, pitch.D, c.Key())
	assert.Equal(t, pitch.D, c.Exercise().Key)

	err := c.SetKey("Z")
	assert.ErrorIs(t, err, pitch.ErrUnknownPitchClass)
	assert.Equal(t, pitch.D, c.Key())
}

func TestController_ShiftKeyWraps(t *testing.T) {
	c := newTestController(t, nil, pitch.Do, pitch.Do)
	require.NoError(t, c.ShiftKey(-1))
	assert.Equal(t, pitch.B, c.Key())
	require.NoError(t, c.ShiftKey(2))
	assert.Equal(t, pitch.CSharp, c.Key())
}

func TestController_Reset(t *testing.T) {
	c := newTestController(t, nil, pitch.Do, pitch.Mi, pitch.Sol)
	notes := c.Exercise().Notes()
	c.Press(note(t, "C4"))
	c.Press(note(t, "F4"))
	require.True(t, c.Exercise().Finished())

	c.Reset()
	assert.Equal(t, exercise.PhaseInProgress, c.Exercise().Phase)
	assert.Equal(t, notes, c.Exercise().Notes())
	assert.Equal(t, 0, c.Exercise().Cursor)
}

func TestController_ResetNotifiesRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Mi, pitch.Sol)
	c.Press(note(t, "C4"))

	c.Reset()
	assert.Equal(t, 2, rec.started)
}

func TestController_PressUnknownPitchClass(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Mi)

	r := c.Press(pitch.Note{Class: "Q", Octave: 4})
	assert.Equal(t, exercise.OutcomeInvalid, r.Outcome)
	assert.False(t, r.Played)
	assert.Empty(t, rec.presses)
	assert.Equal(t, exercise.PhaseInProgress, c.Exercise().Phase)
	assert.Equal(t, exercise.StatusPending, c.Exercise().Items[0].Status)
}

func TestController_Configure(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Mi, pitch.Sol)
	require.Equal(t, 1, rec.started)

	require.NoError(t, c.Configure(pitch.G, 4))
	assert.Equal(t, pitch.G, c.Key())
	assert.Equal(t, 4, c.Length())
	assert.Equal(t, 4, c.Exercise().Len())
	assert.Equal(t, pitch.G, c.Exercise().Key)
	assert.Equal(t, 2, rec.started, "one regeneration")
	assert.Equal(t, []int{4}, rec.settings, "one settings change")

	// Same settings still deal a new exercise but report no change.
	require.NoError(t, c.Configure(pitch.G, 4))
	assert.Equal(t, 3, rec.started)
	assert.Len(t, rec.settings, 1)
}

func TestController_ConfigureRejectsBadValues(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestController(t, rec, pitch.Do, pitch.Mi)
	ex := c.Exercise()

	assert.ErrorIs(t, c.Configure("Q", 4), pitch.ErrUnknownPitchClass)
	assert.ErrorIs(t, c.Configure(pitch.D, 11), exercise.ErrLengthOutOfRange)

	assert.Equal(t, pitch.C, c.Key())
	assert.Equal(t, 2, c.Length())
	assert.Same(t, ex, c.Exercise())
	assert.Equal(t, 1, rec.started)
	assert.Empty(t, rec.settings)
}

func TestController_PlayDoesNotSubmit(t *testing.T) {
	c := newTestController(t, nil, pitch.Do, pitch.Re)
	r := c.Play(note(t, "A4"))
	assert.True(t, r.Played)
	assert.Equal(t, 440.0, r.Voice.TargetFrequency)
	assert.Equal(t, 0, c.Exercise().Cursor)
}

func TestNewController_Defaults(t *testing.T) {
	c, err := NewController(Options{})
	require.NoError(t, err)
	assert.Equal(t, pitch.C, c.Key())
	assert.Equal(t, 5, c.Length())
	assert.Equal(t, 5, c.Exercise().Len())
}

func TestNewController_RejectsBadLength(t *testing.T) {
	_, err := NewController(Options{Length: 11})
	assert.ErrorIs(t, err, exercise.ErrLengthOutOfRange)
}
