package exercise

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/solfa/internal/pitch"
)

func mustGenerate(t *testing.T, key pitch.PitchClass, degrees ...pitch.Degree) *Exercise {
	t.Helper()
	ex, err := Generate(DefaultConfig(), key, len(degrees), NewFixedSource(degrees...))
	require.NoError(t, err)
	return ex
}

func TestGenerate_Fresh(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewPCG(1, 2)))
	for length := 2; length <= 10; length++ {
		ex, err := Generate(DefaultConfig(), pitch.D, length, src)
		require.NoError(t, err)

		assert.Equal(t, length, ex.Len())
		assert.Equal(t, 0, ex.Cursor)
		assert.Equal(t, PhaseInProgress, ex.Phase)
		for _, it := range ex.Items {
			assert.Equal(t, StatusPending, it.Status)
			want, err := pitch.ResolveDegree(pitch.D, it.Degree)
			require.NoError(t, err)
			assert.Equal(t, want, it.Note)
		}
	}
}

func TestGenerate_LengthOutOfRange(t *testing.T) {
	for _, n := range []int{0, 1, 11, -3} {
		_, err := Generate(DefaultConfig(), pitch.C, n, NewFixedSource(pitch.Do))
		assert.ErrorIs(t, err, ErrLengthOutOfRange, "length %d", n)
	}
}

func TestGenerate_UnknownKey(t *testing.T) {
	_, err := Generate(DefaultConfig(), "Q", 3, NewFixedSource(pitch.Do))
	assert.ErrorIs(t, err, pitch.ErrUnknownPitchClass)
}

func TestGenerate_UnknownDegreeFromSource(t *testing.T) {
	_, err := Generate(DefaultConfig(), pitch.C, 2, NewFixedSource(pitch.Do, "ut"))
	assert.ErrorIs(t, err, pitch.ErrUnknownDegree)
}

func TestSubmit_CompletesInC(t *testing.T) {
	ex := mustGenerate(t, pitch.C, pitch.Do, pitch.Mi, pitch.Sol)
	assert.Equal(t, []pitch.PitchClass{pitch.C, pitch.E, pitch.G}, ex.Notes())

	assert.Equal(t, OutcomeCorrect, ex.Submit(pitch.C))
	assert.Equal(t, OutcomeCorrect, ex.Submit(pitch.E))
	assert.Equal(t, OutcomeCompleted, ex.Submit(pitch.G))

	assert.Equal(t, PhaseCompleted, ex.Phase)
	assert.Equal(t, 3, ex.Cursor)
	assert.True(t, ex.Finished())
	for _, it := range ex.Items {
		assert.Equal(t, StatusCorrect, it.Status)
	}
}

func TestSubmit_WrongNoteFails(t *testing.T) {
	ex := mustGenerate(t, pitch.C, pitch.Do, pitch.Re, pitch.Mi, pitch.Fa)

	require.Equal(t, OutcomeCorrect, ex.Submit(pitch.C))
	require.Equal(t, OutcomeWrong, ex.Submit(pitch.CSharp))

	assert.Equal(t, PhaseFailed, ex.Phase)
	assert.Equal(t, 1, ex.Cursor)
	assert.Equal(t, StatusCorrect, ex.Items[0].Status)
	assert.Equal(t, StatusWrong, ex.Items[1].Status)
	assert.Equal(t, StatusPending, ex.Items[2].Status)
	assert.Equal(t, StatusPending, ex.Items[3].Status)

	// Later submissions change nothing.
	assert.Equal(t, OutcomeIgnored, ex.Submit(pitch.D))
	assert.Equal(t, PhaseFailed, ex.Phase)
	assert.Equal(t, 1, ex.Cursor)
	assert.Equal(t, StatusWrong, ex.Items[1].Status)
	assert.Equal(t, StatusPending, ex.Items[2].Status)
}

func TestSubmit_AfterCompletionIgnored(t *testing.T) {
	ex := mustGenerate(t, pitch.G, pitch.Do, pitch.Do)
	ex.Submit(pitch.G)
	ex.Submit(pitch.G)
	require.Equal(t, PhaseCompleted, ex.Phase)

	assert.Equal(t, OutcomeIgnored, ex.Submit(pitch.A))
	assert.Equal(t, 2, ex.CorrectCount())
}

func TestSubmit_UnknownPitchClassRejected(t *testing.T) {
	ex := mustGenerate(t, pitch.C, pitch.Do, pitch.Mi)

	assert.Equal(t, OutcomeInvalid, ex.Submit("Q"))
	assert.Equal(t, OutcomeInvalid, ex.Submit(""))
	assert.Equal(t, PhaseInProgress, ex.Phase)
	assert.Equal(t, 0, ex.Cursor)
	assert.Equal(t, StatusPending, ex.Items[0].Status)

	// The exercise carries on normally afterwards.
	assert.Equal(t, OutcomeCorrect, ex.Submit(pitch.C))
}

func TestSubmit_IdleIgnored(t *testing.T) {
	var ex Exercise
	assert.Equal(t, OutcomeIgnored, ex.Submit(pitch.C))
	assert.Equal(t, PhaseIdle, ex.Phase)
	assert.Nil(t, ex.Current())
}

func TestReset_KeepsNotes(t *testing.T) {
	ex := mustGenerate(t, pitch.A, pitch.La, pitch.Si, pitch.Re)
	before := ex.Notes()

	ex.Submit(pitch.FSharp)
	ex.Submit(pitch.GSharp)
	ex.Submit(pitch.C) // wrong, expected B
	require.Equal(t, PhaseFailed, ex.Phase)

	ex.Reset()

	assert.Equal(t, PhaseInProgress, ex.Phase)
	assert.Equal(t, 0, ex.Cursor)
	assert.Equal(t, before, ex.Notes())
	for _, it := range ex.Items {
		assert.Equal(t, StatusPending, it.Status)
	}
	assert.Equal(t, pitch.FSharp, ex.Current().Note)
}

func TestReset_IdleNoop(t *testing.T) {
	var ex Exercise
	ex.Reset()
	assert.Equal(t, PhaseIdle, ex.Phase)
}

func TestCursorOnlyAdvancesOnMatch(t *testing.T) {
	ex := mustGenerate(t, pitch.C, pitch.Do, pitch.Mi, pitch.Sol, pitch.Do)
	played := []pitch.PitchClass{pitch.C, pitch.E, pitch.G}
	for i, pc := range played {
		ex.Submit(pc)
		assert.Equal(t, i+1, ex.Cursor)
		assert.Equal(t, ex.Cursor, ex.CorrectCount())
	}
}

func TestConfigClamp(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Clamp(-1))
	assert.Equal(t, 7, cfg.Clamp(7))
	assert.Equal(t, 10, cfg.Clamp(42))
	assert.NoError(t, cfg.Validate(cfg.DefaultLength))
}

func TestFixedSourceWraps(t *testing.T) {
	src := NewFixedSource(pitch.Do, pitch.Re)
	got := []pitch.Degree{src.NextDegree(), src.NextDegree(), src.NextDegree()}
	assert.Equal(t, []pitch.Degree{pitch.Do, pitch.Re, pitch.Do}, got)
}

func TestRandomSourceCoversAllDegrees(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewPCG(7, 7)))
	seen := make(map[pitch.Degree]bool)
	for i := 0; i < 500; i++ {
		seen[src.NextDegree()] = true
	}
	assert.Len(t, seen, 7)
}
