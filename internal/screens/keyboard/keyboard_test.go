package keyboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// testScreen builds a C-major screen whose exercise is do, mi, sol.
func testScreen(t *testing.T, mode Mode) (*KeyboardScreen, *piano.Controller) {
	t.Helper()
	sampler := playback.NewSampler(playback.DefaultEnvelope(), nil)
	sampler.MarkReady(playback.Sample{Name: "piano", Reference: playback.ReferenceNote})
	ctrl, err := piano.NewController(piano.Options{
		Key:     pitch.C,
		Length:  3,
		Source:  exercise.NewFixedSource(pitch.Do, pitch.Mi, pitch.Sol),
		Sampler: sampler,
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return New(ctrl, piano.DefaultLayout(), sampler, mode), ctrl
}

func TestPlayingTheRightKeysCompletes(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)

	// z = C3, c = E3, b = G3
	for _, r := range "zcb" {
		s.Update(keyPress(r))
	}

	if ctrl.Exercise().Phase != exercise.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", ctrl.Exercise().Phase)
	}
	if !strings.Contains(s.View(100, 30), "All 3 notes right") {
		t.Error("expected completion banner in view")
	}
}

func TestWrongKeyFailsAndBackspaceRetries(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)

	s.Update(keyPress('x')) // D3, expected C

	if ctrl.Exercise().Phase != exercise.PhaseFailed {
		t.Fatalf("phase = %v, want failed", ctrl.Exercise().Phase)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "do is C, you played D") {
		t.Errorf("expected failure banner naming the answer, got:\n%s", view)
	}

	s.Update(specialKey(tea.KeyBackspace))

	ex := ctrl.Exercise()
	if ex.Phase != exercise.PhaseInProgress || ex.Cursor != 0 {
		t.Errorf("after retry phase = %v cursor = %d", ex.Phase, ex.Cursor)
	}
	if got := ex.Notes(); got[0] != pitch.C || got[1] != pitch.E || got[2] != pitch.G {
		t.Errorf("retry changed notes: %v", got)
	}
}

func TestPressVoicesTheNote(t *testing.T) {
	s, _ := testScreen(t, ModePractice)

	s.Update(keyPress('q')) // C4

	if s.last == nil || !s.last.Played {
		t.Fatal("expected the press to be voiced")
	}
	if s.last.Voice.PlaybackRate != 1 {
		t.Errorf("C4 rate = %v, want 1", s.last.Voice.PlaybackRate)
	}
}

func TestLengthControls(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)

	s.Update(keyPress('='))
	if ctrl.Length() != 4 || ctrl.Exercise().Len() != 4 {
		t.Errorf("length = %d, exercise = %d, want 4", ctrl.Length(), ctrl.Exercise().Len())
	}

	s.Update(keyPress('-'))
	s.Update(keyPress('-'))
	if ctrl.Length() != 2 {
		t.Errorf("length = %d, want 2", ctrl.Length())
	}

	s.Update(keyPress('-'))
	if ctrl.Length() != 2 {
		t.Errorf("length below minimum: %d", ctrl.Length())
	}
	if !strings.Contains(s.flash, "between 2 and 10") {
		t.Errorf("flash = %q", s.flash)
	}

	s.Update(keyPress('='))
	if s.flash != "" {
		t.Errorf("flash not cleared: %q", s.flash)
	}
}

func TestKeyShift(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)

	s.Update(keyPress(']'))
	if ctrl.Key() != pitch.CSharp {
		t.Errorf("key = %s, want C#", ctrl.Key())
	}
	s.Update(keyPress('['))
	s.Update(keyPress('['))
	if ctrl.Key() != pitch.B {
		t.Errorf("key = %s, want B", ctrl.Key())
	}
	if s.Status() != "Key B · 3 notes" {
		t.Errorf("status = %q", s.Status())
	}
}

func TestEnterStartsNewExercise(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)
	first := ctrl.Exercise()

	s.Update(specialKey(tea.KeyEnter))

	if ctrl.Exercise() == first {
		t.Error("expected a new exercise")
	}
}

func TestFreePlayDoesNotScore(t *testing.T) {
	s, ctrl := testScreen(t, ModeFree)

	s.Update(keyPress('x'))

	if ctrl.Exercise().Cursor != 0 || ctrl.Exercise().Phase != exercise.PhaseInProgress {
		t.Error("free play should not submit notes")
	}
	if s.last == nil || s.last.Note.Class != pitch.D {
		t.Error("free play should still voice the key")
	}

	// Length keys are ignored while playing freely.
	s.Update(keyPress('='))
	if ctrl.Length() != 3 {
		t.Errorf("length = %d, want 3", ctrl.Length())
	}

	s.Update(specialKey(tea.KeyTab))
	if s.mode != ModePractice || s.Title() != "Practice" {
		t.Error("tab should switch back to practice")
	}
}

func TestMIDINoteSubmits(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)

	s.Update(MIDINoteMsg{Note: pitch.Note{Class: pitch.C, Octave: 5}, Velocity: 100})

	if ctrl.Exercise().Cursor != 1 {
		t.Errorf("cursor = %d, want 1", ctrl.Exercise().Cursor)
	}
}

func TestPendingNotesHidden(t *testing.T) {
	s, ctrl := testScreen(t, ModePractice)
	s.Update(keyPress('z'))

	items := renderItems(ctrl.Exercise())
	if !strings.Contains(items, "C") {
		t.Error("played note should be revealed")
	}
	if strings.Contains(items, "G") {
		t.Error("pending note should stay hidden")
	}
}

func TestRenderKeyboardLabels(t *testing.T) {
	out := renderKeyboard(piano.DefaultLayout(), nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	for _, label := range []string{"Z", "X", "Q", "U"} {
		if !strings.Contains(lines[3], label) {
			t.Errorf("white key label %q missing", label)
		}
	}
	for _, label := range []string{"S", "D", "2", "7"} {
		if !strings.Contains(lines[1], label) {
			t.Errorf("black key label %q missing", label)
		}
	}
}
