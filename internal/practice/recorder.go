// Package practice persists piano activity as practice history.
package practice

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/store"
)

// SnapshotVersion is written into every settings snapshot.
const SnapshotVersion = 1

// Config tunes the recorder.
type Config struct {
	// SettingsDelay is how long key/length changes settle before a
	// snapshot is written.
	SettingsDelay time.Duration

	// KeepSnapshots bounds the snapshot table.
	KeepSnapshots int
}

// DefaultConfig returns the standard recorder configuration.
func DefaultConfig() Config {
	return Config{
		SettingsDelay: 500 * time.Millisecond,
		KeepSnapshots: 10,
	}
}

// attempt is one run through an exercise, from generation or reset until it
// finishes or is replaced. correct is counted here because a reset clears
// the exercise's statuses before the attempt is closed.
type attempt struct {
	id      string
	ex      *exercise.Exercise
	started time.Time
	correct int
	ended   bool
}

// Recorder writes exercise and press events to the store. Failures are
// reported as warnings on the configured writer and never interrupt practice.
type Recorder struct {
	events store.EventRepo
	snaps  store.SnapshotRepo
	warn   io.Writer
	cfg    Config
	now    func() time.Time

	debounced func(func())

	mu      sync.Mutex
	current *attempt
	pending *store.SnapshotData
}

// NewRecorder creates a recorder. snaps may be nil to skip settings
// snapshots; warn may be nil to discard warnings.
func NewRecorder(events store.EventRepo, snaps store.SnapshotRepo, warn io.Writer, cfg Config) *Recorder {
	if warn == nil {
		warn = io.Discard
	}
	return &Recorder{
		events:    events,
		snaps:     snaps,
		warn:      warn,
		cfg:       cfg,
		now:       time.Now,
		debounced: debounce.New(cfg.SettingsDelay),
	}
}

// CurrentID returns the id of the active attempt, or "" if none.
func (r *Recorder) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return ""
	}
	return r.current.id
}

func (r *Recorder) ExerciseStarted(ex *exercise.Exercise) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.abandonLocked()
	r.current = &attempt{id: uuid.New().String(), ex: ex, started: r.now()}

	err := r.events.AppendExerciseEvent(context.Background(), store.ExerciseEventData{
		ExerciseID: r.current.id,
		Action:     store.ActionStart,
		Key:        ex.Key.String(),
		Length:     ex.Len(),
		Degrees:    degreeStrings(ex),
		Notes:      noteStrings(ex),
	})
	if err != nil {
		fmt.Fprintf(r.warn, "warning: failed to log exercise start: %v\n", err)
	}
}

func (r *Recorder) NotePlayed(ex *exercise.Exercise, position int, played pitch.PitchClass, outcome exercise.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.ex != ex || position < 0 || position >= ex.Len() {
		return
	}
	item := ex.Items[position]
	correct := outcome == exercise.OutcomeCorrect || outcome == exercise.OutcomeCompleted
	if correct {
		r.current.correct++
	}
	err := r.events.AppendPressEvent(context.Background(), store.PressEventData{
		ExerciseID: r.current.id,
		Position:   position,
		Degree:     item.Degree.String(),
		Expected:   item.Note.String(),
		Played:     played.String(),
		Correct:    correct,
	})
	if err != nil {
		fmt.Fprintf(r.warn, "warning: failed to log note: %v\n", err)
	}
}

func (r *Recorder) ExerciseFinished(ex *exercise.Exercise) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.ex != ex || r.current.ended {
		return
	}
	result := store.ResultFailed
	if ex.Phase == exercise.PhaseCompleted {
		result = store.ResultCompleted
	}
	r.endLocked(result)
}

func (r *Recorder) SettingsChanged(key pitch.PitchClass, length int) {
	r.mu.Lock()
	r.pending = &store.SnapshotData{Version: SnapshotVersion, Key: key.String(), Length: length}
	r.mu.Unlock()

	if r.snaps != nil {
		r.debounced(r.flushSettings)
	}
}

// Close ends an unfinished attempt as abandoned and writes any pending
// settings snapshot immediately.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.abandonLocked()
	r.mu.Unlock()

	r.flushSettings()
}

func (r *Recorder) flushSettings() {
	r.mu.Lock()
	data := r.pending
	r.pending = nil
	r.mu.Unlock()

	if data == nil || r.snaps == nil {
		return
	}
	ctx := context.Background()
	if err := r.snaps.Save(ctx, &store.Snapshot{Timestamp: r.now(), Data: *data}); err != nil {
		fmt.Fprintf(r.warn, "warning: failed to save settings: %v\n", err)
		return
	}
	if err := r.snaps.Prune(ctx, r.cfg.KeepSnapshots); err != nil {
		fmt.Fprintf(r.warn, "warning: failed to prune snapshots: %v\n", err)
	}
}

func (r *Recorder) abandonLocked() {
	if r.current != nil && !r.current.ended {
		r.endLocked(store.ResultAbandoned)
	}
}

func (r *Recorder) endLocked(result string) {
	a := r.current
	a.ended = true
	err := r.events.AppendExerciseEvent(context.Background(), store.ExerciseEventData{
		ExerciseID:   a.id,
		Action:       store.ActionEnd,
		Key:          a.ex.Key.String(),
		Length:       a.ex.Len(),
		Degrees:      degreeStrings(a.ex),
		Notes:        noteStrings(a.ex),
		Result:       result,
		CorrectCount: a.correct,
		Duration:     r.now().Sub(a.started),
	})
	if err != nil {
		fmt.Fprintf(r.warn, "warning: failed to log exercise end: %v\n", err)
	}
}

func degreeStrings(ex *exercise.Exercise) []string {
	out := make([]string, 0, ex.Len())
	for _, d := range ex.Degrees() {
		out = append(out, d.String())
	}
	return out
}

func noteStrings(ex *exercise.Exercise) []string {
	out := make([]string, 0, ex.Len())
	for _, n := range ex.Notes() {
		out = append(out, n.String())
	}
	return out
}
