package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData is the learner's persisted piano settings.
type SnapshotData struct {
	Version int    `json:"version"`
	Key     string `json:"key"`
	Length  int    `json:"length"`
}

// Snapshot is a point-in-time capture of SnapshotData.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages settings snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// ExerciseAction distinguishes the two exercise lifecycle events.
type ExerciseAction string

const (
	ActionStart ExerciseAction = "start"
	ActionEnd   ExerciseAction = "end"
)

// Exercise results recorded with ActionEnd.
const (
	ResultCompleted = "completed"
	ResultFailed    = "failed"
	ResultAbandoned = "abandoned"
)

// ExerciseEventData is one exercise lifecycle event.
type ExerciseEventData struct {
	ExerciseID   string
	Action       ExerciseAction
	Key          string
	Length       int
	Degrees      []string
	Notes        []string
	Result       string // end events only
	CorrectCount int
	Duration     time.Duration
}

// PressEventData is one note submitted to an exercise.
type PressEventData struct {
	ExerciseID string
	Position   int
	Degree     string
	Expected   string
	Played     string
	Correct    bool
}

// ExerciseSummary is a finished exercise as read back from the end event.
type ExerciseSummary struct {
	ExerciseID   string
	Sequence     int64
	Timestamp    time.Time
	Key          string
	Length       int
	Degrees      []string
	Notes        []string
	Result       string
	CorrectCount int
	Duration     time.Duration
}

// DegreeStat aggregates presses for one scale degree.
type DegreeStat struct {
	Degree   string
	Attempts int
	Correct  int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (d DegreeStat) Accuracy() float64 {
	if d.Attempts == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.Attempts)
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error
	AppendPressEvent(ctx context.Context, data PressEventData) error

	// QueryExerciseSummaries returns finished exercises, newest first.
	QueryExerciseSummaries(ctx context.Context, opts QueryOpts) ([]ExerciseSummary, error)

	// DegreeAccuracy returns press statistics grouped by degree.
	DegreeAccuracy(ctx context.Context) ([]DegreeStat, error)
}
