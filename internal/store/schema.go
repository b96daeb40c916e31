package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Table names.
const (
	tableExerciseEvents = "exercise_events"
	tablePressEvents    = "press_events"
	tableSnapshots      = "snapshots"
)

// Timestamps are stored as unix milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS exercise_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		action TEXT NOT NULL,
		tonic TEXT NOT NULL,
		length INTEGER NOT NULL,
		degrees TEXT NOT NULL,
		notes TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT '',
		correct_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS exercise_events_exercise_id ON exercise_events (exercise_id)`,
	`CREATE INDEX IF NOT EXISTS exercise_events_timestamp ON exercise_events (timestamp)`,
	`CREATE TABLE IF NOT EXISTS press_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		degree TEXT NOT NULL,
		expected TEXT NOT NULL,
		played TEXT NOT NULL,
		correct BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS press_events_degree ON press_events (degree)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
