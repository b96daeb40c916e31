package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error {
	if data.ExerciseID == "" {
		return errors.New("append exercise event: missing exercise id")
	}
	degrees, err := json.Marshal(nonNil(data.Degrees))
	if err != nil {
		return fmt.Errorf("marshal degrees: %w", err)
	}
	notes, err := json.Marshal(nonNil(data.Notes))
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableExerciseEvents).
		Columns("sequence", "timestamp", "exercise_id", "action", "tonic", "length",
			"degrees", "notes", "result", "correct_count", "duration_ms").
		Values(seq, time.Now().UnixMilli(), data.ExerciseID, string(data.Action), data.Key, data.Length,
			string(degrees), string(notes), data.Result, data.CorrectCount, data.Duration.Milliseconds()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append exercise event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendPressEvent(ctx context.Context, data PressEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tablePressEvents).
		Columns("sequence", "timestamp", "exercise_id", "position", "degree", "expected", "played", "correct").
		Values(seq, time.Now().UnixMilli(), data.ExerciseID, data.Position, data.Degree, data.Expected, data.Played, data.Correct).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append press event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryExerciseSummaries(ctx context.Context, opts QueryOpts) ([]ExerciseSummary, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "exercise_id", "tonic", "length",
			"degrees", "notes", "result", "correct_count", "duration_ms").
		From(entsql.Table(tableExerciseEvents)).
		Where(entsql.EQ("action", string(ActionEnd))).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query exercise summaries: %w", err)
	}
	defer rows.Close()

	var out []ExerciseSummary
	for rows.Next() {
		var (
			s              ExerciseSummary
			ts, durMs      int64
			degrees, notes string
		)
		if err := rows.Scan(&s.Sequence, &ts, &s.ExerciseID, &s.Key, &s.Length,
			&degrees, &notes, &s.Result, &s.CorrectCount, &durMs); err != nil {
			return nil, fmt.Errorf("scan exercise summary: %w", err)
		}
		if err := json.Unmarshal([]byte(degrees), &s.Degrees); err != nil {
			return nil, fmt.Errorf("unmarshal degrees: %w", err)
		}
		if err := json.Unmarshal([]byte(notes), &s.Notes); err != nil {
			return nil, fmt.Errorf("unmarshal notes: %w", err)
		}
		s.Timestamp = time.UnixMilli(ts).UTC()
		s.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query exercise summaries: %w", err)
	}
	return out, nil
}

func (r *eventRepo) DegreeAccuracy(ctx context.Context) ([]DegreeStat, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("degree", entsql.Count("*"), entsql.Sum("correct")).
		From(entsql.Table(tablePressEvents)).
		GroupBy("degree").
		OrderBy("degree").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query degree accuracy: %w", err)
	}
	defer rows.Close()

	var out []DegreeStat
	for rows.Next() {
		var d DegreeStat
		if err := rows.Scan(&d.Degree, &d.Attempts, &d.Correct); err != nil {
			return nil, fmt.Errorf("scan degree stat: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
