package practice

import (
	"context"
	"fmt"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/store"
)

// Settings are the piano settings restored at startup.
type Settings struct {
	Key    pitch.PitchClass
	Length int
}

// LoadSettings reads the latest snapshot. Missing or unusable snapshots yield
// the defaults with ok=false.
func LoadSettings(ctx context.Context, snaps store.SnapshotRepo, cfg exercise.Config) (Settings, bool, error) {
	def := Settings{Key: pitch.C, Length: cfg.DefaultLength}
	snap, err := snaps.Latest(ctx)
	if err != nil {
		return def, false, fmt.Errorf("load settings: %w", err)
	}
	if snap == nil {
		return def, false, nil
	}

	key, err := pitch.ParsePitchClass(snap.Data.Key)
	if err != nil {
		return def, false, nil
	}
	return Settings{Key: key, Length: cfg.Clamp(snap.Data.Length)}, true, nil
}
