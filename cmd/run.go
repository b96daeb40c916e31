package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/app"
	"github.com/abhisek/solfa/internal/debug"
	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
	"github.com/abhisek/solfa/internal/practice"
	"github.com/abhisek/solfa/internal/store"
)

// pianoSample is the reference recording every note is pitched from.
var pianoSample = playback.Sample{Name: "piano-c4", Reference: playback.ReferenceNote}

func addPianoFlags(cmd *cobra.Command) {
	cmd.Flags().String("key", "", "Tonic to practice in, e.g. G or F# (default: last used)")
	cmd.Flags().Int("length", 0, "Notes per exercise (default: last used)")
}

func addMIDIFlag(cmd *cobra.Command) {
	cmd.Flags().String("midi", "", "Play the piano from this MIDI input port")
}

// practiceEnv is the piano controller wired to persistence.
type practiceEnv struct {
	store    *store.Store
	recorder *practice.Recorder
	ctrl     *piano.Controller
	sampler  *playback.Sampler
}

// openPractice opens the store, restores the last key and length, applies
// --key/--length overrides and builds the controller. A store that cannot
// be opened disables history instead of failing.
func openPractice(cmd *cobra.Command, warn io.Writer, sink playback.Sink) (*practiceEnv, error) {
	env := &practiceEnv{sampler: playback.NewSampler(playback.DefaultEnvelope(), sink)}
	cfg := exercise.DefaultConfig()
	settings := practice.Settings{Key: pitch.C, Length: cfg.DefaultLength}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		env.store, err = store.Open(dbPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Practice history unavailable:", err)
	} else {
		restored, ok, err := practice.LoadSettings(cmd.Context(), env.store.SnapshotRepo(), cfg)
		if err != nil {
			fmt.Fprintf(warn, "warning: %v\n", err)
		}
		if ok {
			settings = restored
		}
		env.recorder = practice.NewRecorder(env.store.EventRepo(), env.store.SnapshotRepo(), warn, practice.DefaultConfig())
	}

	if err := applyPianoFlags(cmd, &settings); err != nil {
		env.Close()
		return nil, err
	}

	opts := piano.Options{
		Config:  cfg,
		Key:     settings.Key,
		Length:  settings.Length,
		Sampler: env.sampler,
	}
	if env.recorder != nil {
		opts.Recorder = env.recorder
	}
	env.ctrl, err = piano.NewController(opts)
	if err != nil {
		env.Close()
		return nil, err
	}
	debug.Log("cmd", "practice opened", "key", settings.Key.String(), "length", settings.Length, "history", env.store != nil)
	return env, nil
}

func applyPianoFlags(cmd *cobra.Command, s *practice.Settings) error {
	if f := cmd.Flags().Lookup("key"); f != nil && f.Changed {
		key, err := pitch.ParsePitchClass(f.Value.String())
		if err != nil {
			return fmt.Errorf("--key: %w", err)
		}
		s.Key = key
	}
	if cmd.Flags().Changed("length") {
		n, _ := cmd.Flags().GetInt("length")
		if err := exercise.DefaultConfig().Validate(n); err != nil {
			return fmt.Errorf("--length %d: %w", n, err)
		}
		s.Length = n
	}
	return nil
}

func (e *practiceEnv) events() store.EventRepo {
	if e.store == nil {
		return nil
	}
	return e.store.EventRepo()
}

// Close records any unfinished exercise and closes the store.
func (e *practiceEnv) Close() {
	if e.recorder != nil {
		e.recorder.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
}

// runApp opens the practice environment and launches the TUI.
func runApp(cmd *cobra.Command) error {
	sink := playback.SinkFunc(func(p playback.Params) {
		debug.Log("audio", "voice", "note", p.Note.String(), "hz", p.TargetFrequency, "rate", p.PlaybackRate)
	})
	env, err := openPractice(cmd, debug.Writer("practice"), sink)
	if err != nil {
		return err
	}
	defer env.Close()

	midiPort, _ := cmd.Flags().GetString("midi")
	return app.Run(app.Options{
		Controller: env.ctrl,
		Layout:     piano.DefaultLayout(),
		EventRepo:  env.events(),
		Sampler:    env.sampler,
		Sample:     pianoSample,
		MIDIInput:  midiPort,
	})
}
