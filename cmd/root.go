package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/abhisek/solfa/internal/debug"
	"github.com/abhisek/solfa/internal/midiio"
	"github.com/abhisek/solfa/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "solfa",
	Short: "Scale degree ear trainer",
	Long:  "Solfa is a terminal piano that drills scale degrees: it names a degree, you find the note in the current key.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("debug"); path != "" {
			if err := debug.Enable(path); err != nil {
				return fmt.Errorf("enable debug log: %w", err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		midiio.Close()
		debug.Disable()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOLFA_DB env var)")
	rootCmd.PersistentFlags().String("debug", "", "Write a debug log to this file")
	addPianoFlags(rootCmd)
	addMIDIFlag(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(freqCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SOLFA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
