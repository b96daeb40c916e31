package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/playback"
)

var freqCmd = &cobra.Command{
	Use:     "freq <note>...",
	Short:   "Print equal-temperament frequencies and sample playback rates",
	Example: `  solfa freq A4 C#5 G3`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-6s  %5s  %10s  %8s\n", "Note", "MIDI", "Hz", "Rate")

		for _, arg := range args {
			n, err := pitch.ParseNote(arg)
			if err != nil {
				return err
			}
			p, err := playback.ComputeParams(n, playback.ReferenceNote, playback.DefaultEnvelope())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-6s  %5d  %10.3f  %8.4f\n", n, n.MIDI(), p.TargetFrequency, p.PlaybackRate)
		}
		return nil
	},
}
