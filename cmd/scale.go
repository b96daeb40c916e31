package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/pitch"
)

var scaleCmd = &cobra.Command{
	Use:   "scale [key]...",
	Short: "Show which note each degree maps to (all keys if none given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := pitch.AllPitchClasses()
		if len(args) > 0 {
			keys = nil
			for _, arg := range args {
				pc, err := pitch.ParsePitchClass(arg)
				if err != nil {
					return err
				}
				keys = append(keys, pc)
			}
		}

		out := cmd.OutOrStdout()
		degrees := pitch.AllDegrees()

		fmt.Fprintf(out, "%-4s", "Key")
		for _, d := range degrees {
			fmt.Fprintf(out, "  %-3s", d)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 4+5*len(degrees)))

		for _, key := range keys {
			fmt.Fprintf(out, "%-4s", key)
			for _, d := range degrees {
				pc, err := pitch.ResolveDegree(key, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-3s", pc)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
