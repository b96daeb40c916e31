package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per scale degree",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		stats, err := st.EventRepo().DegreeAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("degree accuracy: %w", err)
		}
		exercises, err := st.EventRepo().QueryExerciseSummaries(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		var completed int
		for _, ex := range exercises {
			if ex.Result == store.ResultCompleted {
				completed++
			}
		}
		fmt.Fprintf(out, "Exercises: %d finished, %d completed\n\n", len(exercises), completed)

		if len(stats) == 0 {
			fmt.Fprintln(out, "No notes played yet.")
			return nil
		}
		fmt.Fprintf(out, "%-6s  %8s  %8s  %s\n", "Degree", "Attempts", "Correct", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 46))
		for _, s := range stats {
			bar := strings.Repeat("█", int(s.Accuracy()*10+0.5))
			fmt.Fprintf(out, "%-6s  %8d  %8d  %3.0f%% %s\n",
				s.Degree, s.Attempts, s.Correct, s.Accuracy()*100, bar)
		}
		return nil
	},
}
