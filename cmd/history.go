package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		exercises, err := st.EventRepo().QueryExerciseSummaries(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-3s  %-10s  %-6s  %-30s  %s\n",
			"When", "Key", "Result", "Score", "Degrees", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 82))
		for _, ex := range exercises {
			fmt.Fprintf(out, "%-16s  %-3s  %-10s  %-6s  %-30s  %s\n",
				ex.Timestamp.Local().Format("2006-01-02 15:04"),
				ex.Key,
				ex.Result,
				fmt.Sprintf("%d/%d", ex.CorrectCount, ex.Length),
				strings.Join(ex.Degrees, " "),
				ex.Duration.Round(time.Second),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of exercises")
	historyCmd.Flags().Duration("since", 0, "Only show exercises from this long ago, e.g. 24h")
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
