package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/piano"
	"github.com/abhisek/solfa/internal/pitch"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Answer degree exercises by typing note names (no TUI)",
	Long: `Drill prints the degrees of each exercise and reads your answers from
standard input, one note name per token (e.g. "G B D"). Results are recorded
in the practice history like exercises played on the piano.`,
	RunE: runDrill,
}

func init() {
	addPianoFlags(drillCmd)
	drillCmd.Flags().Int("count", 5, "Number of exercises")
}

func runDrill(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")

	env, err := openPractice(cmd, os.Stderr, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	completed := 0

	for i := 1; i <= count; i++ {
		if i > 1 {
			if err := env.ctrl.NewExercise(); err != nil {
				return err
			}
		}
		ex := env.ctrl.Exercise()
		fmt.Fprintf(out, "── Exercise %d/%d · key %s ──\n", i, count, ex.Key)
		fmt.Fprintln(out, strings.Join(degreeNames(ex), " "))
		fmt.Fprint(out, "\nYour notes: ")

		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if drillAnswer(out, env.ctrl, scanner.Text()) {
			completed++
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Completed %d of %d exercises.\n", completed, count)
	return nil
}

// drillAnswer presses each note of line in turn and reports the result.
// It returns true if the exercise was completed.
func drillAnswer(out io.Writer, ctrl *piano.Controller, line string) bool {
	ex := ctrl.Exercise()
	for _, tok := range strings.Fields(line) {
		pc, err := pitch.ParsePitchClass(tok)
		if err != nil {
			fmt.Fprintf(out, "  %q is not a note name, skipped\n", tok)
			continue
		}
		ctrl.Press(pitch.Note{Class: pc, Octave: pitch.ReferenceOctave})
		if ex.Finished() {
			break
		}
	}

	switch ex.Phase {
	case exercise.PhaseCompleted:
		fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		return true
	case exercise.PhaseFailed:
		fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", strings.Join(noteNames(ex), " "))
	default:
		fmt.Fprintf(out, "(incomplete) Answer: %s\n", strings.Join(noteNames(ex), " "))
	}
	return false
}

func degreeNames(ex *exercise.Exercise) []string {
	out := make([]string, 0, ex.Len())
	for _, d := range ex.Degrees() {
		out = append(out, d.String())
	}
	return out
}

func noteNames(ex *exercise.Exercise) []string {
	out := make([]string, 0, ex.Len())
	for _, n := range ex.Notes() {
		out = append(out, n.String())
	}
	return out
}
