package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/midiio"
	"github.com/abhisek/solfa/internal/pitch"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.mid>",
	Short: "Write an exercise as a Standard MIDI File",
	Long: `Export generates an exercise (or uses --degrees) and writes its target
notes as quarter notes, preceded by the tonic unless --no-tonic is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("key", "C", "Tonic")
	exportCmd.Flags().Int("length", exercise.DefaultConfig().DefaultLength, "Notes to generate")
	exportCmd.Flags().String("degrees", "", "Comma-separated degrees instead of random ones, e.g. do,mi,sol")
	exportCmd.Flags().Uint64("seed", 0, "Seed for reproducible random degrees (0 = random)")
	exportCmd.Flags().Int("octave", pitch.ReferenceOctave, "Octave of the tonic")
	exportCmd.Flags().Float64("bpm", midiio.DefaultExportOptions().BPM, "Tempo")
	exportCmd.Flags().Bool("no-tonic", false, "Do not prepend the tonic")
}

func runExport(cmd *cobra.Command, args []string) error {
	keyVal, _ := cmd.Flags().GetString("key")
	length, _ := cmd.Flags().GetInt("length")
	degreesVal, _ := cmd.Flags().GetString("degrees")
	seed, _ := cmd.Flags().GetUint64("seed")

	key, err := pitch.ParsePitchClass(keyVal)
	if err != nil {
		return fmt.Errorf("--key: %w", err)
	}

	var src exercise.DegreeSource
	switch {
	case degreesVal != "":
		var degrees []pitch.Degree
		for _, s := range strings.Split(degreesVal, ",") {
			d, err := pitch.ParseDegree(s)
			if err != nil {
				return fmt.Errorf("--degrees: %w", err)
			}
			degrees = append(degrees, d)
		}
		src = exercise.NewFixedSource(degrees...)
		if !cmd.Flags().Changed("length") {
			length = len(degrees)
		}
	case seed != 0:
		src = exercise.NewRandomSource(rand.New(rand.NewPCG(seed, seed)))
	default:
		src = exercise.NewRandomSource(nil)
	}

	ex, err := exercise.Generate(exercise.DefaultConfig(), key, length, src)
	if err != nil {
		return err
	}

	opts := midiio.DefaultExportOptions()
	opts.Octave, _ = cmd.Flags().GetInt("octave")
	opts.BPM, _ = cmd.Flags().GetFloat64("bpm")
	noTonic, _ := cmd.Flags().GetBool("no-tonic")
	opts.WithTonic = !noTonic

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[0], err)
	}
	n, err := midiio.ExportExercise(f, ex, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Key %s: %s\n", key, strings.Join(degreeNames(ex), " "))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", args[0], n)
	return nil
}
