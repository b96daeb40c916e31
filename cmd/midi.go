package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/solfa/internal/midiio"
	"github.com/abhisek/solfa/internal/pitch"
)

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "MIDI utilities",
}

var midiPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input ports usable with --midi",
	Run: func(cmd *cobra.Command, args []string) {
		ports := midiio.InPortNames()
		if len(ports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No MIDI input ports found.")
			return
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	},
}

var midiNotesCmd = &cobra.Command{
	Use:   "notes <file.mid>",
	Short: "Print the notes of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := readMIDIFile(args[0])
		if err != nil {
			return err
		}
		for _, n := range notes {
			f, _ := n.Frequency()
			fmt.Fprintf(cmd.OutOrStdout(), "%-5s %8.2f Hz\n", n, f)
		}
		return nil
	},
}

func init() {
	midiCmd.AddCommand(midiPortsCmd)
	midiCmd.AddCommand(midiNotesCmd)
}

func readMIDIFile(path string) ([]pitch.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return midiio.ReadNotes(f)
}
