package cmd

import (
	"fmt"

	"github.com/jsphweid/ams/midi"
	"github.com/spf13/cobra"
)

var inspectChords bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectChords, "chords", "c", false, "print the sounding chords of each track instead of raw events")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints the tracks and events of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !inspectChords {
			midi.Describe(out, s)
			return nil
		}
		for i, track := range s.Tracks {
			fmt.Fprintf(out, "Track %d\n", i)
			for _, c := range midi.Sonorities(track) {
				fmt.Fprintf(out, "  %8d  %v\n", c.Tick, c.Keys)
			}
		}
		return nil
	},
}
