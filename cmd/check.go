package cmd

import (
	"fmt"

	"github.com/jsphweid/ams/compile"
	"github.com/jsphweid/ams/diag"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <file.ams>",
	Short: "Parses and validates an AMS file without writing output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(cmd.Context(), cmd.ErrOrStderr(), args[0])
		if err != nil {
			return err
		}
		score, errs := compile.Parse(src)
		if len(errs) > 0 {
			diag.Render(cmd.ErrOrStderr(), errs)
			return errCompileFailed
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: ok (%d segments)\n", args[0], len(score.Segments))
		return nil
	},
}
