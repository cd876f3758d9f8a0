package cmd

import (
	"context"
	"io"

	"github.com/joho/godotenv"
	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errCompileFailed is returned after the diagnostics were already printed.
var errCompileFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:     "ams",
	Short:   "AMS notation compiler",
	Long:    `Compiles AMS keyboard notation into JSON documents or Standard MIDI Files.`,
	Version: constants.FormatVersion,

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine
		_ = godotenv.Load()
	},
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	logger.Flush()
	cobra.CheckErr(err)
}

// Run executes the CLI with args, writing to out and errOut. Flags start
// from their defaults on every call.
func Run(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.ExecuteContext(ctx)
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
