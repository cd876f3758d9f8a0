package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/logger"
	"github.com/jsphweid/ams/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var servePort string

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the compiler over HTTP",
	Long: `Serves the compiler over HTTP.

  POST /compile/{json|midi}   body is AMS source
  POST /check                 body is AMS source
  GET  /health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(constants.GetSentryDSN(), constants.GetEnvironment(), constants.FormatVersion); err != nil {
			return errors.Wrap(err, "Could not initialise Sentry")
		}

		port := servePort
		if port == "" {
			port = constants.GetPort()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, ":"+port)
	},
}
