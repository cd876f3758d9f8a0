package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/ams/compile"
	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	watchFormat string
	watchOut    string
)

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", string(compile.JSON), "output format: json or midi")
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output path or s3:// url")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file.ams>",
	Short: "Recompiles an AMS file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := compile.ParseFormat(watchFormat)
		if err != nil {
			return err
		}
		path := args[0]

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dest := watchOut
		build := serialized(ctx, func() {
			err := compileFile(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), path, format, dest)
			if err != nil && !errors.Is(err, errCompileFailed) {
				logger.Warn("compile failed", logger.Fields{"path": path, "error": err.Error()})
			}
		})

		build()
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl-c to stop)\n", path)

		interval := constants.GetWatchInterval()
		debounced := debounce.New(interval)
		return watch(ctx, path, interval, func() { debounced(build) })
	},
}

// serialized wraps fn so that calls never overlap and calls made after ctx
// is done do nothing.
func serialized(ctx context.Context, fn func()) func() {
	var mu sync.Mutex
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		fn()
	}
}

// watch polls path every interval and calls onChange when its modification
// time or size moves. It returns when ctx is done.
func watch(ctx context.Context, path string, interval time.Duration, onChange func()) error {
	last, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "Could not watch %s", path)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				// editors often replace files by rename; try again next tick
				continue
			}
			if !info.ModTime().Equal(last.ModTime()) || info.Size() != last.Size() {
				last = info
				onChange()
			}
		}
	}
}
