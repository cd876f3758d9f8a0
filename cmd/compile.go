package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jsphweid/ams/compile"
	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/file"
	"github.com/jsphweid/ams/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCompileCmd(compile.JSON, "Compiles an AMS file to a JSON document"))
	rootCmd.AddCommand(newCompileCmd(compile.MIDI, "Compiles an AMS file to a Standard MIDI File"))
}

func newCompileCmd(format compile.Format, short string) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   string(format) + " <file.ams>",
		Short: short,
		Long: short + `. The output goes next to the input (or into AMS_OUT_DIR)
unless --out is given. --out also accepts s3://bucket/key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileFile(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], format, out)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output path or s3:// url")
	return c
}

// loadSource reads path, rendering a FILE diagnostic when it cannot.
func loadSource(ctx context.Context, errOut io.Writer, path string) (string, error) {
	src, err := file.ReadSource(ctx, path)
	if err != nil {
		var pe diag.ParseError
		if errors.As(err, &pe) {
			diag.Render(errOut, diag.List{pe})
			return "", errCompileFailed
		}
		return "", err
	}
	return src, nil
}

func compileFile(ctx context.Context, out io.Writer, errOut io.Writer, path string, format compile.Format, dest string) error {
	src, err := loadSource(ctx, errOut, path)
	if err != nil {
		return err
	}

	score, errs := compile.Parse(src)
	if len(errs) > 0 {
		diag.Render(errOut, errs)
		return errCompileFailed
	}
	fmt.Fprintf(out, "✓ Compilation successful!\n\n%s\n", compile.Summary(score))

	emitter, err := compile.EmitterFor(format)
	if err != nil {
		return err
	}
	data, err := emitter.Emit(score)
	if err != nil {
		return errors.Wrapf(err, "Failed to generate %s", format)
	}

	if dest == "" {
		dest, err = compile.OutputPath(path, format)
		if err != nil {
			return err
		}
	}
	if err := file.WriteOutput(ctx, dest, data, emitter.ContentType()); err != nil {
		logger.Error("write failed", err, logger.Fields{"dest": dest, "format": string(format)})
		return errors.Wrapf(err, "Failed to write output file: %s", dest)
	}

	fmt.Fprintf(out, "✓ %s output written to: %s\n", format, dest)
	return nil
}
