package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/store"
	"github.com/pkg/errors"
)

// ReadSource returns the text of an AMS file, local or s3://. Failures are
// FILE diagnostics so they render like any other compile error.
func ReadSource(ctx context.Context, path string) (string, error) {
	var data []byte
	var err error
	if store.IsS3(path) {
		var loc store.Location
		loc, err = store.ParseURL(path)
		if err == nil {
			data, err = store.Download(ctx, loc)
		}
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", diag.ParseError{Kind: diag.File, Message: "Cannot open file: " + path}
	}
	return string(data), nil
}

// WriteOutput writes data to a local path, creating parent directories, or
// uploads it when dest is an s3:// url.
func WriteOutput(ctx context.Context, dest string, data []byte, contentType string) error {
	if store.IsS3(dest) {
		loc, err := store.ParseURL(dest)
		if err != nil {
			return err
		}
		return store.Upload(ctx, loc, data, contentType)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "Could not create %s", dir)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.Wrapf(err, "Could not write %s", dest)
	}
	return nil
}
