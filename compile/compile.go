// Package compile runs the shared front end once and hands the validated
// score to the back end for the requested output format.
package compile

import (
	"fmt"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/document"
	"github.com/jsphweid/ams/midi"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/parser"
	"github.com/jsphweid/ams/util"
	"github.com/pkg/errors"
)

type Format string

const (
	JSON Format = "json"
	MIDI Format = "midi"
)

var Formats = []Format{JSON, MIDI}

var ErrUnknownFormat = errors.New("unknown output format")

type Emitter interface {
	Emit(score *model.Score) ([]byte, error)
	Extension() string
	ContentType() string
}

type jsonEmitter struct{}

func (jsonEmitter) Emit(score *model.Score) ([]byte, error) { return document.Emit(score), nil }
func (jsonEmitter) Extension() string                       { return ".json" }
func (jsonEmitter) ContentType() string                     { return "application/json" }

type midiEmitter struct{}

func (midiEmitter) Emit(score *model.Score) ([]byte, error) { return midi.Emit(score), nil }
func (midiEmitter) Extension() string                       { return ".mid" }
func (midiEmitter) ContentType() string                     { return "audio/midi" }

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func EmitterFor(f Format) (Emitter, error) {
	switch f {
	case JSON:
		return jsonEmitter{}, nil
	case MIDI:
		return midiEmitter{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(f))
}

// Parse runs preprocessing, the block walker and validation.
func Parse(src string) (*model.Score, diag.List) {
	return parser.Parse(src)
}

// Build parses src and emits it in format f. Nothing is emitted unless the
// diagnostic list is empty.
func Build(src string, f Format) ([]byte, diag.List, error) {
	e, err := EmitterFor(f)
	if err != nil {
		return nil, nil, err
	}
	score, errs := Parse(src)
	if len(errs) > 0 {
		return nil, errs, nil
	}
	out, err := e.Emit(score)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "emitting %s", f)
	}
	return out, nil, nil
}

// OutputPath is where the compiled file for input goes: the same stem with
// the format's extension, moved into the configured output dir if any.
func OutputPath(input string, f Format) (string, error) {
	e, err := EmitterFor(f)
	if err != nil {
		return "", err
	}
	return util.InDir(util.ReplaceExtension(input, e.Extension()), constants.GetOutDir()), nil
}

// Summary is the one-paragraph description printed after a successful
// compile.
func Summary(score *model.Score) string {
	md := score.Metadata
	return fmt.Sprintf("Title:      %s\nComposer:   %s\nKey:        %s %s\nTempo:      %d BPM\nSegments:   %d\n",
		md.Title, md.Composer, md.Key, score.Map.Scale, md.Tempo, len(score.Segments))
}
