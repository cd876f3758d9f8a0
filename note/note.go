// Package note decodes the compact per-note token grammar used inside hand
// blocks: "3#^1!mf.e", "R.h", "1.3.5.h".
package note

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/source"
)

// DegreeError reports a degree outside 1..7. The note is still kept.
type DegreeError struct {
	Token   string
	Degree  int
	InChord bool
}

func (e DegreeError) Error() string {
	if e.InChord {
		return fmt.Sprintf("Invalid note degree in chord: %s (must be 1-7)", e.Token)
	}
	return fmt.Sprintf("Invalid note degree: %s (must be 1-7)", e.Token)
}

type duration struct {
	beats  float64
	dotted bool
}

var durations = map[string]duration{
	"":    {1.0, false},
	".e":  {0.5, false},
	".s":  {0.25, false},
	".h":  {2.0, false},
	".w":  {4.0, false},
	".":   {1.5, true},
	".e.": {0.75, true},
	".h.": {3.0, true},
}

// ParseDuration maps a duration suffix to beats. Anything unrecognised is a
// plain quarter note.
func ParseDuration(suffix string) (float64, bool) {
	if d, ok := durations[suffix]; ok {
		return d.beats, d.dotted
	}
	return 1.0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDynamic(c byte) bool {
	return c == 'p' || c == 'f' || c == 'm'
}

// ParseNote decodes a single note or rest token. Characters it does not
// understand are skipped.
func ParseNote(token string) model.Note {
	n := model.NewNote()
	if token == "" {
		return n
	}

	if token[0] == 'R' {
		n.IsRest = true
		n.Duration, n.IsDotted = ParseDuration(token[1:])
		return n
	}

	i := 0
	for i < len(token) && isDigit(token[i]) {
		i++
	}
	if i > 0 {
		// out of range values saturate, which the range check then reports
		n.Degree, _ = strconv.Atoi(token[:i])
	}

	for i < len(token) {
		c := token[i]
		switch {
		case c == '#':
			n.Accidental = model.AccidentalSharp
			i++
		case c == 'b':
			n.Accidental = model.AccidentalFlat
			i++
		case c == '^':
			i++
			start := i
			if i < len(token) && token[i] == '-' {
				i++
			}
			for i < len(token) && isDigit(token[i]) {
				i++
			}
			if shift, err := strconv.Atoi(token[start:i]); err == nil {
				n.OctaveShift = shift
			}
		case c == '!' || c == '~' || c == '>':
			n.Articulation = model.Articulation(token[i : i+1])
			i++
		case c == '(' && i+1 < len(token) && token[i+1] == 'h':
			n.Articulation = model.ArticulationHold
			i += 3
		case isDynamic(c):
			start := i
			for i < len(token) && isDynamic(token[i]) {
				i++
			}
			n.Dynamic = token[start:i]
		case c == '.':
			n.Duration, n.IsDotted = ParseDuration(token[i:])
			return n
		default:
			i++
		}
	}
	return n
}

// IsChord reports whether the token contains a dot with a digit on both
// sides, which separates "1.3.5.h" from "1.h".
func IsChord(token string) bool {
	for i := 1; i+1 < len(token); i++ {
		if token[i] == '.' && isDigit(token[i-1]) && isDigit(token[i+1]) {
			return true
		}
	}
	return false
}

// splitChord splits on dots followed by a digit, so the dots of a trailing
// duration suffix stay with the last part.
func splitChord(token string) []string {
	var parts []string
	var current strings.Builder
	for i := 0; i < len(token); i++ {
		if token[i] == '.' && i+1 < len(token) && isDigit(token[i+1]) {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteByte(token[i])
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func degreeInRange(d int) bool {
	return d >= constants.MinDegree && d <= constants.MaxDegree
}

// ParseChord decodes one comma-separated item of a chunk, which is either a
// chord or a single note.
func ParseChord(token string) (model.Chord, []error) {
	chord := model.Chord{Duration: 1.0}
	var errs []error

	if !IsChord(token) {
		n := ParseNote(token)
		if !n.IsRest && n.Degree != 0 && !degreeInRange(n.Degree) {
			errs = append(errs, DegreeError{Token: token, Degree: n.Degree})
		}
		chord.Notes = []model.Note{n}
		chord.Duration = n.Duration
		chord.IsDotted = n.IsDotted
		return chord, errs
	}

	parts := splitChord(token)
	if len(parts) == 0 {
		return chord, errs
	}
	chord.Duration, chord.IsDotted = parseDurationOf(parts[len(parts)-1])

	for _, part := range parts {
		if !isDigit(part[0]) {
			continue
		}
		n := ParseNote(part)
		n.Duration = chord.Duration
		n.IsDotted = chord.IsDotted
		if !degreeInRange(n.Degree) {
			errs = append(errs, DegreeError{Token: strconv.Itoa(n.Degree), Degree: n.Degree, InChord: true})
		}
		chord.Notes = append(chord.Notes, n)
	}
	return chord, errs
}

func parseDurationOf(part string) (float64, bool) {
	n := ParseNote(part)
	return n.Duration, n.IsDotted
}

// ParseChunks splits hand data on '|' into chunks and each chunk on ',' into
// chords. Empty chunks are dropped.
func ParseChunks(data string) ([]model.Chunk, []error) {
	var res []model.Chunk
	var errs []error
	for _, chunkStr := range strings.Split(data, "|") {
		chunkStr = source.Trim(chunkStr)
		if chunkStr == "" {
			continue
		}
		var chunk model.Chunk
		for _, part := range strings.Split(chunkStr, ",") {
			part = source.Trim(part)
			if part == "" {
				continue
			}
			chord, chordErrs := ParseChord(part)
			errs = append(errs, chordErrs...)
			chunk = append(chunk, chord)
		}
		if len(chunk) > 0 {
			res = append(res, chunk)
		}
	}
	return res, errs
}
