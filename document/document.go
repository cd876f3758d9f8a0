// Package document renders a score as the versioned JSON document.
//
// Strings are written exactly as authored, without JSON escaping, to match
// the documents existing tooling already consumes.
package document

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/model"
)

type field struct {
	key   string
	value any
}

type object []field

type array []any

// Emit returns the document for score, terminated by a newline.
func Emit(score *model.Score) []byte {
	var buf bytes.Buffer
	write(&buf, build(score), 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func build(score *model.Score) object {
	md := score.Metadata
	mapping := make(array, 0, len(score.Map.NoteMapping))
	for _, letter := range score.Map.NoteMapping {
		mapping = append(mapping, letter)
	}
	segments := make(array, 0, len(score.Segments))
	for _, seg := range score.Segments {
		segments = append(segments, segmentObject(seg, score.Map))
	}
	return object{
		{"version", constants.FormatVersion},
		{"title", md.Title},
		{"composer", md.Composer},
		{"key", md.Key},
		{"tempo", md.Tempo},
		{"timeSignature", md.TimeSignature},
		{"difficulty", md.Difficulty},
		{"map", array{object{
			{"key", score.Map.Key},
			{"scale", score.Map.Scale},
			{"noteMapping", mapping},
		}}},
		{"segments", segments},
	}
}

func segmentObject(seg model.Segment, m model.MapBlock) object {
	return object{
		{"id", seg.ID},
		{"name", seg.Name},
		{"tempo", seg.Tempo},
		{"left", handObject(seg.Left, m)},
		{"right", handObject(seg.Right, m)},
	}
}

func handObject(hand model.Hand, m model.MapBlock) object {
	chunks := make(array, 0, len(hand.Chunks))
	for _, chunk := range hand.Chunks {
		chords := make(array, 0, len(chunk))
		for _, chord := range chunk {
			chords = append(chords, chordObject(chord, m))
		}
		chunks = append(chunks, object{{"chords", chords}})
	}
	return object{{"chunks", chunks}}
}

func chordObject(chord model.Chord, m model.MapBlock) object {
	notes := make(array, 0, len(chord.Notes))
	for _, n := range chord.Notes {
		notes = append(notes, noteObject(n, m))
	}
	return object{
		{"duration", chord.Duration},
		{"isDotted", chord.IsDotted},
		{"notes", notes},
	}
}

func noteObject(n model.Note, m model.MapBlock) object {
	obj := object{{"isRest", n.IsRest}}
	if !n.IsRest && n.Degree > 0 {
		obj = append(obj,
			field{"degree", n.Degree},
			field{"accidental", string(n.Accidental)},
			field{"octaveShift", n.OctaveShift},
			field{"pitch", m.Pitch(n.Degree)},
		)
	}
	return append(obj,
		field{"duration", n.Duration},
		field{"isDotted", n.IsDotted},
		field{"articulation", string(n.Articulation)},
		field{"dynamic", n.Dynamic},
	)
}

func indent(buf *bytes.Buffer, level int) {
	buf.WriteString(strings.Repeat("  ", level))
}

func write(buf *bytes.Buffer, v any, level int) {
	switch val := v.(type) {
	case object:
		if len(val) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, f := range val {
			indent(buf, level+1)
			buf.WriteString(`"` + f.key + `": `)
			write(buf, f.value, level+1)
			if i < len(val)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, level)
		buf.WriteByte('}')
	case array:
		if len(val) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range val {
			indent(buf, level+1)
			write(buf, item, level+1)
			if i < len(val)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, level)
		buf.WriteByte(']')
	case string:
		buf.WriteString(`"` + val + `"`)
	case int:
		buf.WriteString(strconv.Itoa(val))
	case float64:
		buf.WriteString(formatNumber(val))
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	}
}

// formatNumber prints six significant digits and drops trailing zeros, so
// 1.0 is "1" and 0.75 is "0.75".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
