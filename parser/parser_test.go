package parser

import (
	"strings"
	"testing"

	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `Title: "Etude"
Composer: "Anon"
Key: C
Tempo: 120
TimeSignature: 4/4
Difficulty: 3

Map {
  Key: C
  Scale: Major
}`

const simpleMain = `
Main() {
  Segment(1, INTRO);
}
`

func build(parts ...string) string {
	return strings.Join(parts, "\n")
}

func TestParsesMinimalScore(t *testing.T) {
	src := build(header, `
Segment(1, INTRO)
  Begin.RIGHT {
    1,2,3,4
  }
END;`, simpleMain)

	score, errs := Parse(src)
	require.Empty(t, errs)

	assert := assert.New(t)
	assert.Equal("Etude", score.Metadata.Title)
	assert.Equal("Anon", score.Metadata.Composer)
	assert.Equal(120, score.Metadata.Tempo)
	assert.Equal("4/4", score.Metadata.TimeSignature)
	assert.Equal(3, score.Metadata.Difficulty)
	assert.Equal([7]string{"C", "D", "E", "F", "G", "A", "B"}, score.Map.NoteMapping)

	require.Len(t, score.Segments, 1)
	seg := score.Segments[0]
	assert.Equal(1, seg.ID)
	assert.Equal("INTRO", seg.Name)
	assert.Equal(120, seg.Tempo)
	assert.True(seg.Left.Empty())
	require.Len(t, seg.Right.Chunks, 1)
	assert.Len(seg.Right.Chunks[0], 4)
	assert.Empty(score.Unreferenced)
}

func TestTempoAndDifficultyRanges(t *testing.T) {
	cases := []struct {
		line  string
		kind  diag.Kind
		count int
	}{
		{"Tempo: 301", diag.Logic, 1},
		{"Tempo: 120", diag.Logic, 0},
		{"Tempo: 0", diag.Logic, 1},
		{"Tempo: fast", diag.Syntax, 1},
		{"Difficulty: 11", diag.Logic, 1},
		{"Difficulty: 10", diag.Logic, 0},
		{"Difficulty: hard", diag.Syntax, 1},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			src := build(c.line, "Map {", "Key: C", "Scale: Major", "}", "Main() {", "}")
			_, errs := Parse(src)
			assert.Equal(t, c.count, errs.Count(c.kind), errs.Error())
			assert.Equal(t, c.count, len(errs))
		})
	}
}

func TestTempoErrorCarriesSourceLine(t *testing.T) {
	_, errs := Parse(build("Title: x", "Tempo: 301 // too fast", "Map {", "Key: C", "Scale: Major", "}", "Main() {", "}"))
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, "Tempo: 301 // too fast", errs[0].Source)
	assert.Equal(t, "Tempo must be between 1 and 300 BPM, got: 301", errs[0].Message)
}

func TestMissingMapIsFatal(t *testing.T) {
	score, errs := Parse(build("Title: x", "Segment(1, A)", "END;"))
	require.Len(t, errs, 1)
	assert.Equal(t, diag.Semantic, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Missing required Map block")
	assert.Empty(t, score.Segments)
}

func TestUnclosedMapIsTreatedAsAbsent(t *testing.T) {
	_, errs := Parse(build("Map {", "Key: C", "Scale: Major"))
	require.Len(t, errs, 2)
	assert.Equal(t, diag.Syntax, errs[0].Kind)
	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, diag.Semantic, errs[1].Kind)
}

func TestMapValidation(t *testing.T) {
	cases := []struct {
		name string
		body []string
		kind diag.Kind
	}{
		{"missing key", []string{"Scale: Major"}, diag.Semantic},
		{"missing scale", []string{"Key: C"}, diag.Semantic},
		{"invalid key", []string{"Key: H", "Scale: Major"}, diag.Logic},
		{"invalid scale", []string{"Key: C", "Scale: Dorian"}, diag.Logic},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lines := append([]string{"Map {"}, c.body...)
			lines = append(lines, "}", "Main() {", "}")
			_, errs := Parse(build(lines...))
			require.Len(t, errs, 1)
			assert.Equal(t, c.kind, errs[0].Kind)
			assert.Equal(t, 1, errs[0].Line)
		})
	}
}

func TestUnexpectedMapContentIsNotFatal(t *testing.T) {
	score, errs := Parse(build("Map {", "Key: D", "Scale: Major", "Mode: Lydian", "}", "Main() {", "}"))
	require.Len(t, errs, 1)
	assert.Equal(t, diag.Syntax, errs[0].Kind)
	assert.Equal(t, "F#", score.Map.NoteMapping[2])
}

func TestMissingMainIsFatal(t *testing.T) {
	_, errs := Parse(build(header, "Segment(1, A)", "Begin.LEFT {", "1", "}", "END;"))
	require.Len(t, errs, 1)
	assert.Equal(t, diag.Semantic, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Missing required Main() block")
}

func TestDuplicateSegmentKeepsFirst(t *testing.T) {
	seg := build("Segment(1, A)", "Begin.RIGHT {", "1,2", "}", "END;")
	score, errs := Parse(build(header, seg, seg, "Main() {", "Segment(1, A);", "}"))

	require.Len(t, errs, 1)
	assert.Equal(t, diag.Redefinition, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Segment with ID 1 already defined at line 12")
	assert.Len(t, score.Segments, 1)
}

func TestDuplicateSegmentName(t *testing.T) {
	score, errs := Parse(build(header,
		"Segment(1, A)", "Begin.RIGHT {", "1", "}", "END;",
		"Segment(2, A)", "Begin.RIGHT {", "1", "}", "END;",
		"Main() {", "}"))

	require.Len(t, errs, 1)
	assert.Equal(t, diag.Redefinition, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Segment with name 'A'")
	assert.Len(t, score.Segments, 1)
	assert.Equal(t, []int{1}, score.Unreferenced)
}

func TestMacroRedefinition(t *testing.T) {
	score, errs := Parse(build(header,
		"Define RIFF {", "1,2,3", "}",
		"Define RIFF {", "4,5,6", "}",
		"Main() {", "}"))

	require.Len(t, errs, 1)
	assert.Equal(t, diag.Redefinition, errs[0].Kind)
	require.Contains(t, score.Macros, "RIFF")
	assert.Equal(t, "1,2,3", score.Macros["RIFF"].Body)
}

func TestMacroErrors(t *testing.T) {
	_, errs := Parse(build(header, "Define lower {", "Main() {", "}"))
	require.Len(t, errs, 1)
	assert.Equal(t, diag.Syntax, errs[0].Kind)

	_, errs = Parse(build(header, "Define RIFF {", "1,2"))
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "Unclosed Define block for macro 'RIFF'")
	assert.Contains(t, errs[1].Message, "Missing required Main() block")
}

func TestSegmentBodyErrors(t *testing.T) {
	score, errs := Parse(build(header,
		"Segment(1, A)",
		"Tempo(400)",
		"Begin.RIGHT {", "1", "}",
		"Begin.RIGHT {", "2", "}",
		"Volume(3)",
		"END;",
		"Main() {", "Segment(1, A);", "}"))

	require.Len(t, errs, 3)
	assert.Equal(t, diag.Logic, errs[0].Kind)
	assert.Equal(t, "Invalid tempo in segment: 400", errs[0].Message)
	assert.Equal(t, diag.Redefinition, errs[1].Kind)
	assert.Equal(t, diag.Syntax, errs[2].Kind)

	require.Len(t, score.Segments, 1)
	assert.Equal(t, 400, score.Segments[0].Tempo)
	assert.Equal(t, 2, score.Segments[0].Right.Chunks[0][0].Notes[0].Degree)
}

func TestSegmentWithoutHands(t *testing.T) {
	score, errs := Parse(build(header, "Segment(1, A)", "END;", "Main() {", "}"))
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs.Count(diag.Logic))
	assert.Len(t, score.Segments, 1)
}

func TestSegmentMissingEnd(t *testing.T) {
	score, errs := Parse(build(header, "Segment(1, A)", "Begin.LEFT {", "1", "}"))
	assert.Equal(t, 1, errs.Count(diag.Syntax))
	assert.Equal(t, 1, errs.Count(diag.Semantic))
	assert.Empty(t, score.Segments)
}

func TestHandIgnoresSyncAndPosition(t *testing.T) {
	score, errs := Parse(build(header,
		"Segment(1, A)",
		"Begin.LEFT {", "SYNC()", "Position(3)", "1.h, 5.h |", "1.w", "}",
		"Begin.RIGHT {", "3,4,5,6 | 1.3.5.w", "}",
		"END;",
		"Main() {", "Segment(1, A);", "}"))

	require.Empty(t, errs)
	assert.Len(t, score.Segments[0].Left.Chunks, 2)
	assert.Len(t, score.Segments[0].Right.Chunks, 2)
}

func TestHandDegreeErrorIsLogic(t *testing.T) {
	score, errs := Parse(build(header, "Segment(1, A)", "Begin.RIGHT {", "1,9", "}", "END;", "Main() {", "}"))
	require.Len(t, errs, 1)
	assert.Equal(t, diag.Logic, errs[0].Kind)
	// reported at the line closing the hand, once its data has been read
	assert.Equal(t, 15, errs[0].Line)
	assert.Equal(t, 9, score.Segments[0].Right.Chunks[0][1].Notes[0].Degree)
}

func TestAlignmentMismatch(t *testing.T) {
	_, errs := Parse(build(header,
		"Segment(1, A)",
		"Begin.LEFT {", "1.w", "}",
		"Begin.RIGHT {", "1,2,3", "}",
		"END;",
		"Main() {", "Segment(1, A);", "}"))

	require.Len(t, errs, 1)
	assert.Equal(t, diag.Logic, errs[0].Kind)
	assert.Equal(t, "Duration mismatch in segment 'A' chunk 1: LEFT=4.000000 beats, RIGHT=3.000000 beats", errs[0].Message)
	assert.Equal(t, 12, errs[0].Line)
}

func TestAlignmentMissingChunkCountsAsZero(t *testing.T) {
	_, errs := Parse(build(header,
		"Segment(1, A)",
		"Begin.LEFT {", "1.w | 1.w", "}",
		"Begin.RIGHT {", "1.w", "}",
		"END;",
		"Main() {", "}"))

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "chunk 2: LEFT=4.000000 beats, RIGHT=0.000000 beats")
}

func TestAlignmentTolerance(t *testing.T) {
	chunk := func(beats float64) model.Chunk {
		return model.Chunk{{Duration: beats, Notes: []model.Note{{Degree: 1, Duration: beats}}}}
	}
	p := New(source.Lines{})
	p.score.Segments = []model.Segment{{
		ID:    1,
		Name:  "A",
		Left:  model.Hand{Chunks: []model.Chunk{chunk(1.0)}},
		Right: model.Hand{Chunks: []model.Chunk{chunk(0.995)}},
	}}
	p.validateSegments()
	assert.Empty(t, p.errs)

	p.score.Segments[0].Right = model.Hand{Chunks: []model.Chunk{chunk(0.98)}}
	p.validateSegments()
	assert.Len(t, p.errs, 1)
}

func TestMainBlockChecks(t *testing.T) {
	seg := build("Segment(1, A)", "Begin.RIGHT {", "1", "}", "END;")
	score, errs := Parse(build(header, seg,
		"Main()",
		"{",
		"Segment(1, WHATEVER);",
		"Segment(2, B);",
		"Segment(1 A);",
		"LEFT: legato",
		"RIGHT: staccato",
		"Repeat(0) {",
		"Play();",
		"}"))

	require.Len(t, errs, 4)
	assert.Equal(t, diag.Semantic, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "Undefined segment ID: 2")
	assert.Equal(t, diag.Syntax, errs[1].Kind)
	assert.Equal(t, diag.Logic, errs[2].Kind)
	assert.Equal(t, "Repeat count must be positive, got: 0", errs[2].Message)
	assert.Equal(t, diag.Syntax, errs[3].Kind)
	assert.Contains(t, errs[3].Message, "Play();")
	assert.Empty(t, score.Unreferenced)
}

func TestRepeatBraceClosesMain(t *testing.T) {
	seg := build("Segment(1, A)", "Begin.RIGHT {", "1", "}", "END;")

	_, errs := Parse(build(header, seg, "Main() {", "Repeat(2) {", "Segment(1, A);", "}"))
	assert.Empty(t, errs)

	// lines after the Repeat's brace are past the end of Main
	score, errs := Parse(build(header, seg,
		"Main() {",
		"Repeat(3) {",
		"}",
		"Segment(9, Z);",
		"}"))
	assert.Empty(t, errs)
	assert.Equal(t, []int{1}, score.Unreferenced)
}

func TestMainBraceErrors(t *testing.T) {
	_, errs := Parse(build(header, "Main()", "Segment(1, A);"))
	require.Len(t, errs, 1)
	assert.Equal(t, "Expected '{' after Main()", errs[0].Message)

	_, errs = Parse(build(header, "Main()"))
	require.Len(t, errs, 1)
	assert.Equal(t, "Main() block missing opening '{'", errs[0].Message)

	_, errs = Parse(build(header, "Main() {", "LEFT: x"))
	require.Len(t, errs, 1)
	assert.Equal(t, "Main() block missing closing '}'", errs[0].Message)
}

func TestContentAfterMainIsIgnored(t *testing.T) {
	_, errs := Parse(build(header, "Main() {", "}", "Segment(1, A)", "garbage"))
	assert.Empty(t, errs)
}

func TestExtractValue(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Moonlight", extractValue(`Title:   "Moonlight"  `))
	assert.Equal("4/4", extractValue("TimeSignature: 4/4"))
	assert.Equal(`"`, extractValue(`Title: "`))
	assert.Equal("", extractValue("Title"))
}

func TestParseLeadingInt(t *testing.T) {
	n, err := parseLeadingInt("120 BPM")
	assert.NoError(t, err)
	assert.Equal(t, 120, n)

	n, err = parseLeadingInt("-4")
	assert.NoError(t, err)
	assert.Equal(t, -4, n)

	_, err = parseLeadingInt("fast")
	assert.Error(t, err)
}
