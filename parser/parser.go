// Package parser walks preprocessed AMS lines in a single forward pass and
// builds the score model, accumulating diagnostics instead of stopping at
// the first problem.
package parser

import (
	"fmt"
	"strings"

	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/source"
)

// Parser owns the cursor over an immutable line array. Every sub-parser
// advances cur; none of them backtrack.
type Parser struct {
	lines source.Lines
	cur   int
	score *model.Score
	errs  diag.List

	segmentIDs   map[int]int    // id -> 0-indexed definition line
	segmentNames map[string]int // name -> 0-indexed definition line
	macroLines   map[string]int
	used         map[int]bool
}

func New(lines source.Lines) *Parser {
	return &Parser{
		lines:        lines,
		score:        &model.Score{Macros: make(map[string]model.Macro)},
		segmentIDs:   make(map[int]int),
		segmentNames: make(map[string]int),
		macroLines:   make(map[string]int),
		used:         make(map[int]bool),
	}
}

// Parse preprocesses src and runs the full pass. The score is returned even
// when diagnostics were produced; callers emit only when the list is empty.
func Parse(src string) (*model.Score, diag.List) {
	return New(source.Preprocess(src)).Run()
}

func (p *Parser) Run() (*model.Score, diag.List) {
	p.parseMetadata()

	if !p.parseMap() {
		p.addError(diag.Semantic, "Missing required Map block - every AMS file must define a Map")
		return p.score, p.errs
	}
	if !p.validateMap() {
		return p.score, p.errs
	}
	p.resolveMap()

	hasMain := false
	for !p.done() {
		line := p.line()
		switch {
		case line == "":
			p.cur++
		case strings.HasPrefix(line, "Define "):
			p.parseMacro()
		case strings.HasPrefix(line, "Segment("):
			p.parseSegment()
		case strings.HasPrefix(line, "Main()"):
			hasMain = true
			p.parseMain()
		default:
			p.cur++
		}
		if hasMain {
			break
		}
	}

	if !hasMain {
		p.addError(diag.Semantic, "Missing required Main() block - every AMS file must define playback order")
		return p.score, p.errs
	}

	if len(p.score.Segments) > 0 {
		p.validateSegments()
	}
	return p.score, p.errs
}

func (p *Parser) done() bool {
	return p.cur >= p.lines.Len()
}

func (p *Parser) line() string {
	if p.done() {
		return ""
	}
	return p.lines.Processed[p.cur]
}

// skipBlank moves past empty lines and reports whether a line remains.
func (p *Parser) skipBlank() bool {
	for !p.done() && p.line() == "" {
		p.cur++
	}
	return !p.done()
}

func (p *Parser) addError(kind diag.Kind, msg string) {
	p.addErrorAt(kind, p.cur, msg)
}

func (p *Parser) addErrorAt(kind diag.Kind, line int, msg string) {
	p.errs = append(p.errs, diag.ParseError{
		Kind:    kind,
		Message: msg,
		Line:    line + 1,
		Source:  p.lines.OriginalTrimmed(line),
	})
}

func (p *Parser) addErrorf(kind diag.Kind, format string, args ...any) {
	p.addError(kind, fmt.Sprintf(format, args...))
}
