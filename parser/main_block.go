package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/diag"
)

var (
	segmentCallRegex = regexp.MustCompile(`Segment\((\d+),\s*([A-Z_]+)\);`)
	repeatRegex      = regexp.MustCompile(`Repeat\((\d+)\)\s*\{`)
)

// parseMain checks the playback order. Main is always the last construct
// read; the cursor is left after it.
func (p *Parser) parseMain() {
	mainLine := p.cur

	if strings.Contains(p.line(), "{") {
		p.cur++
	} else {
		p.cur++
		if !p.skipBlank() {
			p.addErrorAt(diag.Syntax, mainLine, "Main() block missing opening '{'")
			return
		}
		if p.line() != "{" {
			p.addError(diag.Syntax, "Expected '{' after Main()")
			return
		}
		p.cur++
	}

	// the first bare '}' ends Main, including one that closes a Repeat
	closed := false
	for p.skipBlank() {
		line := p.line()
		if line == "}" {
			p.cur++
			closed = true
			break
		}

		switch {
		case strings.HasPrefix(line, "Segment("):
			p.checkSegmentCall(line)
		case strings.HasPrefix(line, "Repeat("):
			p.checkRepeat(line)
		case strings.HasPrefix(line, "LEFT:"), strings.HasPrefix(line, "RIGHT:"):
			// inline hand commands carry no checks
		case line == "{":
		default:
			p.addError(diag.Syntax, "Unexpected content in Main block: "+line)
		}
		p.cur++
	}

	if !closed {
		p.addErrorAt(diag.Syntax, mainLine, "Main() block missing closing '}'")
	}

	for _, seg := range p.score.Segments {
		if !p.used[seg.ID] {
			p.score.Unreferenced = append(p.score.Unreferenced, seg.ID)
		}
	}
}

// checkSegmentCall resolves a call by id only; the name in the call is not
// compared with the definition.
func (p *Parser) checkSegmentCall(line string) {
	match := segmentCallRegex.FindStringSubmatch(line)
	if match == nil {
		p.addError(diag.Syntax, "Invalid Segment call syntax - expected: Segment(id, NAME);")
		return
	}
	id, _ := strconv.Atoi(match[1])
	if _, ok := p.segmentIDs[id]; !ok {
		p.addErrorf(diag.Semantic, "Undefined segment ID: %d (Segment not defined before Main block)", id)
		return
	}
	p.used[id] = true
}

func (p *Parser) checkRepeat(line string) {
	match := repeatRegex.FindStringSubmatch(line)
	if match == nil {
		p.addError(diag.Syntax, "Invalid Repeat syntax - expected: Repeat(count) {")
		return
	}
	count, _ := strconv.Atoi(match[1])
	if count <= 0 {
		p.addErrorf(diag.Logic, "Repeat count must be positive, got: %d", count)
	}
}
