package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/note"
)

var (
	defineRegex  = regexp.MustCompile(`Define\s+([A-Z_]+)\s*\{`)
	segmentRegex = regexp.MustCompile(`Segment\((\d+),\s*([A-Z_]+)\)`)
)

// parseMacro records a Define block. Bodies are kept as raw text; they are
// never expanded.
func (p *Parser) parseMacro() {
	match := defineRegex.FindStringSubmatch(p.line())
	if match == nil {
		p.addError(diag.Syntax, "Invalid Define syntax - expected: Define MACRO_NAME {")
		p.cur++
		return
	}

	name := match[1]
	if prev, ok := p.macroLines[name]; ok {
		p.addErrorf(diag.Redefinition, "Macro '%s' already defined at line %d", name, prev+1)
		p.cur++
		return
	}

	defLine := p.cur
	p.macroLines[name] = defLine
	p.cur++

	var body []string
	for !p.done() {
		line := p.line()
		if line == "}" {
			p.score.Macros[name] = model.Macro{Name: name, Body: strings.Join(body, " "), Line: defLine}
			p.cur++
			return
		}
		body = append(body, line)
		p.cur++
	}
	p.addErrorAt(diag.Syntax, defLine, fmt.Sprintf("Unclosed Define block for macro '%s' - missing '}'", name))
}

func (p *Parser) parseSegment() {
	match := segmentRegex.FindStringSubmatch(p.line())
	if match == nil {
		p.addError(diag.Syntax, "Invalid Segment syntax - expected: Segment(id, NAME)")
		p.cur++
		return
	}

	id, _ := strconv.Atoi(match[1])
	seg := model.Segment{
		ID:    id,
		Name:  match[2],
		Tempo: p.score.Metadata.Tempo,
		Line:  p.cur,
	}

	if prev, ok := p.segmentIDs[seg.ID]; ok {
		p.addErrorf(diag.Redefinition, "Segment with ID %d already defined at line %d", seg.ID, prev+1)
		p.cur++
		return
	}
	if prev, ok := p.segmentNames[seg.Name]; ok {
		p.addErrorf(diag.Redefinition, "Segment with name '%s' already defined at line %d", seg.Name, prev+1)
		p.cur++
		return
	}
	p.segmentIDs[seg.ID] = p.cur
	p.segmentNames[seg.Name] = p.cur
	p.cur++

	hasLeft, hasRight := false, false
	for p.skipBlank() {
		line := p.line()
		switch {
		case line == "END;":
			if !hasLeft && !hasRight {
				p.addErrorAt(diag.Logic, seg.Line, fmt.Sprintf("Segment '%s' has no hand blocks defined", seg.Name))
			}
			p.score.Segments = append(p.score.Segments, seg)
			p.cur++
			return
		case strings.HasPrefix(line, "Tempo("):
			seg.Tempo = extractNumber(line)
			if seg.Tempo < constants.MinTempo || seg.Tempo > constants.MaxTempo {
				p.addErrorf(diag.Logic, "Invalid tempo in segment: %d", seg.Tempo)
			}
		case strings.HasPrefix(line, "Begin.LEFT {"):
			if hasLeft {
				p.addErrorf(diag.Redefinition, "Multiple Begin.LEFT blocks in segment '%s'", seg.Name)
			}
			hasLeft = true
			seg.Left = p.parseHand()
		case strings.HasPrefix(line, "Begin.RIGHT {"):
			if hasRight {
				p.addErrorf(diag.Redefinition, "Multiple Begin.RIGHT blocks in segment '%s'", seg.Name)
			}
			hasRight = true
			seg.Right = p.parseHand()
		default:
			p.addError(diag.Syntax, "Unexpected content in segment: "+line)
		}
		p.cur++
	}

	p.addErrorAt(diag.Syntax, seg.Line, fmt.Sprintf("Segment '%s' missing END; terminator", seg.Name))
}

// parseHand collects the lines of a Begin.LEFT/RIGHT block and decodes them
// into chunks. It leaves the cursor on the closing '}' so the segment loop
// steps past it.
func (p *Parser) parseHand() model.Hand {
	start := p.cur
	p.cur++

	var data []string
	closed := false
	for p.skipBlank() {
		line := p.line()
		if line == "}" {
			closed = true
			break
		}
		if !strings.HasPrefix(line, "SYNC()") && !strings.HasPrefix(line, "Position(") {
			data = append(data, line)
		}
		p.cur++
	}
	if !closed {
		p.addErrorAt(diag.Syntax, start, "Unclosed hand block - missing '}'")
	}

	var hand model.Hand
	if len(data) == 0 {
		return hand
	}
	chunks, errs := note.ParseChunks(strings.Join(data, " "))
	for _, err := range errs {
		p.addError(diag.Logic, err.Error())
	}
	hand.Chunks = chunks
	return hand
}
