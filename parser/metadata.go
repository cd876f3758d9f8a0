package parser

import (
	"strings"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/scale"
)

// parseMetadata consumes header lines until the Map block opens. Unknown
// lines are ignored.
func (p *Parser) parseMetadata() {
	md := &p.score.Metadata
	for p.skipBlank() {
		line := p.line()
		switch {
		case strings.HasPrefix(line, "Title:"):
			md.Title = extractValue(line)
		case strings.HasPrefix(line, "Composer:"):
			md.Composer = extractValue(line)
		case strings.HasPrefix(line, "Key:"):
			md.Key = extractValue(line)
		case strings.HasPrefix(line, "Tempo:"):
			value := extractValue(line)
			tempo, err := parseLeadingInt(value)
			if err != nil {
				p.addError(diag.Syntax, "Invalid tempo value: "+value)
				break
			}
			md.Tempo = tempo
			if tempo < constants.MinTempo || tempo > constants.MaxTempo {
				p.addError(diag.Logic, "Tempo must be between 1 and 300 BPM, got: "+value)
			}
		case strings.HasPrefix(line, "TimeSignature:"):
			md.TimeSignature = extractValue(line)
		case strings.HasPrefix(line, "Difficulty:"):
			value := extractValue(line)
			difficulty, err := parseLeadingInt(value)
			if err != nil {
				p.addError(diag.Syntax, "Invalid difficulty value: "+value)
				break
			}
			md.Difficulty = difficulty
			if difficulty < constants.MinDifficulty || difficulty > constants.MaxDifficulty {
				p.addError(diag.Logic, "Difficulty must be between 0 and 10, got: "+value)
			}
		case strings.HasPrefix(line, "Map {"):
			return
		}
		p.cur++
	}
}

// parseMap reads the Map block at the cursor. It returns false when the
// block is absent or never closed.
func (p *Parser) parseMap() bool {
	if p.done() || !strings.HasPrefix(p.line(), "Map {") {
		return false
	}
	m := &p.score.Map
	m.Line = p.cur
	p.cur++

	for p.skipBlank() {
		line := p.line()
		switch {
		case line == "}":
			p.cur++
			return true
		case strings.HasPrefix(line, "Key:"):
			m.Key = extractValue(line)
		case strings.HasPrefix(line, "Scale:"):
			m.Scale = extractValue(line)
		default:
			p.addError(diag.Syntax, "Unexpected content in Map block: "+line)
		}
		p.cur++
	}

	p.addErrorAt(diag.Syntax, m.Line, "Unclosed Map block - missing '}'")
	return false
}

func (p *Parser) validateMap() bool {
	m := p.score.Map
	switch {
	case m.Key == "":
		p.addErrorAt(diag.Semantic, m.Line, "Map block must specify a Key")
	case m.Scale == "":
		p.addErrorAt(diag.Semantic, m.Line, "Map block must specify a Scale")
	case !scale.ValidKey(m.Key):
		p.addErrorAt(diag.Logic, m.Line, "Invalid key '"+m.Key+"'. Valid keys: C, D, E, F, G, A, B")
	case !scale.ValidScale(m.Scale):
		p.addErrorAt(diag.Logic, m.Line, "Invalid scale '"+m.Scale+"'. Valid scales: Major, Minor, HarmonicMinor")
	default:
		return true
	}
	return false
}

func (p *Parser) resolveMap() {
	p.score.Map.NoteMapping = scale.Resolve(p.score.Map.Key, p.score.Map.Scale)
}
