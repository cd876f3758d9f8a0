// Package source turns raw AMS text into the line array the parser walks.
package source

import "strings"

const whitespace = " \t\n\r"

// Lines keeps processed lines and the original text side by side so that
// Processed[i] and Original[i] always describe source line i+1.
type Lines struct {
	Processed []string
	Original  []string
}

func (l Lines) Len() int {
	return len(l.Processed)
}

// OriginalTrimmed returns the trimmed original text of 0-indexed line i, or
// "" if there is no such line.
func (l Lines) OriginalTrimmed(i int) string {
	if i < 0 || i >= len(l.Original) {
		return ""
	}
	return strings.Trim(l.Original[i], whitespace)
}

func Preprocess(text string) Lines {
	var res Lines
	if text == "" {
		return res
	}
	raw := strings.Split(text, "\n")
	// a trailing newline terminates the last line rather than opening a new one
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		res.Original = append(res.Original, line)
		res.Processed = append(res.Processed, strings.Trim(StripComment(line), whitespace))
	}
	return res
}

// StripComment drops everything from the first "//" not preceded by a
// backslash.
func StripComment(line string) string {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == '/' && line[i+1] == '/' && (i == 0 || line[i-1] != '\\') {
			return line[:i]
		}
	}
	return line
}

// Trim is the whitespace trim used across the grammar.
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}
