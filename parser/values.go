package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/source"
)

var (
	firstNumberRegex = regexp.MustCompile(`\d+`)
	errNoDigits      = errors.New("no digits")
)

// extractValue returns the text after the first ':' with surrounding quotes
// removed.
func extractValue(line string) string {
	pos := strings.Index(line, ":")
	if pos == -1 {
		return ""
	}
	value := source.Trim(line[pos+1:])
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// extractNumber returns the first run of digits in line, or 0.
func extractNumber(line string) int {
	m := firstNumberRegex.FindString(line)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// parseLeadingInt reads an optionally signed integer prefix and ignores the
// rest, so "120 BPM" is 120. A value with no leading digits is an error.
func parseLeadingInt(s string) (int, error) {
	s = source.Trim(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, errNoDigits
	}
	return strconv.Atoi(s[:end])
}
