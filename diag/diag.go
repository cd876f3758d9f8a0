package diag

import (
	"fmt"
	"io"
	"strings"
)

type Kind string

const (
	Syntax       Kind = "SYNTAX"
	Semantic     Kind = "SEMANTIC"
	Logic        Kind = "LOGIC"
	Redefinition Kind = "REDEFINITION"
	File         Kind = "FILE"
)

// ParseError is one accumulated diagnostic. Line is 1-indexed; Source is the
// trimmed original text of that line, empty when the line does not exist.
type ParseError struct {
	Kind    Kind
	Message string
	Line    int
	Source  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s ERROR at line %d: %s", e.Kind, e.Line, e.Message)
}

type List []ParseError

func (l List) Count(kind Kind) int {
	var n int
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Render writes the batch the way the compiler prints it to stderr: a banner,
// one box per error with the offending line underlined, and a total.
func Render(w io.Writer, list List) {
	fmt.Fprint(w, "\n╔════════════════════════════════════════════════════════════════╗\n")
	fmt.Fprint(w, "║                    COMPILATION FAILED                          ║\n")
	fmt.Fprint(w, "╚════════════════════════════════════════════════════════════════╝\n\n")

	for _, e := range list {
		fmt.Fprintf(w, "┌─ [%s ERROR] at line %d\n", e.Kind, e.Line)
		fmt.Fprint(w, "│\n")
		if e.Source != "" {
			fmt.Fprintf(w, "│  %d │ %s\n", e.Line, e.Source)
			fmt.Fprintf(w, "│    │ %s\n", strings.Repeat("^", len(e.Source)))
		}
		fmt.Fprint(w, "│\n")
		fmt.Fprintf(w, "└─ %s\n\n", e.Message)
	}

	fmt.Fprintf(w, "Total errors: %d\n", len(list))
}
