package model

type Metadata struct {
	Title         string
	Composer      string
	Key           string
	Tempo         int
	TimeSignature string
	Difficulty    int
}

// MapBlock holds the authored key and scale. NoteMapping is derived from
// them by the scale resolver and indexes degree-1.
type MapBlock struct {
	Key         string
	Scale       string
	NoteMapping [7]string
	Line        int
}

// Pitch returns the pitch letter for a scale degree, or "" when the degree
// is outside 1..7.
func (m MapBlock) Pitch(degree int) string {
	if degree < 1 || degree > len(m.NoteMapping) {
		return ""
	}
	return m.NoteMapping[degree-1]
}

type Segment struct {
	ID    int
	Name  string
	Tempo int
	Left  Hand
	Right Hand
	Line  int // 0-indexed line of the Segment header
}

type Macro struct {
	Name string
	Body string
	Line int
}

// Score is the validated model shared by every emitter.
type Score struct {
	Metadata Metadata
	Map      MapBlock
	Macros   map[string]Macro
	Segments []Segment

	// Unreferenced lists ids of segments that Main never calls. Nothing
	// reports them.
	Unreferenced []int
}
