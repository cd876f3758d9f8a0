package model

type Accidental string

const (
	AccidentalNone  Accidental = ""
	AccidentalSharp Accidental = "#"
	AccidentalFlat  Accidental = "b"
)

type Articulation string

const (
	ArticulationNone     Articulation = ""
	ArticulationStaccato Articulation = "!"
	ArticulationLegato   Articulation = "~"
	ArticulationAccent   Articulation = ">"
	ArticulationHold     Articulation = "(h)"
)

// Note is a single scale degree (or rest) with its decorations.
// OctaveShift is relative to the default octave of the hand playing it.
type Note struct {
	Degree       int
	Accidental   Accidental
	OctaveShift  int
	Duration     float64 // beats
	IsDotted     bool
	Articulation Articulation
	Dynamic      string
	IsRest       bool
}

// NewNote returns a note with the default quarter-note duration.
func NewNote() Note {
	return Note{Duration: 1.0}
}

// Chord is one or more notes sounding together for Duration beats.
type Chord struct {
	Notes    []Note
	Duration float64
	IsDotted bool
}

// Sounds reports whether any note in the chord produces a pitch.
func (c Chord) Sounds() bool {
	for _, n := range c.Notes {
		if !n.IsRest && n.Degree != 0 {
			return true
		}
	}
	return false
}
