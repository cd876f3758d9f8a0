// Package scale resolves a Map block's key and scale into pitch letters.
package scale

var validKeys = map[string]bool{"C": true, "D": true, "E": true, "F": true, "G": true, "A": true, "B": true}

var validScales = map[string]bool{"Major": true, "Minor": true, "HarmonicMinor": true}

var mappings = map[string][7]string{
	"C_Major": {"C", "D", "E", "F", "G", "A", "B"},
	"D_Major": {"D", "E", "F#", "G", "A", "B", "C#"},
	"E_Major": {"E", "F#", "G#", "A", "B", "C#", "D#"},
	"F_Major": {"F", "G", "A", "Bb", "C", "D", "E"},
	"G_Major": {"G", "A", "B", "C", "D", "E", "F#"},
	"B_Major": {"B", "C#", "D#", "E", "F#", "G#", "A#"},
	"A_Minor": {"A", "B", "C", "D", "E", "F", "G"},
	"E_Minor": {"E", "F#", "G", "A", "B", "C", "D"},
	"D_Minor": {"D", "E", "F", "G", "A", "Bb", "C"},
}

// pitch class of each spelled letter, C = 0
var pitchClasses = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11,
}

func ValidKey(key string) bool {
	return validKeys[key]
}

func ValidScale(scale string) bool {
	return validScales[scale]
}

// Resolve returns the seven pitch letters for degrees 1..7. Combinations
// missing from the table fall back to C major.
func Resolve(key string, scale string) [7]string {
	if m, ok := mappings[key+"_"+scale]; ok {
		return m
	}
	return mappings["C_Major"]
}

// Known reports whether Resolve has a real entry for the pair.
func Known(key string, scale string) bool {
	_, ok := mappings[key+"_"+scale]
	return ok
}

// PitchClass returns the semitone offset from C for a letter such as "F#".
func PitchClass(letter string) (int, bool) {
	pc, ok := pitchClasses[letter]
	return pc, ok
}
