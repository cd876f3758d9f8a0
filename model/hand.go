package model

import "github.com/jsphweid/ams/util"

// Chunk is the run of chords between two '|' separators. Chunks only matter
// for comparing left and right hand timing.
type Chunk = []Chord

type Hand struct {
	Chunks []Chunk
}

func (h Hand) Empty() bool {
	return len(h.Chunks) == 0
}

// ChunkBeats sums the chord durations of chunk i, or 0 if the hand has no such chunk.
func (h Hand) ChunkBeats(i int) float64 {
	if i < 0 || i >= len(h.Chunks) {
		return 0
	}
	durations := make([]float64, 0, len(h.Chunks[i]))
	for _, c := range h.Chunks[i] {
		durations = append(durations, c.Duration)
	}
	return util.Sum(durations)
}
