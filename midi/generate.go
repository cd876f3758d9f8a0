// Package midi encodes a score as a Standard MIDI File and decodes SMF
// bytes back for inspection.
package midi

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/scale"
	"github.com/jsphweid/ams/util"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const (
	formatMultiTrack = 1
	trackCount       = 3

	leftHandName  = "Left Hand"
	rightHandName = "Right Hand"
)

var velocities = map[string]int{
	"pp": 40,
	"p":  60,
	"mp": 75,
	"mf": 90,
	"f":  105,
	"ff": 120,
}

type handTrack struct {
	name    string
	channel uint8
	octave  int
	hand    func(model.Segment) model.Hand
}

var handTracks = []handTrack{
	{leftHandName, constants.LeftHandChannel, constants.LeftHandOctave, func(s model.Segment) model.Hand { return s.Left }},
	{rightHandName, constants.RightHandChannel, constants.RightHandOctave, func(s model.Segment) model.Hand { return s.Right }},
}

// Emit writes a format 1 file with a meta track followed by one track per
// hand. Segments are played in definition order.
func Emit(score *model.Score) []byte {
	var w Writer
	w.Header(formatMultiTrack, trackCount, constants.TicksPerQuarter)

	writeMetaTrack(&w, score.Metadata)
	for _, t := range handTracks {
		writeHandTrack(&w, score, t)
	}
	return w.Bytes()
}

func writeMetaTrack(w *Writer, meta model.Metadata) {
	w.StartTrack()
	w.Delta(0)
	w.TrackName(meta.Title)
	w.Delta(0)
	w.Tempo(MicrosPerQuarter(meta.Tempo))
	w.Delta(0)
	num, denom := ParseTimeSignature(meta.TimeSignature)
	w.TimeSignature(num, denom)
	w.Delta(0)
	w.EndOfTrack()
	w.EndTrack()
}

func writeHandTrack(w *Writer, score *model.Score, t handTrack) {
	w.StartTrack()
	w.Delta(0)
	w.TrackName(t.name)
	w.Delta(0)
	w.Message(gomidi.ProgramChange(t.channel, 0))

	// silence carried forward until the next event
	var pending uint32
	for _, seg := range score.Segments {
		for _, chunk := range t.hand(seg).Chunks {
			for _, chord := range chunk {
				if len(chord.Notes) == 0 {
					continue
				}
				ticks := Ticks(chord.Duration)
				if chord.Notes[0].Articulation == model.ArticulationStaccato {
					ticks /= 2
				}

				var keys []uint8
				var vels []uint8
				for _, n := range chord.Notes {
					if n.IsRest || n.Degree == 0 {
						continue
					}
					keys = append(keys, Key(score.Map.Pitch(n.Degree), t.octave, n.OctaveShift))
					vels = append(vels, Velocity(n))
				}
				if len(keys) == 0 {
					pending += ticks
					continue
				}

				for i, key := range keys {
					if i == 0 {
						w.Delta(pending)
					} else {
						w.Delta(0)
					}
					w.Message(gomidi.NoteOn(t.channel, key, vels[i]))
				}
				pending = 0
				for i, key := range keys {
					if i == 0 {
						w.Delta(ticks)
					} else {
						w.Delta(0)
					}
					w.Message(gomidi.NoteOffVelocity(t.channel, key, constants.ReleaseVelocity))
				}
			}
		}
	}

	w.Delta(pending)
	w.EndOfTrack()
	w.EndTrack()
}

// Ticks converts beats to ticks at the fixed division.
func Ticks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * constants.TicksPerQuarter))
}

// MicrosPerQuarter falls back to the default BPM for non-positive tempos.
func MicrosPerQuarter(bpm int) uint32 {
	if bpm <= 0 {
		bpm = constants.DefaultBPM
	}
	return uint32(60000000 / bpm)
}

// ParseTimeSignature reads "n/d", returning 4/4 when it is malformed.
func ParseTimeSignature(sig string) (uint8, uint8) {
	parts := strings.Split(sig, "/")
	if len(parts) != 2 {
		return 4, 4
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || num < 1 || num > math.MaxUint8 {
		return 4, 4
	}
	denom, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || denom < 1 || denom > math.MaxUint8 {
		return 4, 4
	}
	return uint8(num), uint8(denom)
}

// Key resolves a pitch letter to a MIDI note number. Unknown letters map to
// middle C.
func Key(letter string, octave int, shift int) uint8 {
	pc, ok := scale.PitchClass(letter)
	if !ok {
		return constants.FallbackMidiNote
	}
	return uint8(util.Clamp((octave+shift+1)*12+pc, 0, 127))
}

func Velocity(n model.Note) uint8 {
	v, ok := velocities[n.Dynamic]
	if !ok {
		v = constants.DefaultVelocity
	}
	switch n.Articulation {
	case model.ArticulationStaccato:
		v = util.Clamp(v+20, 0, 127)
	case model.ArticulationLegato:
		v = util.Clamp(v-10, 40, 127)
	case model.ArticulationAccent:
		v = util.Clamp(v+30, 0, 127)
	}
	return uint8(v)
}
