package midi

import (
	"sort"

	"github.com/jsphweid/ams/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Sonority is the set of keys held down from Tick until the next sonority.
type Sonority struct {
	Tick uint64
	Keys []uint8
}

type keyEvent struct {
	tick uint64
	off  bool
	key  uint8
}

// Sonorities replays a track's note events and returns every non-empty set
// of sounding keys, in tick order. At equal ticks note-offs apply first so
// consecutive chords do not blend.
func Sonorities(track smf.Track) []Sonority {
	var events []keyEvent
	var absTicks uint64
	for _, evt := range track {
		absTicks += uint64(evt.Delta)
		var channel, key, velocity uint8
		msg := gomidi.Message(evt.Message)
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			events = append(events, keyEvent{tick: absTicks, key: key})
		case msg.GetNoteOff(&channel, &key, &velocity):
			events = append(events, keyEvent{tick: absTicks, off: true, key: key})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var res []Sonority
	pressed := make(map[uint8]bool)
	for i, evt := range events {
		if evt.off {
			delete(pressed, evt.key)
		} else {
			pressed[evt.key] = true
		}
		// only the last event at a tick defines the sonority there
		if i+1 < len(events) && events[i+1].tick == evt.tick {
			continue
		}
		if len(pressed) == 0 {
			continue
		}
		res = append(res, Sonority{Tick: evt.tick, Keys: util.SortedKeys(pressed)})
	}
	return res
}
