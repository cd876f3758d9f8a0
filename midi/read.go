package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Read decodes a Standard MIDI File.
func Read(data []byte) (s *smf.SMF, e error) {
	// the decoder can panic on truncated input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("Error parsing midi file... %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return Read(dat)
}

// Describe prints every event of every track with its absolute tick.
func Describe(w io.Writer, s *smf.SMF) {
	fmt.Fprintf(w, "TimeFormat: %v\n", s.TimeFormat)
	for i, track := range s.Tracks {
		fmt.Fprintf(w, "Track %d (%d events)\n", i, len(track))
		var absTicks uint64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			fmt.Fprintf(w, "  %8d  %s\n", absTicks, evt.Message.String())
		}
	}
}
