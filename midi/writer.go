package midi

import "encoding/binary"

const (
	chunkHeader = "MThd"
	chunkTrack  = "MTrk"

	metaPrefix        = 0xFF
	metaTrackName     = 0x03
	metaEndOfTrack    = 0x2F
	metaTempo         = 0x51
	metaTimeSignature = 0x58

	vlqMask     = 0x7F
	vlqContinue = 0x80
)

// Writer accumulates an SMF byte stream. Track lengths are written as a
// placeholder by StartTrack and patched by EndTrack.
type Writer struct {
	data      []byte
	lengthPos int
}

// AppendVarLen appends v as a variable-length quantity: seven bits per byte,
// most significant group first, continuation bit on all but the last byte.
func AppendVarLen(dst []byte, v uint32) []byte {
	var groups [5]byte
	n := 0
	for {
		groups[n] = byte(v & vlqMask)
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}
	for i := n - 1; i > 0; i-- {
		dst = append(dst, groups[i]|vlqContinue)
	}
	return append(dst, groups[0])
}

func (w *Writer) Header(format, tracks, division uint16) {
	w.data = append(w.data, chunkHeader...)
	w.data = binary.BigEndian.AppendUint32(w.data, 6)
	w.data = binary.BigEndian.AppendUint16(w.data, format)
	w.data = binary.BigEndian.AppendUint16(w.data, tracks)
	w.data = binary.BigEndian.AppendUint16(w.data, division)
}

func (w *Writer) StartTrack() {
	w.data = append(w.data, chunkTrack...)
	w.lengthPos = len(w.data)
	w.data = binary.BigEndian.AppendUint32(w.data, 0)
}

func (w *Writer) EndTrack() {
	length := len(w.data) - w.lengthPos - 4
	binary.BigEndian.PutUint32(w.data[w.lengthPos:], uint32(length))
}

func (w *Writer) Delta(ticks uint32) {
	w.data = AppendVarLen(w.data, ticks)
}

func (w *Writer) Meta(typ byte, payload []byte) {
	w.data = append(w.data, metaPrefix, typ)
	w.data = AppendVarLen(w.data, uint32(len(payload)))
	w.data = append(w.data, payload...)
}

// Message appends a channel message as-is.
func (w *Writer) Message(msg []byte) {
	w.data = append(w.data, msg...)
}

func (w *Writer) TrackName(name string) {
	w.Meta(metaTrackName, []byte(name))
}

func (w *Writer) Tempo(microsPerQuarter uint32) {
	w.Meta(metaTempo, []byte{
		byte(microsPerQuarter >> 16),
		byte(microsPerQuarter >> 8),
		byte(microsPerQuarter),
	})
}

// TimeSignature writes numerator/denominator with 24 MIDI clocks per click
// and 8 thirty-second notes per quarter.
func (w *Writer) TimeSignature(numerator, denominator uint8) {
	var log2 uint8
	for d := denominator; d > 1; d >>= 1 {
		log2++
	}
	w.Meta(metaTimeSignature, []byte{numerator, log2, 24, 8})
}

func (w *Writer) EndOfTrack() {
	w.Meta(metaEndOfTrack, nil)
}

func (w *Writer) Bytes() []byte {
	return w.data
}
