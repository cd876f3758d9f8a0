package compile

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/ams/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `Title: Scale
Composer: Me
Key: C
Tempo: 100
TimeSignature: 4/4
Difficulty: 1

Map {
  Key: C
  Scale: Major
}

Segment(1, INTRO)
  Begin.RIGHT {
    1,2,3,4
  }
END;

Main() {
  Segment(1, INTRO);
}
`

func TestBuildJSON(t *testing.T) {
	out, errs, err := Build(minimal, JSON)
	require.NoError(t, err)
	require.Empty(t, errs)

	var doc struct {
		Version  string `json:"version"`
		Segments []struct {
			Right struct {
				Chunks []struct {
					Chords []struct {
						Duration float64 `json:"duration"`
						Notes    []struct {
							Degree int    `json:"degree"`
							Pitch  string `json:"pitch"`
						} `json:"notes"`
					} `json:"chords"`
				} `json:"chunks"`
			} `json:"right"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert := assert.New(t)
	assert.Equal("3.0-Beta", doc.Version)
	require.Len(t, doc.Segments, 1)
	require.Len(t, doc.Segments[0].Right.Chunks, 1)
	chords := doc.Segments[0].Right.Chunks[0].Chords
	require.Len(t, chords, 4)
	for i, pitch := range []string{"C", "D", "E", "F"} {
		assert.Equal(1.0, chords[i].Duration)
		require.Len(t, chords[i].Notes, 1)
		assert.Equal(i+1, chords[i].Notes[0].Degree)
		assert.Equal(pitch, chords[i].Notes[0].Pitch)
	}
}

func TestBuildMIDI(t *testing.T) {
	out, errs, err := Build(minimal, MIDI)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, "MThd", string(out[:4]))
}

func TestBuildStopsOnDiagnostics(t *testing.T) {
	out, errs, err := Build("Title: nothing\n", MIDI)
	require.NoError(t, err)
	assert.Nil(t, out)
	require.NotEmpty(t, errs)
	assert.Equal(t, 1, errs.Count(diag.Semantic))
}

func TestUnknownFormat(t *testing.T) {
	_, _, err := Build(minimal, Format("wav"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseFormat("wav")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	f, err := ParseFormat("midi")
	assert.NoError(t, err)
	assert.Equal(t, MIDI, f)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		format Format
		want   string
	}{
		{"song.ams", JSON, "song.json"},
		{"song.ams", MIDI, "song.mid"},
		{"dir.v2/song", MIDI, "dir.v2/song.mid"},
		{"a/b.c/song.ams", JSON, "a/b.c/song.json"},
		{"song", JSON, "song.json"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := OutputPath(tt.input, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputPathHonoursOutDir(t *testing.T) {
	t.Setenv("AMS_OUT_DIR", "build")
	got, err := OutputPath("songs/etude.ams", MIDI)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("build", "etude.mid"), got)
}

func TestSummary(t *testing.T) {
	score, errs := Parse(minimal)
	require.Empty(t, errs)
	s := Summary(score)
	assert.Contains(t, s, "Scale")
	assert.Contains(t, s, "C Major")
	assert.Contains(t, s, "100 BPM")
	assert.Contains(t, s, "Segments:   1")
}

func TestSummaryUsesHeaderKey(t *testing.T) {
	score, errs := Parse(strings.Replace(minimal, "Key: C\nTempo", "Key: G\nTempo", 1))
	require.Empty(t, errs)
	assert.Contains(t, Summary(score), "Key:        G Major")
}
