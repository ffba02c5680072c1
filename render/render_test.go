package render

import (
	"testing"

	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestNoteFoldsIntoBaseOctave(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(48), Note(0, 48))
	assert.Equal(uint8(55), Note(67, 48))
	assert.Equal(uint8(59), Note(119, 48))
	assert.Equal(uint8(127), Note(11, 120))
}

func TestTrackHoldsEachChordForOneBeat(t *testing.T) {
	acc := model.Track{chord.Notes(0, chord.Major), chord.Notes(9, chord.Minor)}
	tr := Track(acc, Options{BeatTicks: 960, Velocity: 81, StKey: 48, TempoBPM: 100})

	type sounding struct {
		on  map[uint8]uint32
		off map[uint8]uint32
	}
	s := sounding{on: map[uint8]uint32{}, off: map[uint8]uint32{}}
	var absTicks uint32
	var tempo float64
	var ons, offs int
	for _, event := range tr {
		absTicks += event.Delta
		var ch, key, vel uint8
		switch {
		case event.Message.GetMetaTempo(&tempo):
		case event.Message.GetNoteStart(&ch, &key, &vel):
			assert.Equal(t, uint8(81), vel)
			s.on[key] = absTicks
			ons++
		case event.Message.GetNoteEnd(&ch, &key):
			s.off[key] = absTicks
			offs++
		}
	}

	assert := assert.New(t)
	assert.InDelta(100.0, tempo, 0.01)
	assert.Equal(6, ons)
	assert.Equal(6, offs)
	assert.Equal(uint32(1920), absTicks)
	// A minor folded into octave 4: A4 C4 E4
	assert.Equal(uint32(960), s.on[57])
	assert.Equal(uint32(1920), s.off[57])
	assert.Equal(uint32(0), s.on[55])
	assert.Equal(uint32(960), s.off[55])
}

func TestAppendAddsTrack(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	var first smf.Track
	first.Close(0)
	s.Add(first)

	err := Append(s, model.Track{chord.Notes(0, chord.Major)}, Options{BeatTicks: 960, Velocity: 80, TempoBPM: 120})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Tracks, 2)
}
