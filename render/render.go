package render

import (
	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/model"
	"github.com/jsphweid/accompanist/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	BeatTicks uint32
	Velocity  uint8
	StKey     uint8
	TempoBPM  float64
	Channel   uint8
}

// Note folds a chord pitch into the octave starting at stKey.
func Note(pitch, stKey uint8) uint8 {
	return uint8(util.Clamp(int(pitch%constants.KeysPerOctave)+int(stKey), 0, constants.MaxMidiNote))
}

// Track plays every chord as three simultaneous notes held for one beat.
func Track(accompaniment model.Track, o Options) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(o.TempoBPM))
	for _, c := range accompaniment {
		for _, n := range c {
			tr.Add(0, midi.NoteOn(o.Channel, Note(n, o.StKey), o.Velocity))
		}
		for i, n := range c {
			var delta uint32
			if i == 0 {
				delta = o.BeatTicks
			}
			tr.Add(delta, midi.NoteOff(o.Channel, Note(n, o.StKey)))
		}
	}
	tr.Close(0)
	return tr
}

// Append adds the accompaniment as a new track after the source tracks.
func Append(s *smf.SMF, accompaniment model.Track, o Options) error {
	return s.Add(Track(accompaniment, o))
}
