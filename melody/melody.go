package melody

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/model"
	"github.com/jsphweid/accompanist/util"
	"gitlab.com/gomidi/midi/v2/smf"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoTracks              = errors.New("midi file has no tracks")
	ErrNoNotes               = errors.New("melody has no notes")
	ErrUnsupportedTimeFormat = errors.New("only metric tick time formats are supported")
)

// Melody is everything the rest of the program needs from the source file.
type Melody struct {
	Digest model.MelodyDigest

	// BeatTicks is the length of one digest slot in ticks
	BeatTicks uint32

	// Velocity and StKey only matter when rendering: StKey is the lowest
	// pitch of the octave the accompaniment is played in.
	Velocity uint8
	StKey    uint8
	TempoBPM float64

	// Histogram sums sounding ticks per pitch class, for key detection
	Histogram [constants.KeysPerOctave]float64
}

// MelodyTrackIndex picks the track holding the melody. Files with more than
// one track keep tempo and metadata in track 0.
func MelodyTrackIndex(s *smf.SMF) int {
	if len(s.Tracks) > 1 {
		return 1
	}
	return 0
}

func Analyze(s *smf.SMF) (Melody, error) {
	var m Melody

	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return m, fault.Wrap(ErrUnsupportedTimeFormat, ftag.With(ftag.InvalidArgument), fmsg.With(fmt.Sprintf("time format %v", s.TimeFormat)))
	}
	if len(s.Tracks) == 0 {
		return m, fault.Wrap(ErrNoTracks, ftag.With(ftag.InvalidArgument))
	}
	track := s.Tracks[MelodyTrackIndex(s)]

	m.BeatTicks = uint32(mt.Ticks4th()) * constants.QuartersPerBeat
	m.TempoBPM = tempo(s)

	var velocities, octaves []float64
	var absTicks, lastTicks uint32
	pressed := make(map[uint8]uint32)
	addDuration := func(key uint8, start, end uint32) {
		// zero length notes still count for something
		m.Histogram[key%constants.KeysPerOctave] += float64(max(end-start, 1))
	}

	for _, event := range track {
		absTicks += event.Delta
		if event.Message.IsMeta() {
			continue
		}
		lastTicks = absTicks

		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			velocities = append(velocities, float64(velocity))
			octaves = append(octaves, float64(key/constants.KeysPerOctave))
			if start, ok := pressed[key]; ok {
				addDuration(key, start, absTicks)
			}
			pressed[key] = absTicks
		case event.Message.GetNoteEnd(&channel, &key):
			if start, ok := pressed[key]; ok {
				addDuration(key, start, absTicks)
				delete(pressed, key)
			}
		}
	}
	for _, key := range util.GetKeys(pressed) {
		addDuration(key, pressed[key], lastTicks)
	}

	if len(velocities) == 0 {
		return m, fault.Wrap(ErrNoNotes, ftag.With(ftag.InvalidArgument), fmsg.With(fmt.Sprintf("track %d", MelodyTrackIndex(s))))
	}

	m.Velocity = uint8(util.Clamp(int(stat.Mean(velocities, nil)*constants.VelocityScale), 1, constants.MaxMidiNote))
	m.StKey = uint8(util.Clamp(constants.KeysPerOctave*int(stat.Mean(octaves, nil)-1), 0, constants.MaxMidiNote-constants.KeysPerOctave+1))
	m.Digest = digest(track, m.BeatTicks, lastTicks)
	return m, nil
}

// digest keeps, per beat, the first note started exactly on the beat.
// Notes starting between beats are ignored.
func digest(track smf.Track, beatTicks, lastTicks uint32) model.MelodyDigest {
	length := (lastTicks + beatTicks - 1) / beatTicks
	res := make(model.MelodyDigest, length)
	for i := range res {
		res[i] = model.NoNote
	}

	var absTicks uint32
	for _, event := range track {
		absTicks += event.Delta
		var channel, key, velocity uint8
		if !event.Message.GetNoteStart(&channel, &key, &velocity) || absTicks%beatTicks != 0 {
			continue
		}
		idx := absTicks / beatTicks
		if idx < length && res[idx] == model.NoNote {
			res[idx] = int(key)
		}
	}
	return res
}

// tempo returns the last tempo change in the file.
func tempo(s *smf.SMF) float64 {
	bpm := constants.DefaultTempoBPM
	for _, track := range s.Tracks {
		for _, event := range track {
			var b float64
			if event.Message.GetMetaTempo(&b) {
				bpm = b
			}
		}
	}
	return bpm
}
