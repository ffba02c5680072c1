package consonance

import (
	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/model"
)

type degree struct {
	offset  uint8
	quality chord.Quality
}

// scale degrees above the tonic whose triads sound good with a major key
var degrees = [...]degree{
	{5, chord.Major},
	{7, chord.Major},
	{9, chord.Minor},
	{2, chord.Minor},
	{4, chord.Minor},
	{11, chord.Diminished},
}

// Set is the fixed collection of chords considered consonant with a key.
// It is read-only once built.
type Set []model.Chord

// Build expects key as a major-equivalent pitch class in [0, 11].
func Build(key uint8) Set {
	res := make(Set, 0, len(degrees)+1)
	res = append(res, chord.Notes(key, chord.Major))
	for _, d := range degrees {
		res = append(res, chord.Notes((key+d.offset)%constants.KeysPerOctave, d.quality))
	}
	return res
}

// Contains compares full triads by value.
func (s Set) Contains(c model.Chord) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

func (s Set) Names() []string {
	res := make([]string, 0, len(s))
	for _, c := range s {
		res = append(res, chord.Name(c))
	}
	return res
}
