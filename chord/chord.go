package chord

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/model"
)

type Quality uint8

const (
	Major Quality = iota
	Minor
	Diminished
)

var Qualities = [...]Quality{Major, Minor, Diminished}

var noteNames = [constants.KeysPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Shift returns the semitone offsets of the triad above its root.
func (q Quality) Shift() [3]uint8 {
	switch q {
	case Major:
		return [3]uint8{0, 4, 7}
	case Minor:
		return [3]uint8{0, 3, 7}
	case Diminished:
		return [3]uint8{0, 3, 6}
	}
	panic(fmt.Sprintf("unknown chord quality %d", q))
}

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Diminished:
		return "diminished"
	}
	panic(fmt.Sprintf("unknown chord quality %d", q))
}

func (q Quality) suffix() string {
	switch q {
	case Major:
		return ""
	case Minor:
		return "m"
	case Diminished:
		return "dim"
	}
	panic(fmt.Sprintf("unknown chord quality %d", q))
}

// Notes builds the triad on root. Every note stays inside the root's octave:
// only the semitone part wraps.
func Notes(root uint8, q Quality) model.Chord {
	var c model.Chord
	octave := (root / constants.KeysPerOctave) * constants.KeysPerOctave
	for i, mv := range q.Shift() {
		c[i] = octave + (root%constants.KeysPerOctave+mv)%constants.KeysPerOctave
	}
	return c
}

// Random draws a uniform root in [0, totalKeys) and a uniform quality.
func Random(rng *rand.Rand, totalKeys int) model.Chord {
	root := uint8(rng.Intn(totalKeys))
	return Notes(root, Qualities[rng.Intn(len(Qualities))])
}

// Identify finds the quality c was built with. The root is always the
// first voice.
func Identify(c model.Chord) (Quality, bool) {
	for _, q := range Qualities {
		if Notes(c[0], q) == c {
			return q, true
		}
	}
	return 0, false
}

// Name renders c as a chord symbol like "C", "F#m" or "Bdim".
func Name(c model.Chord) string {
	q, ok := Identify(c)
	if !ok {
		return CreateChordKey(c[:])
	}
	return NoteName(c[0]) + q.suffix()
}

func NoteName(pitchClass uint8) string {
	return noteNames[pitchClass%constants.KeysPerOctave]
}

// CreateChordKey joins the sorted notes with dashes, e.g. "60-64-67".
func CreateChordKey(notes []uint8) string {
	sorted := make([]uint8, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}
