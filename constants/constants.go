package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// Chord arithmetic always wraps within a 12 semitone octave, even when the
// configured pitch range uses a different keys-per-octave count.
const KeysPerOctave = 12

const MaxMidiNote = 127

// one digest slot spans this many quarter notes
const QuartersPerBeat = 2

const DefaultTempoBPM = 120.0

// average melody velocity is scaled by this before it is used for the chords
const VelocityScale = 0.9
