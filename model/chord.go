package model

// Chord is a triad of absolute pitches, lowest voice first.
type Chord [3]uint8

// Track is one candidate accompaniment: one chord per beat slot.
type Track []Chord

// NoNote marks a beat slot where the melody rests or sustains.
const NoNote = -1

// MelodyDigest holds one pitch (or NoNote) per beat of the melody.
type MelodyDigest []int

func (d MelodyDigest) Rests() int {
	var n int
	for _, v := range d {
		if v == NoNote {
			n++
		}
	}
	return n
}

// Clone copies the track so the result never aliases t.
func (t Track) Clone() Track {
	res := make(Track, len(t))
	copy(res, t)
	return res
}
