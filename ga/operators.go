package ga

import (
	"math/rand"

	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/model"
)

// Cross joins m1[:p] with m2[p:] into a fresh track. p must be in
// [0, len(m1)]; p == 0 yields a copy of m2 and p == len(m1) a copy of m1.
func Cross(m1, m2 model.Track, p int) model.Track {
	child := make(model.Track, 0, len(m2))
	child = append(child, m1[:p]...)
	return append(child, m2[p:]...)
}

// Mutate replaces k randomly chosen beats with random chords, in place.
// Beats are drawn with replacement, so at most k beats change.
func Mutate(rng *rand.Rand, track model.Track, k, totalKeys int) {
	if len(track) == 0 {
		return
	}
	for i := 0; i < k; i++ {
		track[rng.Intn(len(track))] = chord.Random(rng, totalKeys)
	}
}
