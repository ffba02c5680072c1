package ga

import (
	"math/rand"
	"sort"

	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/model"
)

type Candidate struct {
	Track   model.Track
	Fitness int
}

type Population []Candidate

// Initialize creates size candidates of trackLength random chords each.
// Candidates are left unscored.
func Initialize(rng *rand.Rand, size, trackLength, totalKeys int) Population {
	res := make(Population, size)
	for i := range res {
		track := make(model.Track, trackLength)
		for j := range track {
			track[j] = chord.Random(rng, totalKeys)
		}
		res[i].Track = track
	}
	return res
}

// Sort orders by fitness, highest first. Ties keep their current order.
func (p Population) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Fitness > p[j].Fitness
	})
}

// Truncate keeps the first size candidates of an already sorted population.
// A population that is already small enough is returned unchanged.
func Truncate(p Population, size int) Population {
	if len(p) <= size {
		return p
	}
	// cap the slice so the next append reallocates instead of writing over
	// the discarded tail
	return p[:size:size]
}

func (p Population) Best() Candidate {
	return p[0]
}
