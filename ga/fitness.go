package ga

import (
	"github.com/jsphweid/accompanist/consonance"
	"github.com/jsphweid/accompanist/model"
)

const (
	ConsonanceWeight = 70
	RestWeight       = 2
	OverlapWeight    = 3
)

// Evaluator caches what Fitness derives from the melody so scoring a track
// only walks the track. It is read-only and safe for concurrent use.
type Evaluator struct {
	set      consonance.Set
	rests    int
	inMelody [256]bool
}

func NewEvaluator(set consonance.Set, digest model.MelodyDigest) *Evaluator {
	e := &Evaluator{set: set, rests: digest.Rests()}
	for _, v := range digest {
		if v >= 0 && v < len(e.inMelody) {
			e.inMelody[v] = true
		}
	}
	return e
}

// Score sums three terms:
//   - 70 per beat whose chord is in the consonance set
//   - 2 per rest in the melody
//   - 3 per chord note that appears anywhere in the melody
//
// The last term is not aligned by beat; a note sounding anywhere in the
// melody counts for every chord containing it.
func (e *Evaluator) Score(track model.Track) int {
	var consonant, overlap int
	for _, c := range track {
		if e.set.Contains(c) {
			consonant++
		}
		for _, n := range c {
			if e.inMelody[n] {
				overlap++
			}
		}
	}
	return consonant*ConsonanceWeight + e.rests*RestWeight + overlap*OverlapWeight
}

func Fitness(track model.Track, set consonance.Set, digest model.MelodyDigest) int {
	return NewEvaluator(set, digest).Score(track)
}
