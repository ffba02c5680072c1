package key

import (
	"errors"
	"math"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/util"
	"gonum.org/v1/gonum/stat"
)

var ErrNoPitches = errors.New("no pitches to estimate a key from")

type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// Krumhansl-Schmuckler probe tone profiles, tonic first
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

type Estimate struct {
	Tonic       uint8
	Mode        Mode
	Correlation float64
}

// MajorEquivalent maps minor keys onto their relative major, which is what
// the consonance set is built from.
func (e Estimate) MajorEquivalent() uint8 {
	switch e.Mode {
	case Minor:
		return (e.Tonic + 3) % constants.KeysPerOctave
	default:
		return e.Tonic % constants.KeysPerOctave
	}
}

// Name is the tonic plus "m" for minor keys, e.g. "F#m".
func (e Estimate) Name() string {
	name := chord.NoteName(e.Tonic)
	if e.Mode == Minor {
		name += "m"
	}
	return name
}

func rotate(profile []float64, tonic int) []float64 {
	res := make([]float64, len(profile))
	for i, v := range profile {
		res[(i+tonic)%len(profile)] = v
	}
	return res
}

// Detect correlates the pitch-class histogram against all 24 major and minor
// profiles and returns the best match. A flat histogram has no correlation
// with anything and falls back to the heaviest pitch class as a major tonic.
func Detect(histogram [constants.KeysPerOctave]float64) (Estimate, error) {
	hist := histogram[:]
	if util.Sum(hist) <= 0 {
		return Estimate{}, fault.Wrap(ErrNoPitches, ftag.With(ftag.InvalidArgument))
	}

	best := Estimate{Correlation: math.Inf(-1)}
	for tonic := 0; tonic < constants.KeysPerOctave; tonic++ {
		for _, mode := range []Mode{Major, Minor} {
			profile := majorProfile
			if mode == Minor {
				profile = minorProfile
			}
			r := stat.Correlation(hist, rotate(profile, tonic), nil)
			if r > best.Correlation {
				best = Estimate{Tonic: uint8(tonic), Mode: mode, Correlation: r}
			}
		}
	}

	if math.IsInf(best.Correlation, -1) {
		var heaviest int
		for i, v := range hist {
			if v > hist[heaviest] {
				heaviest = i
			}
		}
		return Estimate{Tonic: uint8(heaviest), Mode: Major}, nil
	}
	return best, nil
}
