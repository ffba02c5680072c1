package ga

import (
	"errors"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

var (
	ErrEmptyDigest        = errors.New("melody digest is empty")
	ErrPopulationTooSmall = errors.New("population size must be at least 2")
	ErrInvalidGenerations = errors.New("generation count must not be negative")
	ErrInvalidKey         = errors.New("key must be a pitch class in [0, 11]")
	ErrInvalidPitchRange  = errors.New("pitch range must hold between 1 and 240 keys")
)

func invalid(err error, msg string) error {
	return fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With(msg))
}
