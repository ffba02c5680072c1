package ga

import (
	"fmt"
	"runtime"
)

type Config struct {
	Octaves        int
	KeysPerOctave  int
	Generations    int
	PopulationSize int

	// 0 picks a time based seed; the one actually used is on Context.Seed.
	Seed int64

	// Workers bounds concurrent fitness evaluation inside a generation.
	Workers int

	// LogEvery controls how often a generation is logged at debug level.
	LogEvery int
}

func DefaultConfig() Config {
	return Config{
		Octaves:        10,
		KeysPerOctave:  12,
		Generations:    1000,
		PopulationSize: 100,
		Workers:        runtime.NumCPU(),
		LogEvery:       100,
	}
}

func (c Config) TotalKeys() int {
	return c.Octaves * c.KeysPerOctave
}

func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return invalid(ErrPopulationTooSmall, fmt.Sprintf("population size %d", c.PopulationSize))
	}
	if c.Generations < 0 {
		return invalid(ErrInvalidGenerations, fmt.Sprintf("generations %d", c.Generations))
	}
	if total := c.TotalKeys(); total < 1 || total > 240 {
		return invalid(ErrInvalidPitchRange, fmt.Sprintf("%d octaves of %d keys", c.Octaves, c.KeysPerOctave))
	}
	return nil
}
