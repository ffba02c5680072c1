package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/jsphweid/accompanist/constants"
	"github.com/jsphweid/accompanist/ga"
)

// Config holds everything read from the environment. Flags on the
// individual commands override the GA settings.
type Config struct {
	Environment string
	Port        string
	OutDir      string
	LogLevel    string

	// Genetic algorithm
	Octaves        int
	KeysPerOctave  int
	Generations    int
	PopulationSize int
	Seed           int64
	Workers        int
	LogEvery       int

	// Upper limits for GA sizes requested over HTTP
	MaxGenerations int
	MaxPopulation  int

	// Observability
	SentryDSN string

	// Run archive
	ArchiveEnabled   bool
	DynamoDBEndpoint string
	DynamoDBTable    string
}

func Load() *Config {
	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		Port:             getEnv("PORT", "8080"),
		OutDir:           constants.GetOutDir(),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Octaves:          getInt("OCTAVES", 10),
		KeysPerOctave:    getInt("KEYS_PER_OCTAVE", 12),
		Generations:      getInt("GENERATIONS", 1000),
		PopulationSize:   getInt("POPULATION_SIZE", 100),
		Seed:             int64(getInt("GA_SEED", 0)),
		Workers:          getInt("GA_WORKERS", runtime.NumCPU()),
		LogEvery:         getInt("LOG_EVERY", 100),
		MaxGenerations:   getInt("MAX_GENERATIONS", 10000),
		MaxPopulation:    getInt("MAX_POPULATION", 1000),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		ArchiveEnabled:   getEnv("ARCHIVE_ENABLED", "false") == "true",
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		DynamoDBTable:    getEnv("DYNAMODB_TABLE", "accompanist-runs"),
	}
}

func (c *Config) GA() ga.Config {
	return ga.Config{
		Octaves:        c.Octaves,
		KeysPerOctave:  c.KeysPerOctave,
		Generations:    c.Generations,
		PopulationSize: c.PopulationSize,
		Seed:           c.Seed,
		Workers:        c.Workers,
		LogEvery:       c.LogEvery,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getInt falls back to the default when the variable is unset or not a number.
func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
