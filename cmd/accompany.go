package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/db"
	"github.com/jsphweid/accompanist/ga"
	"github.com/jsphweid/accompanist/key"
	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/melody"
	"github.com/jsphweid/accompanist/metrics"
	"github.com/jsphweid/accompanist/model"
	"github.com/jsphweid/accompanist/render"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	flagGenerations int
	flagPopulation  int
	flagSeed        int64
)

func addGAFlags(c *cobra.Command) {
	c.Flags().IntVarP(&flagGenerations, "generations", "g", 0, "number of generations (defaults to GENERATIONS)")
	c.Flags().IntVarP(&flagPopulation, "population", "p", 0, "population size (defaults to POPULATION_SIZE)")
	c.Flags().Int64Var(&flagSeed, "seed", 0, "random seed, 0 for a time based one (defaults to GA_SEED)")
}

// gaConfig applies any GA flags the user actually set on top of the env config.
func gaConfig(c *cobra.Command) ga.Config {
	res := cfg.GA()
	if c.Flags().Changed("generations") {
		res.Generations = flagGenerations
	}
	if c.Flags().Changed("population") {
		res.PopulationSize = flagPopulation
	}
	if c.Flags().Changed("seed") {
		res.Seed = flagSeed
	}
	return res
}

type accompaniment struct {
	RunID      string
	Key        key.Estimate
	Melody     melody.Melody
	Best       ga.Candidate
	SeededBest int
	Seed       int64
	Config     ga.Config

	// Output is the source file with the accompaniment appended as a track
	Output *smf.SMF
}

func (a accompaniment) Response() model.AccompanimentResponse {
	res := model.AccompanimentResponse{
		RunID:       a.RunID,
		Key:         a.Key.Name(),
		Seed:        a.Seed,
		Generations: a.Config.Generations,
		Fitness:     a.Best.Fitness,
		Notes:       a.Best.Track,
	}
	for _, c := range a.Best.Track {
		res.Chords = append(res.Chords, chord.Name(c))
	}
	return res
}

// accompany runs the whole pipeline on s and appends the result to it.
func accompany(ctx context.Context, s *smf.SMF, gaCfg ga.Config) (accompaniment, error) {
	var res accompaniment

	mel, err := melody.Analyze(s)
	if err != nil {
		return res, err
	}
	est, err := key.Detect(mel.Histogram)
	if err != nil {
		return res, err
	}

	runLogger := logger.WithFields(logging.Fields{"key": est.Name()})
	gc, err := ga.NewContext(gaCfg, est.MajorEquivalent(), mel.Digest, ga.WithLogger(runLogger))
	if err != nil {
		return res, err
	}

	start := time.Now()
	best, err := gc.Run(ctx)
	recorder.RecordRun(ctx, metrics.RunStats{
		RunID:          gc.RunID,
		Key:            est.Name(),
		Generations:    len(gc.History) - 1,
		PopulationSize: gaCfg.PopulationSize,
		TrackLength:    gc.TrackLength(),
		SeededBest:     gc.History[0],
		Best:           best.Fitness,
		Duration:       time.Since(start),
		Err:            err,
	})
	if err != nil {
		return res, err
	}

	opts := render.Options{
		BeatTicks: mel.BeatTicks,
		Velocity:  mel.Velocity,
		StKey:     mel.StKey,
		TempoBPM:  mel.TempoBPM,
	}
	if err := render.Append(s, best.Track, opts); err != nil {
		return res, err
	}

	return accompaniment{
		RunID:      gc.RunID,
		Key:        est,
		Melody:     mel,
		Best:       best,
		SeededBest: gc.History[0],
		Seed:       gc.Seed,
		Config:     gaCfg,
		Output:     s,
	}, nil
}

var (
	archive     *db.Archive
	archiveErr  error
	archiveOnce sync.Once
)

// openArchive connects to the run archive the first time it is needed.
// Concurrent requests under serve share the one connection.
func openArchive() (*db.Archive, error) {
	archiveOnce.Do(func() {
		archive, archiveErr = db.Connect(cfg.DynamoDBEndpoint, cfg.DynamoDBTable)
	})
	return archive, archiveErr
}

// archiveRun stores the run when archiving is enabled. Failures are logged,
// never returned: a run that produced output has succeeded.
func archiveRun(a accompaniment, input, output string) {
	if !cfg.ArchiveEnabled {
		return
	}
	store, err := openArchive()
	if err != nil {
		logger.Error(err, "Could not connect to run archive")
		return
	}

	err = store.PutRun(model.RunRecord{
		RunID:          a.RunID,
		Input:          input,
		Output:         output,
		Key:            a.Key.Name(),
		Generations:    a.Config.Generations,
		PopulationSize: a.Config.PopulationSize,
		Seed:           a.Seed,
		BestFitness:    a.Best.Fitness,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		logger.Error(err, "Could not archive run", logging.Fields{"run_id": a.RunID})
	}
}
