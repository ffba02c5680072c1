package cmd

import (
	"github.com/jsphweid/accompanist/config"
	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/metrics"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	logger   logging.Logger = &logging.NoOpLogger{}
	recorder                = metrics.NewSentryMetrics(false)
)

var rootCmd = &cobra.Command{
	Use:   "accompanist",
	Short: "Generates chord accompaniment for a melody",
	Long: `Generates a chord accompaniment for a MIDI melody with a genetic algorithm.
Chords are evolved against the key of the melody and written back as a new track.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup()
	},
}

// Setup loads configuration from the environment. Commands run it before
// anything else; tests call it directly.
func Setup() error {
	cfg = config.Load()

	l := logging.NewDefaultLogger()
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		l.Warn("Falling back to info logging", logging.Fields{"log_level": cfg.LogLevel})
	}
	l.SetLevel(level)
	logger = l

	recorder = metrics.NewSentryMetrics(cfg.SentryDSN != "")
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
