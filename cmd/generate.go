package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jsphweid/accompanist/file"
	"github.com/jsphweid/accompanist/ga"
	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/midi"
	"github.com/spf13/cobra"
)

var flagOutDir string

func init() {
	rootCmd.AddCommand(generateCmd)
	addGAFlags(generateCmd)
	generateCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "output directory (defaults to OUT_DIR)")
}

var generateCmd = &cobra.Command{
	Use:   "generate <file.mid>",
	Short: "Generates an accompaniment for a melody",
	Long: `Generates an accompaniment for the melody in a MIDI file and saves the
file with the accompaniment added as a new track.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		_, err := generate(ctx, args[0], gaConfig(cmd))
		if err != nil {
			recorder.CaptureError(err)
		}
		return err
	},
}

func outDir() string {
	if flagOutDir != "" {
		return flagOutDir
	}
	return cfg.OutDir
}

func generate(ctx context.Context, input string, gaCfg ga.Config) (string, error) {
	logger.Info("Generating accompaniment. It may take a while...", logging.Fields{"input": input})

	s, err := midi.ReadMidiFile(input)
	if err != nil {
		return "", err
	}
	res, err := accompany(ctx, s, gaCfg)
	if err != nil {
		return "", err
	}

	output := file.OutputPath(input, res.Key.Name(), outDir())
	if err := os.MkdirAll(filepath.Dir(output), 0777); err != nil {
		return "", err
	}
	if err := midi.WriteMidiFile(res.Output, output); err != nil {
		return "", err
	}
	archiveRun(res, input, output)

	logger.Info("Done! File saved", logging.Fields{
		"output":      output,
		"run_id":      res.RunID,
		"fitness":     res.Best.Fitness,
		"seeded_best": res.SeededBest,
	})
	return output, nil
}
