package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(batchCmd)
	addGAFlags(batchCmd)
	batchCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "output directory (defaults to OUT_DIR)")
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> [max]",
	Short: "Generates accompaniments for every midi file in a directory",
	Long:  `Generates accompaniments for every midi file in a directory. Files that fail are logged and skipped.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		paths, err := util.GatherAllMidiPaths(args[0], maxNum)
		if err != nil {
			return err
		}

		gaCfg := gaConfig(cmd)
		var failed int
		for i, path := range paths {
			fmt.Printf("Processing %v of %v midi files\n", i+1, len(paths))
			if _, err := generate(ctx, path, gaCfg); err != nil {
				if ctx.Err() != nil {
					return err
				}
				failed++
				recorder.CaptureError(err)
				logger.Error(err, "Skipping file", logging.Fields{"input": path})
			}
		}

		if failed == len(paths) && failed > 0 {
			return errors.New("every file failed")
		}
		logger.Info("Batch finished", logging.Fields{"files": len(paths), "failed": failed})
		return nil
	},
}
