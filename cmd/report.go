package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "number of runs to list, 0 for all")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Lists archived runs",
	Long:  `Lists archived runs, newest first. Needs ARCHIVE_ENABLED=true.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(flagLimit)
	},
}

func report(limit int) error {
	if !cfg.ArchiveEnabled {
		return errors.New("run archive is disabled, set ARCHIVE_ENABLED=true")
	}
	a, err := openArchive()
	if err != nil {
		return err
	}
	runs, err := a.GetRuns(limit)
	if err != nil {
		return err
	}

	fmt.Printf("runs: %v\n", len(runs))
	for _, r := range runs {
		fmt.Printf("%v  %v  key=%-3v fitness=%-6v generations=%v population=%v seed=%v\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.RunID, r.Key, r.BestFitness, r.Generations, r.PopulationSize, r.Seed)
		fmt.Printf("    %v -> %v\n", r.Input, r.Output)
	}
	return nil
}
