package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/accompanist/chord"
	"github.com/jsphweid/accompanist/consonance"
	"github.com/jsphweid/accompanist/key"
	"github.com/jsphweid/accompanist/melody"
	"github.com/jsphweid/accompanist/midi"
	"github.com/jsphweid/accompanist/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a melody",
	Long:  `Prints what the generator sees in a melody: the beat digest, key and consonant chords.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	mel, err := melody.Analyze(s)
	if err != nil {
		return err
	}
	est, err := key.Detect(mel.Histogram)
	if err != nil {
		return err
	}

	beats := make([]string, 0, len(mel.Digest))
	for _, v := range mel.Digest {
		if v == model.NoNote {
			beats = append(beats, "-")
			continue
		}
		beats = append(beats, fmt.Sprintf("%s%d", chord.NoteName(uint8(v)), v/12-1))
	}

	fmt.Printf("beats: %v (%v ticks each)\n", len(mel.Digest), mel.BeatTicks)
	fmt.Printf("digest: %v\n", strings.Join(beats, " "))
	fmt.Printf("key: %v %v (r=%.3f), major equivalent %v\n", chord.NoteName(est.Tonic), est.Mode, est.Correlation, chord.NoteName(est.MajorEquivalent()))
	set := consonance.Build(est.MajorEquivalent())
	names := set.Names()
	for i, c := range set {
		fmt.Printf("consonant: %-5v %v\n", names[i], chord.CreateChordKey(c[:]))
	}
	fmt.Printf("velocity: %v\n", mel.Velocity)
	fmt.Printf("base note: %v\n", mel.StKey)
	fmt.Printf("tempo: %.1f bpm\n", mel.TempoBPM)
	return nil
}
