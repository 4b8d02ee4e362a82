package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"osugeom/dotosu"
	"osugeom/spline"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.osu>",
	Short: "Print geometry and timing for every slider in a beatmap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	b, err := dotosu.DecodeFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s [%s] by %s (format v%d)\n",
		b.Artist, b.Title, b.Version, b.Creator, b.FormatVersion)
	fmt.Printf("slider multiplier %.2f, %d timing markers, %d objects\n\n",
		b.SliderMultiplier, len(b.Markers), len(b.Objects))

	for _, obj := range b.Objects {
		s, ok := obj.(dotosu.Slider)
		if !ok {
			continue
		}

		sp := spline.FromSpec(s.Spec())
		end := sp.EndPoint()

		fmt.Printf("t=%-8d %-7s points=%-3d repeats=%d declared=%.1fpx computed=%.1fpx end=(%.1f, %.1f)",
			s.Time, s.Kind, len(s.Control), s.Repeats, s.PixelLength, sp.PixelLength(), end.X, end.Y)
		if dur, ok := b.SliderDuration(s); ok {
			fmt.Printf(" duration=%.1fms", dur)
		} else {
			fmt.Printf(" duration=unresolved")
		}
		fmt.Println()
	}
	return nil
}
