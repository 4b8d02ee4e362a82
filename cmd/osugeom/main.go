// Command osugeom inspects slider geometry and timing in .osu beatmaps
// and maintains a local beatmap metadata cache.
package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "osugeom",
	Short: "Beatmap slider geometry and timing tools",
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
