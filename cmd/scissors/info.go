package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scissors/imageio"
	"github.com/katalvlaran/scissors/internal/store"
)

var flagInfoRuns int

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Show the field size of an image",
	Long: `Load an image and print the size of its intensity field, its checksum
and the most recent runs recorded for it.

Examples:
  scissors info photo.png
  scissors info photo.png --runs 0`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().IntVar(&flagInfoRuns, "runs", 5, "Number of stored runs to show (0 = none)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	luma, err := imageio.ParseLuma(cfg.Image.Luma)
	if err != nil {
		return err
	}
	g, _, err := imageio.LoadField(args[0], luma, cfg.Image.MaxPixels)
	if err != nil {
		return err
	}
	sum := store.Checksum(g)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:     %s\n", args[0])
	fmt.Fprintf(out, "Size:     %dx%d (%d cells)\n", g.Width(), g.Height(), g.Len())
	fmt.Fprintf(out, "Checksum: %s\n", sum)

	if flagInfoRuns <= 0 {
		return nil
	}
	st := openStore()
	if st == nil {
		return nil
	}
	defer st.Close()

	runs, err := st.RunsForImage(sum, flagInfoRuns)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded for this image.")
		return nil
	}
	fmt.Fprintln(out, "Recent runs:")
	printRuns(out, runs)
	return nil
}
