package main

import (
	"github.com/spf13/cobra"
)

var solveFlags searchFlags

var solveCmd = &cobra.Command{
	Use:   "solve <image>",
	Short: "Find the cheapest path between two pixels",
	Long: `Load an image, convert it to intensities and find the cheapest path from
--from to --to. Coordinates are row,col with 0,0 at the top-left pixel.

Identical searches over identical images are answered from the run history.

Examples:
  scissors solve photo.png --from 10,10 --to 120,240
  scissors solve photo.png --from 10,10 --to 120,240 --out path.png
  scissors solve scan.tiff --from 0,0 --to 99,99 --wall 60 --path`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveFlags.register(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	start, end, err := solveFlags.endpoints()
	if err != nil {
		return err
	}
	maxCost, wall, err := solveFlags.limits(cmd)
	if err != nil {
		return err
	}

	st := openStore()
	if st != nil {
		defer st.Close()
	}
	sess, err := newSession(st, maxCost, wall)
	if err != nil {
		return err
	}
	if err := sess.LoadFile(args[0]); err != nil {
		return err
	}

	return solve(cmd.OutOrStdout(), sess, start, end, &solveFlags)
}
