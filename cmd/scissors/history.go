package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long: `Display the most recent searches recorded in the run history, newest first.

Examples:
  scissors history
  scissors history --limit 50
  scissors history --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if !cfg.Store.Enabled {
		return errors.New("run history is disabled")
	}
	st := openStore()
	if st == nil {
		return fmt.Errorf("cannot open run history at %s", cfg.Store.Path)
	}
	defer st.Close()

	runs, err := st.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'scissors solve <image> --from r,c --to r,c' to record one.")
		return nil
	}
	printRuns(out, runs)
	return nil
}
