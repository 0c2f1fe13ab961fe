package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scissors/internal/watch"
)

var watchFlags searchFlags

var watchCmd = &cobra.Command{
	Use:   "watch <image>",
	Short: "Re-solve whenever the image changes",
	Long: `Solve once, then watch the image file and solve again every time it is
saved. Useful while editing an image in another program. Failed searches and
unreadable intermediate saves are logged and the watch continues.

Press Ctrl+C to stop.

Examples:
  scissors watch sketch.png --from 0,0 --to 63,63
  scissors watch sketch.png --from 0,0 --to 63,63 --out preview.png`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	start, end, err := watchFlags.endpoints()
	if err != nil {
		return err
	}
	maxCost, wall, err := watchFlags.limits(cmd)
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

	w, err := watch.New(args[0], 0)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	if err := solve(out, sess, start, end, &watchFlags); err != nil {
		logger.Warn("search failed", "error", err)
	}
	logger.Info("watching for changes", "path", args[0])

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := sess.Reload(); err != nil {
				logger.Warn("reload failed", "error", err)
				continue
			}
			if err := solve(out, sess, start, end, &watchFlags); err != nil {
				logger.Warn("search failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
