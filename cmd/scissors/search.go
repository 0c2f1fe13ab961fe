package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scissors/gridgraph"
	"github.com/katalvlaran/scissors/imageio"
	"github.com/katalvlaran/scissors/internal/store"
	"github.com/katalvlaran/scissors/session"
)

// searchFlags are shared by solve and watch.
type searchFlags struct {
	from      string
	to        string
	out       string
	maxCost   int64
	wall      int64
	printPath bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start pixel as row,col")
	cmd.Flags().StringVar(&f.to, "to", "", "End pixel as row,col")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write a PNG with the path drawn over the image")
	cmd.Flags().Int64Var(&f.maxCost, "max-cost", 0, "Give up on paths costing more than this (0 = no cap, overrides config)")
	cmd.Flags().Int64Var(&f.wall, "wall", 0, "Treat steps costing at least this as impassable (0 = no walls, overrides config)")
	cmd.Flags().BoolVar(&f.printPath, "path", false, "Print every cell of the path")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

// endpoints parses --from and --to.
func (f *searchFlags) endpoints() (start, end gridgraph.Cell, err error) {
	if start, err = gridgraph.ParseCell(f.from); err != nil {
		return start, end, fmt.Errorf("--from: %w", err)
	}
	if end, err = gridgraph.ParseCell(f.to); err != nil {
		return start, end, fmt.Errorf("--to: %w", err)
	}
	return start, end, nil
}

// limits returns the config search limits with any flags the user set.
func (f *searchFlags) limits(cmd *cobra.Command) (maxCost, wall int64, err error) {
	maxCost, wall = cfg.Search.MaxCost, cfg.Search.WallThreshold
	if cmd.Flags().Changed("max-cost") {
		maxCost = f.maxCost
	}
	if cmd.Flags().Changed("wall") {
		wall = f.wall
	}
	if maxCost < 0 || wall < 0 {
		return 0, 0, fmt.Errorf("--max-cost and --wall must be >= 0")
	}
	return maxCost, wall, nil
}

// openStore opens the run history, or returns nil when it is disabled.
// A store that cannot be opened is logged and skipped.
func openStore() *store.Store {
	if !cfg.Store.Enabled {
		return nil
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Warn("run history unavailable", "path", cfg.Store.Path, "error", err)
		return nil
	}
	return st
}

// newSession builds a session from config, the given limits and st.
func newSession(st *store.Store, maxCost, wall int64) (*session.Session, error) {
	luma, err := imageio.ParseLuma(cfg.Image.Luma)
	if err != nil {
		return nil, err
	}
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLuma(luma),
		session.WithMaxPixels(cfg.Image.MaxPixels),
		session.WithMaxCost(maxCost),
		session.WithWallThreshold(wall),
	}
	if st != nil {
		opts = append(opts, session.WithStore(st))
	}
	return session.New(opts...), nil
}

// solve runs one search on the active field, prints the result and writes
// the overlay when requested.
func solve(w io.Writer, sess *session.Session, start, end gridgraph.Cell, f *searchFlags) error {
	res, err := sess.FindPath(start, end)
	if err != nil {
		return fmt.Errorf("search %s -> %s: %w", start, end, err)
	}

	fmt.Fprintf(w, "Cost:  %d\n", res.Cost)
	fmt.Fprintf(w, "Steps: %d\n", len(res.Path))
	if res.Cached {
		fmt.Fprintln(w, "(from run history)")
	}
	if f.printPath {
		cells := make([]string, len(res.Path))
		for i, c := range res.Path {
			cells[i] = c.String()
		}
		fmt.Fprintf(w, "Path:  %s\n", strings.Join(cells, " "))
	}

	if f.out == "" {
		return nil
	}
	img := sess.Image()
	if img == nil {
		return fmt.Errorf("no image to draw on")
	}
	overlay := imageio.DrawPath(img, res.Path, imageio.DefaultOverlayOptions())
	if err := imageio.SavePNG(f.out, overlay); err != nil {
		return err
	}
	fmt.Fprintf(w, "Overlay written to %s\n", f.out)
	return nil
}

// printRuns writes runs as a table.
func printRuns(w io.Writer, runs []store.Run) {
	fmt.Fprintf(w, "  %-5s  %-16s  %-11s  %-11s  %-11s  %-7s  %-8s  %-5s  %s\n",
		"ID", "Date", "Size", "From", "To", "Status", "Cost", "Steps", "Source")
	fmt.Fprintf(w, "  %-5s  %-16s  %-11s  %-11s  %-11s  %-7s  %-8s  %-5s  %s\n",
		"--", "----", "----", "----", "--", "------", "----", "-----", "------")
	for _, r := range runs {
		cost := "-"
		if r.Status == store.StatusOK {
			cost = fmt.Sprint(r.Cost)
		}
		src := r.Source
		if src == "" {
			src = "-"
		}
		fmt.Fprintf(w, "  %-5d  %-16s  %-11s  %-11s  %-11s  %-7s  %-8s  %-5d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Start, r.End, r.Status, cost, len(r.Path), src)
	}
}
