// scissors finds minimum-cost paths across the intensity field of an image.
//
// Usage:
//
//	scissors solve <image> --from r,c --to r,c   - Find and print a path
//	scissors info <image>                        - Show field size and stored runs
//	scissors history                             - List recent runs
//	scissors watch <image> --from r,c --to r,c   - Re-solve whenever the image changes
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.scissors/config.yaml)
//	--db <path>         - Run history database (default from config)
//	--no-store          - Do not read or write run history
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/scissors/internal/config"
	"github.com/katalvlaran/scissors/internal/logging"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagNoStore  bool
	flagLogLevel string
)

var (
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scissors",
	Short: "Minimum-cost paths across image intensity fields",
	Long: `scissors treats an image as a grid of intensities and finds the cheapest
4-connected path between two pixels. Stepping between pixels costs the
absolute intensity difference, at least 1, so paths follow regions of
similar brightness and avoid crossing edges.

Available commands:
  solve    - Find a path and optionally save an overlay image
  info     - Show the size of an image's field and its stored runs
  history  - List recent runs
  watch    - Re-solve whenever the image file changes

Examples:
  scissors solve photo.png --from 10,10 --to 120,240 --out path.png
  scissors info photo.png
  scissors history --limit 20
  scissors watch sketch.png --from 0,0 --to 63,63`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Disable run history")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads the configuration, applies global flag overrides and builds
// the logger shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}
	if flagDBPath != "" {
		c.Store.Path = flagDBPath
	}
	if flagNoStore {
		c.Store.Enabled = false
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log)
	return nil
}
