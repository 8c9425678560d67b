// blockslide is a terminal sliding block puzzle.
//
// Usage:
//
//	blockslide list                       - List available levels
//	blockslide show <level>               - Print a level's initial state
//	blockslide move <level> <x,y:dir>...  - Apply moves and print the result
//	blockslide play [level]               - Play interactively
//	blockslide snapshot encode|decode     - Convert states to and from base64
//	blockslide saves [level]              - List, delete and summarize saves
//
// Global flags:
//
//	--config <path>     - Path to a config YAML (default: search order)
//	--db <path>         - Set database path (default from config)
//	--levels <dir>      - Load levels from a directory instead of the built-in pack
//	--log-level <level> - debug, info, warn or error (default from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/config"
	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockslide",
	Short: "Blockslide - a sliding block puzzle for your terminal",
	Long: `Blockslide is a grid puzzle where pieces glue into blocks, blocks push
each other and everything without support falls.

Available commands:
  list      - Show all available levels
  show      - Print a level's initial state
  move      - Apply moves to a level and print the result
  play      - Play a level interactively
  snapshot  - Encode or decode base64 state snapshots
  saves     - Manage saved sessions

Examples:
  blockslide list
  blockslide show 01-demo --blocks
  blockslide move 01-demo 5,4:left
  blockslide play 02-slide
  blockslide saves 01-demo --stats`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to saves database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with level files (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(savesCmd)
}

// env bundles what every subcommand needs after flag parsing.
type env struct {
	cfg    config.BlockslideConfig
	logger *log.Logger
}

// setup loads the config, applies flag overrides and builds the logger.
func setup() (*env, error) {
	cfg, err := config.LoadBlockslide(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockslide",
		Level:           level,
	})
	logger.Debug("config loaded", "board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"history", cfg.History.Depth, "db", cfg.Storage.Path)

	return &env{cfg: cfg, logger: logger}, nil
}

// mustSetup is setup for Run functions: errors end the process.
func mustSetup() *env {
	e, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return e
}

// loader returns the level loader selected by the config.
func (e *env) loader() *levels.Loader {
	if e.cfg.Levels.Dir != "" {
		return levels.NewLoader(config.ExpandHome(e.cfg.Levels.Dir))
	}
	return levels.NewPackLoader()
}

// loadLevels loads every level and logs the files that were skipped.
func (e *env) loadLevels() ([]levels.Level, error) {
	l := e.loader()
	lvls, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, skipped := range l.Skipped {
		e.logger.Warn("skipping level file", "error", skipped)
	}
	return lvls, nil
}

// findLevel loads a level by id or exits with a hint.
func (e *env) findLevel(id string) levels.Level {
	lvl, err := e.loader().LoadByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockslide list' to see available levels.")
		os.Exit(1)
	}
	return lvl
}

// sessionOptions returns the session options the config asks for.
func (e *env) sessionOptions() []blockslide.SessionOption {
	return []blockslide.SessionOption{
		blockslide.WithLogger(e.logger),
		blockslide.WithHistoryDepth(e.cfg.History.Depth),
		blockslide.WithPoisonedScratch(e.cfg.Engine.PoisonScratch),
	}
}

// openStore opens the saves database named by the config.
func (e *env) openStore() (*storage.Store, error) {
	return storage.Open(e.cfg.Storage.Path)
}
