package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockslide/internal/config"
	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/platform/tui"
	"github.com/vovakirdan/blockslide/internal/storage"
)

var (
	flagFPS      int
	flagResume   bool
	flagPickSave bool
	flagShowIDs  bool
	flagMono     bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing, on the given level or the first one.

Controls:
  Arrows/WASD      - Move the cursor
  Shift+Left/H     - Push the block under the cursor left
  Shift+Right/L    - Push the block under the cursor right
  U / Y            - Undo / Redo
  N / P            - Next / previous level
  R                - Restart level
  I                - Toggle block ids
  Ctrl+S           - Save the session
  ?                - Full help
  Q/Esc/Ctrl+C     - Quit

Examples:
  blockslide play                  # pick a level from a menu
  blockslide play 02-slide
  blockslide play 02-slide --resume
  blockslide play --saves`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the latest save of the level")
	playCmd.Flags().BoolVar(&flagPickSave, "saves", false, "Pick a save to continue from a list")
	playCmd.Flags().BoolVar(&flagShowIDs, "ids", false, "Start with block ids shown")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Use the monochrome menu theme")
}

func runPlay(cmd *cobra.Command, args []string) {
	e := mustSetup()

	if flagMono {
		tui.SetTheme(tui.MonochromeTheme())
	}

	lvls, err := e.loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	levelID := ""
	if len(args) > 0 {
		levelID = e.findLevel(args[0]).ID
	}

	// Get terminal size early for the saves browser
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open save storage
	store, err := e.openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// The alt screen owns the terminal while playing
	if logFile := redirectLog(e); logFile != nil {
		defer logFile.Close()
	}

	opts := []blockslide.Option{
		blockslide.WithCellWidth(e.cfg.Render.CellWidth),
		blockslide.WithBlockIDs(e.cfg.Render.ShowBlockIDs || flagShowIDs),
		blockslide.WithStartLevel(levelID),
		blockslide.WithSessionOptions(e.sessionOptions()...),
		blockslide.WithGameLogger(e.logger),
	}

	// Without a level on the command line, let the user pick one
	if levelID == "" && !flagResume && !flagPickSave && len(lvls) > 1 {
		selection, selErr := tui.RunLevelSelector(lvls, width, height)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}

		// User quit the menu
		if selection == nil {
			closeStore(store)
			return
		}
		levelID = selection.LevelID
		opts = append(opts, blockslide.WithStartLevel(levelID))
	}

	resumed, ok := pickResume(e, store, lvls, levelID, width, height)
	if !ok {
		closeStore(store)
		return
	}
	if resumed != nil {
		opts = append(opts, blockslide.WithResumedSession(resumed))
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Run the game
	runErr := tui.Run(blockslide.New(lvls, opts...), store, cfg, e.logger)

	// Close store before potential exit
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// pickResume returns the session to continue, if any. ok is false when the
// user left the saves browser without picking one.
func pickResume(e *env, store *storage.Store, lvls []levels.Level, levelID string, width, height int) (*blockslide.Session, bool) {
	if store == nil || (!flagResume && !flagPickSave) {
		return nil, true
	}

	var rec *storage.SessionRecord
	if flagPickSave {
		ids := make([]string, len(lvls))
		for i, lvl := range lvls {
			ids[i] = lvl.ID
		}
		picked, err := tui.RunSaves(store, ids, levelID, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if picked == nil {
			return nil, false
		}
		rec = picked
	} else {
		if levelID == "" && len(lvls) > 0 {
			levelID = lvls[0].ID
		}
		latest, err := store.LatestSession(levelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read saves: %v\n", err)
			return nil, true
		}
		if latest == nil {
			e.logger.Info("no save to resume", "level", levelID)
			return nil, true
		}
		rec = latest
	}

	s, err := blockslide.RestoreSession(*rec, e.sessionOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore save #%d: %v\n", rec.ID, err)
		return nil, true
	}
	return s, true
}

// redirectLog points the logger at a file next to the database while the
// TUI is running. It returns nil when logging stays on stderr.
func redirectLog(e *env) *os.File {
	path := filepath.Join(filepath.Dir(config.ExpandHome(e.cfg.Storage.Path)), "blockslide.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		e.logger.SetLevel(log.ErrorLevel)
		return nil
	}
	e.logger.SetOutput(f)
	return f
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
