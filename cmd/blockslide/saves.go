package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/storage"
)

var (
	flagSavesLimit  int
	flagSavesDelete int64
	flagSavesClear  bool
	flagSavesStats  bool
	flagSavesShow   int64
)

var savesCmd = &cobra.Command{
	Use:   "saves [level]",
	Short: "Manage saved sessions",
	Long: `List saved sessions, newest first, for one level or all of them.

Examples:
  blockslide saves
  blockslide saves 01-demo
  blockslide saves --stats
  blockslide saves --show 12
  blockslide saves --delete 12
  blockslide saves 01-demo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().IntVar(&flagSavesLimit, "limit", 20, "Maximum number of saves to list")
	savesCmd.Flags().Int64Var(&flagSavesDelete, "delete", 0, "Delete the save with this id")
	savesCmd.Flags().BoolVar(&flagSavesClear, "clear", false, "Delete every save of the level")
	savesCmd.Flags().BoolVar(&flagSavesStats, "stats", false, "Show per-level statistics")
	savesCmd.Flags().Int64Var(&flagSavesShow, "show", 0, "Print the state held by the save with this id")
}

func runSaves(cmd *cobra.Command, args []string) {
	e := mustSetup()

	levelID := ""
	if len(args) > 0 {
		levelID = args[0]
	}

	// Open save storage
	store, err := e.openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagSavesDelete != 0:
		err = deleteSave(store, flagSavesDelete)
	case flagSavesClear:
		err = clearSaves(store, levelID)
	case flagSavesShow != 0:
		err = showSave(e, store, flagSavesShow)
	case flagSavesStats:
		err = printStats(store, levelID)
	default:
		err = listSaves(store, levelID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func listSaves(store *storage.Store, levelID string) error {
	saves, err := store.ListSessions(levelID, flagSavesLimit)
	if err != nil {
		return err
	}

	title := "all levels"
	if levelID != "" {
		title = levelID
	}
	fmt.Printf("Saved sessions - %s\n", title)
	fmt.Println()

	if len(saves) == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Println("Press ctrl+s while playing to save a session.")
		return nil
	}

	// Print header
	fmt.Printf("  %-6s  %-14s  %-6s  %-7s  %-6s  %s\n", "ID", "Level", "Moves", "Actions", "Blocks", "Date")
	fmt.Printf("  %-6s  %-14s  %-6s  %-7s  %-6s  %s\n", "--", "-----", "-----", "-------", "------", "----")

	// Print saves
	for _, s := range saves {
		dateStr := s.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-14s  %-6d  %-7d  %-6d  %s\n", s.ID, s.LevelID, s.Moves, s.Actions, s.Blocks, dateStr)
	}
	return nil
}

func deleteSave(store *storage.Store, id int64) error {
	if err := store.DeleteSession(id); err != nil {
		return err
	}
	fmt.Printf("Deleted save #%d\n", id)
	return nil
}

func clearSaves(store *storage.Store, levelID string) error {
	if levelID == "" {
		return fmt.Errorf("--clear needs a level")
	}
	n, err := store.DeleteSessions(levelID)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d saves of %s\n", n, levelID)
	return nil
}

func showSave(e *env, store *storage.Store, id int64) error {
	rec, err := store.SessionByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("save #%d not found", id)
	}

	s, err := blockslide.RestoreSession(*rec, e.sessionOptions()...)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("save #%d, moves %d, actions %d, saved %s\n\n", rec.ID, rec.Moves, rec.Actions, rec.CreatedAt.Format("2006-01-02 15:04"))
	printSession(s, true, false, false)
	return nil
}

func printStats(store *storage.Store, levelID string) error {
	var stats []*storage.LevelStats
	if levelID != "" {
		st, err := store.LevelStats(levelID)
		if err != nil {
			return err
		}
		if st.Saves > 0 {
			stats = append(stats, st)
		}
	} else {
		all, err := store.AllLevelStats()
		if err != nil {
			return err
		}
		for _, id := range slices.Sorted(maps.Keys(all)) {
			stats = append(stats, all[id])
		}
	}

	if len(stats) == 0 {
		fmt.Println("No saves recorded yet.")
		return nil
	}

	// Print header
	fmt.Printf("  %-14s  %-5s  %-6s  %-9s  %s\n", "Level", "Saves", "Fewest", "Avg moves", "Last saved")
	fmt.Printf("  %-14s  %-5s  %-6s  %-9s  %s\n", "-----", "-----", "------", "---------", "----------")

	for _, st := range stats {
		last := "-"
		if !st.LastSaved.IsZero() {
			last = st.LastSaved.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-14s  %-5d  %-6d  %-9.1f  %s\n", st.LevelID, st.Saves, st.FewestMoves, st.AvgMoves, last)
	}
	return nil
}
