package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the levels from the built-in pack, or from --levels when given.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	e := mustSetup()

	lvls, err := e.loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range lvls {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Blocks", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")

	// Print levels
	for _, lvl := range lvls {
		blocks := "?"
		if s, err := core.Derive(lvl.Board); err == nil {
			blocks = fmt.Sprint(s.BlockCount())
		}
		size := fmt.Sprintf("%dx%d", lvl.Board.W, lvl.Board.H)
		fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, lvl.ID, size, blocks, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'blockslide play <id>' to play a level.")
}
