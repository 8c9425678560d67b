package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

var (
	flagShowBlocks   bool
	flagShowCells    bool
	flagShowSnapshot bool
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level's initial state",
	Long: `Print the settled initial state of a level as text.

Legend:
  #  wall          .  empty
  0-9      piece of that color
  A-J      piece of a fixed block, color 0-9
  < > ^ v  emerge point facing left, right, up, down

Examples:
  blockslide show 01-demo
  blockslide show 01-demo --blocks --cells
  blockslide show 01-demo --snapshot`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowBlocks, "blocks", false, "List blocks with anchors and fixed flags")
	showCmd.Flags().BoolVar(&flagShowCells, "cells", false, "List every non-empty cell")
	showCmd.Flags().BoolVar(&flagShowSnapshot, "snapshot", false, "Print the base64 snapshot of the state")
}

func runShow(cmd *cobra.Command, args []string) {
	e := mustSetup()
	lvl := e.findLevel(args[0])

	s, err := blockslide.NewLevelSession(lvl.ID, lvl.Board, e.sessionOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	printSession(s, flagShowBlocks, flagShowCells, flagShowSnapshot)
}

// printSession writes the session's state and the requested listings to stdout.
func printSession(s *blockslide.Session, blocks, cells, snapshot bool) {
	st := s.State()
	fmt.Printf("%s (%dx%d, %d blocks)\n\n", s.LevelID(), st.Board.W, st.Board.H, st.BlockCount())
	fmt.Print(core.RenderState(st))

	if blocks {
		fmt.Println()
		fmt.Print(core.RenderBlocks(st))
	}
	if cells {
		fmt.Println()
		fmt.Print(core.RenderCells(st))
	}
	if snapshot {
		text, err := s.EncodedState()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding state: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Println(text)
	}
}
