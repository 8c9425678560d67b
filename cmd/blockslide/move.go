package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/codec"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

var (
	flagMoveState    string
	flagMoveBlocks   bool
	flagMoveSnapshot bool
	flagMoveStrict   bool
)

var moveCmd = &cobra.Command{
	Use:   "move <level> <step>...",
	Short: "Apply moves to a level and print the result",
	Long: `Apply a sequence of steps to a level and print the final state.

Each step is one of:
  x,y:dir   move the block holding the piece at (x, y); dir is
            left, right, up, down or l, r, u, d
  undo      step back one state
  redo      step forward again

Blocked moves leave the state unchanged and are reported.

Examples:
  blockslide move 01-demo 5,4:left
  blockslide move 01-demo 5,4:l undo redo --blocks
  blockslide move 01-demo 3,2:r --state <base64> --snapshot`,
	Args: cobra.MinimumNArgs(2),
	Run:  runMove,
}

func init() {
	moveCmd.Flags().StringVar(&flagMoveState, "state", "", "Start from a base64 snapshot instead of the level's initial state")
	moveCmd.Flags().BoolVar(&flagMoveBlocks, "blocks", false, "List blocks after the last step")
	moveCmd.Flags().BoolVar(&flagMoveSnapshot, "snapshot", false, "Print the base64 snapshot after the last step")
	moveCmd.Flags().BoolVar(&flagMoveStrict, "strict", false, "Fail on the first blocked move")
}

// step is one parsed command-line move.
type step struct {
	raw  string
	kind string // "move", "undo" or "redo"
	pos  core.Pos
	dir  core.Dir
}

// parseStep parses "x,y:dir", "undo" or "redo".
func parseStep(raw string) (step, error) {
	switch strings.ToLower(raw) {
	case "undo", "redo":
		return step{raw: raw, kind: strings.ToLower(raw)}, nil
	}

	coords, dirName, ok := strings.Cut(raw, ":")
	if !ok {
		return step{}, fmt.Errorf("step %q: want x,y:dir", raw)
	}
	pos, err := core.ParsePos(coords)
	if err != nil {
		return step{}, fmt.Errorf("step %q: %w", raw, err)
	}
	dir, err := core.ParseDir(dirName)
	if err != nil {
		return step{}, fmt.Errorf("step %q: %w", raw, err)
	}
	return step{raw: raw, kind: "move", pos: pos, dir: dir}, nil
}

// applyStep runs st on s and returns whether the state changed.
func applyStep(s *blockslide.Session, st step) (bool, error) {
	switch st.kind {
	case "undo":
		return s.Undo(), nil
	case "redo":
		return s.Redo(), nil
	default:
		return s.Move(st.pos.X, st.pos.Y, st.dir)
	}
}

func runMove(cmd *cobra.Command, args []string) {
	e := mustSetup()
	lvl := e.findLevel(args[0])

	steps := make([]step, 0, len(args)-1)
	for _, raw := range args[1:] {
		st, err := parseStep(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		steps = append(steps, st)
	}

	var (
		s   *blockslide.Session
		err error
	)
	if flagMoveState != "" {
		var initial *core.State
		initial, err = codec.DecodeState(flagMoveState)
		if err == nil {
			s, err = blockslide.NewSession(lvl.ID, initial, e.sessionOptions()...)
		}
	} else {
		s, err = blockslide.NewLevelSession(lvl.ID, lvl.Board, e.sessionOptions()...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	for i, st := range steps {
		changed, err := applyStep(s, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error at step %d: %v\n", i+1, err)
			os.Exit(1)
		}
		if !changed {
			fmt.Printf("step %d (%s): no change\n", i+1, st.raw)
			if flagMoveStrict {
				os.Exit(1)
			}
		}
	}

	fmt.Printf("moves %d, actions %d\n\n", s.Moves(), s.Actions())
	printSession(s, flagMoveBlocks, false, flagMoveSnapshot)
}
