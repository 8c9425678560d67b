package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/codec"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

var flagDecodeBlocks bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Encode or decode base64 state snapshots",
	Long: `Snapshots are the binary state layout encoded as standard base64.

Examples:
  blockslide snapshot encode 01-demo
  blockslide snapshot decode AAEC...
  blockslide move 01-demo 5,4:l --snapshot | tail -1 | blockslide snapshot decode -`,
}

var snapshotEncodeCmd = &cobra.Command{
	Use:   "encode <level>",
	Short: "Print the snapshot of a level's initial state",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotEncode,
}

var snapshotDecodeCmd = &cobra.Command{
	Use:   "decode <base64|->",
	Short: "Print the state held by a snapshot (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotDecode,
}

func init() {
	snapshotDecodeCmd.Flags().BoolVar(&flagDecodeBlocks, "blocks", false, "List blocks with anchors and fixed flags")

	snapshotCmd.AddCommand(snapshotEncodeCmd)
	snapshotCmd.AddCommand(snapshotDecodeCmd)
}

func runSnapshotEncode(cmd *cobra.Command, args []string) {
	e := mustSetup()
	lvl := e.findLevel(args[0])

	s, err := blockslide.NewLevelSession(lvl.ID, lvl.Board, e.sessionOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	text, err := s.EncodedState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding state: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(text)
}

func runSnapshotDecode(cmd *cobra.Command, args []string) {
	e := mustSetup()

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	st, err := codec.DecodeState(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding snapshot: %v\n", err)
		os.Exit(1)
	}
	e.logger.Debug("snapshot decoded", "size", fmt.Sprintf("%dx%d", st.Board.W, st.Board.H), "blocks", st.BlockCount())

	fmt.Printf("%dx%d, %d blocks\n\n", st.Board.W, st.Board.H, st.BlockCount())
	fmt.Print(core.RenderState(st))
	if flagDecodeBlocks {
		fmt.Println()
		fmt.Print(core.RenderBlocks(st))
	}
}
