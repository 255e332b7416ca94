package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [marathon|sprint]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Marathon is the default.

  marathon - play until the stack tops out; level rises every 10 lines
  sprint   - clear 20 lines as fast as possible

Controls:
  Left/Right, H/L  - Move (hold to auto-shift)
  Down, J          - Soft drop
  Space            - Hard drop
  Up, X, K / Z / A - Rotate clockwise / counter-clockwise / 180
  C                - Hold
  P                - Pause
  R                - Restart
  ?                - Show all keys
  Q, Ctrl+C        - Quit

Examples:
  tetris play
  tetris play sprint
  tetris play --difficulty hard
  tetris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
