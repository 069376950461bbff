package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/config"
	"github.com/vovakirdan/sortie/internal/platform/tui"
	"github.com/vovakirdan/sortie/internal/storage"
)

var (
	flagDifficulty string
	flagRecord     string
	flagWatch      bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <mission>",
	Short: "Fly a mission",
	Long: `Start the specified mission.

Side-scrolling controls:
  A/D, Left/Right  - Move
  W/Up/Space       - Jump
  X                - Dash
  F/J              - Fire
  C (hold)         - Charge shot, fires when released or on F

First-person controls:
  W/S, Up/Down     - Move forward/back
  A/D, Left/Right  - Turn
  Space/F          - Fire

Shell:
  P/Esc     - Pause
  R         - Restart (when paused or after the mission ends)
  Ctrl+S    - Save a text screenshot to ~/.sortie/screenshots
  Q/Ctrl+C  - Quit

Difficulty options:
  easy   - More health, longer invulnerability, half damage
  normal - Mission as authored
  hard   - Less health, shorter invulnerability, 1.5x damage

Examples:
  sortie play relay
  sortie play foundry --difficulty hard
  sortie play relay --record relay.replay
  sortie play relay --missions ./missions --watch --log-file sortie.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the run to this file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload mission files from --missions when they change")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write the event log to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	preset := difficulty(flagDifficulty)
	cfg := lookupMission(args[0], preset)

	store := openStoreOrWarn()
	opts, cleanup := playOptions(store, preset)
	opts.RecordPath = flagRecord

	runErr := tui.Run(cfg, opts)

	cleanup()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running mission: %v\n", runErr)
		os.Exit(1)
	}
}

// playOptions assembles the interactive options shared by play and menu.
// The TUI owns the terminal, so events are only logged with --log-file.
// The returned cleanup closes the log file and watcher.
func playOptions(store *storage.Store, preset config.DifficultyPreset) (tui.PlayOptions, func()) {
	opts := tui.PlayOptions{
		Store:      store,
		TickRate:   flagFPS,
		Run:        runOptions(store),
		Difficulty: preset,
		Theme:      theme(),
	}
	var closers []func()

	if flagLogFile != "" {
		f, err := os.OpenFile(filepath.Clean(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			opts.Logger = newLogger(f, "sortie")
			closers = append(closers, func() { f.Close() })
		}
	}

	if flagWatch {
		if flagMissionsDir == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs --missions; not watching")
		} else if w, err := config.NewWatcher(flagMissionsDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not watch missions: %v\n", err)
		} else {
			opts.Watcher = w
			closers = append(closers, func() { w.Close() })
		}
	}

	return opts, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
