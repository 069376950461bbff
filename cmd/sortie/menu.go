package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mission picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to launch a mission.
After a mission ends and you quit it, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Launch mission
  Tab          - Mission records
  Q            - Quit

Examples:
  sortie menu
  sortie menu --difficulty easy
  sortie menu --fps 30 --db ./profile.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write the event log to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	preset := difficulty(flagDifficulty)
	store := openStoreOrWarn()
	width, height := terminalSize()

	for {
		menuResult, err := tui.RunMenu(store, theme(), width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRecords {
			goBack, recErr := tui.RunRecords(store, width, height)
			if recErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", recErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from records
		}

		if menuResult.MissionID == "" {
			break
		}
		cfg := lookupMission(menuResult.MissionID, preset)

		// Unlocks may have changed since the last mission.
		opts, cleanup := playOptions(store, preset)
		if flagSeed == 0 {
			opts.Run.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running mission: %v\n", err)
		}
		cleanup()
	}

	if store != nil {
		store.Close()
	}
}
