package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate and verify a recorded run",
	Long: `Load a replay written by 'play --record' or 'run --record', re-simulate
it against the registered mission and compare the final state hash.

Exits with status 1 when the re-simulation diverges from the recording.
With --log-level debug every event of the re-simulation is logged.

Examples:
  sortie replay foundry.replay
  sortie replay relay.replay --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "replay")

	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset := difficulty(rec.Difficulty)
	cfg := lookupMission(rec.MissionID, preset)

	logger.Info("replaying", "mission", rec.MissionID, "difficulty", preset,
		"frames", len(rec.Frames), "seed", rec.Seed, "recorded", fmt.Sprintf("%.2fs", rec.Duration()))

	res := replay.Play(cfg, rec, func(events []mission.Event) {
		for _, e := range events {
			logger.Debug(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time), "value", e.Value, "detail", e.Detail)
		}
	})

	fmt.Printf("Mission:  %s\n", rec.MissionID)
	fmt.Printf("Outcome:  %s\n", res.Outcome)
	fmt.Printf("Elapsed:  %.2fs\n", res.Snapshot.Elapsed)
	fmt.Printf("Ticks:    %d of %d\n", res.Ticks, len(rec.Frames))
	fmt.Printf("Health:   %d\n", res.Snapshot.Health)

	switch {
	case rec.Hash == 0:
		fmt.Println("Verified: no hash recorded")
	case res.Match:
		fmt.Printf("Verified: yes (%016x)\n", rec.Hash)
	default:
		fmt.Printf("Verified: NO (recorded %016x, got %016x)\n", rec.Hash, res.Snapshot.Hash())
		os.Exit(1)
	}
}
