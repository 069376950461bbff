package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/config"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/replay"
	"github.com/vovakirdan/sortie/internal/storage"
)

var (
	flagSeconds float64
	flagScript  string
	flagSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run <mission>",
	Short: "Run a mission headless",
	Long: `Simulate a mission without a terminal UI at a fixed step of 1/--fps
seconds. Inputs come from a YAML script of segments; without one the
player stands still. Events are logged to stderr.

Script format:
  - seconds: 1.5
    move_x: 1
    tap: [jump]
  - seconds: 3
    move_x: 1
    hold: [fire]

Examples:
  sortie run relay --seconds 30
  sortie run foundry --script foundry.yaml --record foundry.replay
  sortie run bunker --script sweep.yaml --log-level debug --save`,
	Args: cobra.ExactArgs(1),
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().Float64Var(&flagSeconds, "seconds", 0, "Mission time to simulate (default: script length, or 60)")
	runCmd.Flags().StringVar(&flagScript, "script", "", "Input script YAML")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	runCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the run to this file")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store the result and unlocks in the profile")
}

func runHeadless(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "sortie")
	preset := difficulty(flagDifficulty)
	cfg := lookupMission(args[0], preset)

	var script config.Script
	if flagScript != "" {
		s, err := config.LoadScript(flagScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		script = s
	}

	seconds := flagSeconds
	if seconds <= 0 {
		seconds = script.Duration()
	}
	if seconds <= 0 {
		seconds = 60
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}
	opts := runOptions(store)

	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder(cfg.ID, string(preset), opts)
	}

	dt := 1.0 / float64(max(flagFPS, 1))
	run := mission.Start(cfg, opts)
	logger.Info("mission started", "id", cfg.ID, "mode", cfg.Mode, "difficulty", preset, "seconds", seconds)

	for run.Outcome() == mission.OutcomeRunning && run.Elapsed() < seconds {
		in := script.Frame(run.Elapsed(), dt)
		run.Tick(in, dt)
		if rec != nil {
			rec.Record(in, dt)
		}
		logEvents(logger, run.Events())
	}

	snap := run.Snapshot()
	logger.Info("mission ended",
		"outcome", snap.Outcome,
		"elapsed", fmt.Sprintf("%.3f", snap.Elapsed),
		"ticks", snap.Tick,
		"health", snap.Health,
		"hash", fmt.Sprintf("%016x", snap.Hash()),
	)

	if rec != nil {
		if err := replay.Save(flagRecord, rec.Finish(snap)); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
			os.Exit(1)
		}
		logger.Info("replay saved", "path", flagRecord, "frames", rec.Len())
	}

	if flagSave && store != nil && snap.Outcome != mission.OutcomeRunning {
		saveResult(logger, store, cfg, snap, preset)
	}

	fmt.Printf("%s %s after %.2fs (%d ticks, hp %d)\n", cfg.ID, snap.Outcome, snap.Elapsed, snap.Tick, snap.Health)
	if snap.Outcome == mission.OutcomeFailed {
		if store != nil {
			store.Close()
		}
		os.Exit(2)
	}
}

// saveResult stores a finished headless run and grants clear unlocks.
func saveResult(logger *log.Logger, store *storage.Store, cfg mission.Config, snap mission.Snapshot, preset config.DifficultyPreset) {
	id, err := store.SaveResult(storage.Result{
		MissionID:  cfg.ID,
		Outcome:    snap.Outcome.String(),
		Elapsed:    snap.Elapsed,
		Health:     snap.Health,
		Difficulty: string(preset),
	})
	if err != nil {
		logger.Error("cannot save result", "err", err)
		return
	}
	logger.Info("result saved", "id", id)

	if snap.Outcome != mission.OutcomeCleared {
		return
	}
	granted, err := store.GrantUnlocks(cfg.UnlocksOnClear)
	if err != nil {
		logger.Error("cannot grant unlocks", "err", err)
		return
	}
	if len(granted) > 0 {
		logger.Info("unlocked", "flags", granted)
	}
}

// logEvents writes tick events: milestones at info, the rest at debug.
func logEvents(logger *log.Logger, events []mission.Event) {
	for _, e := range events {
		switch e.Kind {
		case mission.EventCleared, mission.EventFailed, mission.EventBossSpawned,
			mission.EventBossPhase, mission.EventBossDefeated:
			logger.Info(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time), "value", e.Value, "detail", e.Detail)
		case mission.EventPlayerHit:
			logger.Warn(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time), "damage", e.Value, "source", e.Detail)
		default:
			logger.Debug(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time),
				"x", fmt.Sprintf("%.1f", e.X), "y", fmt.Sprintf("%.1f", e.Y), "value", e.Value, "detail", e.Detail)
		}
	}
}
