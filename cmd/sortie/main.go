// sortie is a terminal mission runner: side-scrolling sorties with timed
// hazards and boss fights, plus first-person grid sweeps.
//
// Usage:
//
//	sortie list                 - List available missions
//	sortie play <mission>       - Fly a mission
//	sortie menu                 - Pick missions interactively
//	sortie run <mission>        - Run a mission headless from an input script
//	sortie replay <file>        - Re-simulate and verify a recorded run
//	sortie records [mission]    - Show mission results
//	sortie unlock               - Inspect or change profile unlocks
//	sortie serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set profile database path (default: ~/.sortie/profile.db)
//	--missions <dir>    - Load missions from this directory first
//	--max-dt <seconds>  - Clamp for a single frame delta
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sortie/internal/config"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/platform/tui"
	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/storage"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagMissionsDir string
	flagMaxDT       float64
	flagLogLevel    string
	flagTheme       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sortie",
	Short: "Sortie - timed-hazard missions in your terminal",
	Long: `Sortie runs real-time missions in the terminal: side-scrolling runs
through beams, crushers and falling debris that end in boss fights, and
first-person sweeps through grid bunkers.

Available commands:
  list     - Show all available missions
  play     - Fly a specific mission directly
  menu     - Interactive mission picker
  run      - Headless run driven by an input script
  replay   - Verify a recorded run
  records  - View mission results
  unlock   - Manage profile unlocks
  serve    - Start SSH server for remote play

Examples:
  sortie list
  sortie play relay
  sortie play foundry --difficulty hard --record foundry.replay
  sortie run relay --script relay-script.yaml
  sortie replay foundry.replay
  sortie serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadMissions,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sortie/profile.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagMissionsDir, "missions", "", "Directory of mission YAML files loaded before the built-ins")
	rootCmd.PersistentFlags().Float64Var(&flagMaxDT, "max-dt", core.DefaultMaxDT, "Largest frame delta in seconds")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, neon, mono")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadMissions fills the registry from the mission search path.
func loadMissions(_ *cobra.Command, _ []string) error {
	missions, err := config.LoadMissions(flagMissionsDir)
	if err != nil {
		return err
	}
	registry.Reset()
	for _, m := range missions {
		if err := registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// theme resolves --theme, exiting on an unknown name.
func theme() tui.Theme {
	t, err := tui.ThemeByName(flagTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return t
}

// difficulty parses a --difficulty value, exiting on an unknown preset.
func difficulty(s string) config.DifficultyPreset {
	p, err := config.ParseDifficulty(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return p
}

// lookupMission returns a registered mission with the difficulty applied.
func lookupMission(id string, preset config.DifficultyPreset) mission.Config {
	cfg, err := registry.Lookup(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sortie list' to see available missions.")
		os.Exit(1)
	}
	config.ApplyDifficulty(&cfg, preset)
	return cfg
}

// runOptions builds the run options from the global flags and the
// profile unlocks. A nil store means nothing is unlocked.
func runOptions(store *storage.Store) mission.Options {
	opts := mission.Options{MaxDT: flagMaxDT, Seed: flagSeed}
	if store != nil {
		if u, err := store.Unlocks(); err == nil {
			opts.Unlocks = u
		}
	}
	return opts
}

// openStoreOrWarn opens the profile database, continuing without it on failure.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open profile database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the profile database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		os.Exit(1)
	}
	return store
}
