package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/storage"
)

var (
	flagRecordsLimit int
	flagClear        bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [mission]",
	Short: "Show mission results",
	Long: `Display recent attempts at a mission, or a summary of every mission
when no mission is given.

Examples:
  sortie records
  sortie records foundry
  sortie records foundry --limit 25
  sortie records relay --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of attempts to show")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the mission")
}

func runRecords(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mission")
			return
		}
		printSummary(store)
		return
	}

	missionID := args[0]
	cfg, err := registry.Lookup(missionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sortie list' to see available missions.")
		return
	}

	if flagClear {
		if err := store.ClearResults(missionID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared results for %s\n", cfg.Name)
		return
	}

	results, err := store.Results(missionID, flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Records - %s\n", cfg.Name)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No attempts recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sortie play %s' to fly the first sortie!\n", missionID)
		return
	}

	fmt.Printf("  %-3s  %-8s  %-8s  %-3s  %-6s  %s\n", "#", "Outcome", "Time", "HP", "Diff", "Date")
	fmt.Printf("  %-3s  %-8s  %-8s  %-3s  %-6s  %s\n", "-", "-------", "----", "--", "----", "----")
	for i, r := range results {
		fmt.Printf("  %-3d  %-8s  %-8s  %-3d  %-6s  %s\n",
			i+1, r.Outcome, fmt.Sprintf("%.2fs", r.Elapsed), r.Health, r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if st, err := store.Stats(missionID); err == nil {
		fmt.Printf("Attempts: %d  Clears: %d\n", st.Attempts, st.Clears)
	}
	if best, err := store.BestClear(missionID); err == nil && best != nil {
		fmt.Printf("Best: %.2fs with %d HP (%s)\n", best.Elapsed, best.Health, best.Difficulty)
	}
}

// printSummary prints one line per registered mission.
func printSummary(store *storage.Store) {
	stats, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Printf("  %-10s  %-20s  %-8s  %-6s  %-8s  %s\n", "ID", "Name", "Attempts", "Clears", "Best", "Last played")
	fmt.Printf("  %-10s  %-20s  %-8s  %-6s  %-8s  %s\n", "--", "----", "--------", "------", "----", "-----------")
	for _, m := range registry.List() {
		st := stats[m.ID]
		if st == nil {
			fmt.Printf("  %-10s  %-20s  %-8d  %-6d  %-8s  %s\n", m.ID, m.Name, 0, 0, "-", "never")
			continue
		}
		best := "-"
		if st.Clears > 0 {
			best = fmt.Sprintf("%.2fs", st.BestTime)
		}
		last := "never"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-10s  %-20s  %-8d  %-6d  %-8s  %s\n", m.ID, m.Name, st.Attempts, st.Clears, best, last)
	}
}
