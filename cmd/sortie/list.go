package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available missions",
	Long: `Shows every mission found on the search path: the --missions
directory, ~/.sortie/missions, ./missions and the built-in set.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	missions := registry.List()

	if len(missions) == 0 {
		fmt.Println("No missions available.")
		return
	}

	fmt.Println("Available missions:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, m := range missions {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxNameLen = max(maxNameLen, len(m.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-12s  %-4s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Mode", "Boss", "Unlocks")
	fmt.Printf("  %-*s  %-*s  %-12s  %-4s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "----", "-------")

	for _, m := range missions {
		boss := "-"
		if m.HasBoss {
			boss = "yes"
		}
		unlocks := strings.Join(m.Unlocks, ", ")
		if unlocks == "" {
			unlocks = "-"
		}
		fmt.Printf("  %-*s  %-*s  %-12s  %-4s  %s\n", maxIDLen, m.ID, maxNameLen, m.Name, m.Mode, boss, unlocks)
	}

	fmt.Println()
	fmt.Println("Run 'sortie play <id>' to fly a mission.")
}
