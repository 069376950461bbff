package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortie/internal/core"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Inspect or change profile unlocks",
	Long: `Unlocks are ability flags granted by clearing missions. They are
stored in the profile database and read by every run.

Examples:
  sortie unlock list
  sortie unlock grant double_jump
  sortie unlock revoke charge_shot`,
}

var unlockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unlock flags and their state",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		store := mustOpenStore()
		defer store.Close()

		u, err := store.Unlocks()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		for _, flag := range core.KnownUnlocks {
			state := "locked"
			if u.Has(flag) {
				state = "unlocked"
			}
			fmt.Printf("  %-12s  %s\n", flag, state)
		}
	},
}

var unlockGrantCmd = &cobra.Command{
	Use:   "grant <flag>",
	Short: "Unlock an ability",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setUnlock(args[0], true)
	},
}

var unlockRevokeCmd = &cobra.Command{
	Use:   "revoke <flag>",
	Short: "Lock an ability again",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setUnlock(args[0], false)
	},
}

func init() {
	unlockCmd.AddCommand(unlockListCmd, unlockGrantCmd, unlockRevokeCmd)
}

func setUnlock(flag string, on bool) {
	if !core.IsKnownUnlock(flag) {
		fmt.Fprintf(os.Stderr, "Error: unknown unlock %q (known: %v)\n", flag, core.KnownUnlocks)
		os.Exit(1)
	}

	store := mustOpenStore()
	defer store.Close()

	if err := store.SetUnlock(flag, on); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if on {
		fmt.Printf("Unlocked %s\n", flag)
	} else {
		fmt.Printf("Locked %s\n", flag)
	}
}
