package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/sortie/internal/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestUnlocks(t *testing.T) {
	store := openTemp(t)

	got, err := store.Unlocks()
	if err != nil {
		t.Fatalf("Unlocks() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no unlocks on a new profile, got %v", got.Flags())
	}

	if err := store.SetUnlock(core.UnlockAirDash, true); err != nil {
		t.Fatalf("SetUnlock() failed: %v", err)
	}
	// Setting twice is harmless
	if err := store.SetUnlock(core.UnlockAirDash, true); err != nil {
		t.Fatalf("SetUnlock() twice failed: %v", err)
	}
	if err := store.SetUnlock("wall_jump", true); err == nil {
		t.Error("SetUnlock() of an unknown flag expected an error")
	}

	got, _ = store.Unlocks()
	if !got.Has(core.UnlockAirDash) || len(got) != 1 {
		t.Errorf("Unlocks() = %v, expected [air_dash]", got.Flags())
	}

	if err := store.SetUnlock(core.UnlockAirDash, false); err != nil {
		t.Fatalf("SetUnlock(off) failed: %v", err)
	}
	got, _ = store.Unlocks()
	if got.Has(core.UnlockAirDash) {
		t.Error("air_dash should be cleared")
	}
}

func TestGrantUnlocks(t *testing.T) {
	store := openTemp(t)
	_ = store.SetUnlock(core.UnlockDoubleJump, true)

	granted, err := store.GrantUnlocks([]string{core.UnlockDoubleJump, core.UnlockChargeShot})
	if err != nil {
		t.Fatalf("GrantUnlocks() failed: %v", err)
	}
	if len(granted) != 1 || granted[0] != core.UnlockChargeShot {
		t.Errorf("GrantUnlocks() = %v, expected [charge_shot]", granted)
	}

	again, _ := store.GrantUnlocks([]string{core.UnlockChargeShot})
	if len(again) != 0 {
		t.Errorf("second GrantUnlocks() = %v, expected nothing new", again)
	}
}

func TestResults(t *testing.T) {
	store := openTemp(t)

	entries := []Result{
		{MissionID: "relay", Outcome: "failed", Elapsed: 12.5, Health: 0},
		{MissionID: "relay", Outcome: "cleared", Elapsed: 40.25, Health: 2},
		{MissionID: "relay", Outcome: "cleared", Elapsed: 31.5, Health: 1, Difficulty: "hard"},
		{MissionID: "foundry", Outcome: "failed", Elapsed: 80, Health: 0},
	}
	ids := make(map[string]bool)
	for _, r := range entries {
		id, err := store.SaveResult(r)
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
		if len(id) != 36 || ids[id] {
			t.Errorf("SaveResult() id = %q, expected a fresh UUID", id)
		}
		ids[id] = true
	}

	results, err := store.Results("relay", 10)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	// Newest first
	if results[0].Elapsed != 31.5 || results[0].Difficulty != "hard" {
		t.Errorf("results[0] = %+v, expected the last saved attempt", results[0])
	}
	if results[2].Difficulty != "normal" {
		t.Errorf("results[2].Difficulty = %q, expected normal", results[2].Difficulty)
	}

	limited, _ := store.Results("relay", 1)
	if len(limited) != 1 {
		t.Errorf("Results(limit 1) returned %d", len(limited))
	}

	best, err := store.BestClear("relay")
	if err != nil {
		t.Fatalf("BestClear() failed: %v", err)
	}
	if best == nil || best.Elapsed != 31.5 {
		t.Errorf("BestClear() = %+v, expected the 31.5s clear", best)
	}

	none, err := store.BestClear("foundry")
	if err != nil || none != nil {
		t.Errorf("BestClear(foundry) = %+v, %v; expected nil, nil", none, err)
	}
}

func TestStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.Stats("relay")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Attempts != 0 || empty.Clears != 0 || empty.BestTime != 0 {
		t.Errorf("Stats() on no data = %+v", empty)
	}

	_, _ = store.SaveResult(Result{MissionID: "relay", Outcome: "cleared", Elapsed: 30})
	_, _ = store.SaveResult(Result{MissionID: "relay", Outcome: "cleared", Elapsed: 25})
	_, _ = store.SaveResult(Result{MissionID: "relay", Outcome: "failed", Elapsed: 5})
	_, _ = store.SaveResult(Result{MissionID: "bunker", Outcome: "failed", Elapsed: 9})

	st, err := store.Stats("relay")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Attempts != 3 || st.Clears != 2 || st.BestTime != 25 {
		t.Errorf("Stats(relay) = %+v, expected 3 attempts, 2 clears, best 25", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["bunker"].Clears != 0 || all["bunker"].Attempts != 1 {
		t.Errorf("AllStats() = %v", all)
	}

	if err := store.ClearResults("relay"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	results, _ := store.Results("relay", 10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
}
