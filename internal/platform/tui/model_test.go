package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/replay"
	"github.com/vovakirdan/sortie/internal/storage"
)

// gateMission clears as soon as the player spawns inside its gate.
func gateMission() mission.Config {
	cfg := flatMission()
	cfg.ID = "gate"
	gate := core.NewRect(0, 10, 5, 10)
	cfg.Gate = &gate
	cfg.UnlocksOnClear = []string{core.UnlockDoubleJump}
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "profile.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// step sends a message and returns the updated play model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return out
}

// ticks sends n tick messages 16ms apart starting at t0.
func ticks(t *testing.T, m Model, t0 time.Time, n int) Model {
	t.Helper()
	for i := range n {
		m = step(t, m, TickMsg(t0.Add(time.Duration(i)*16*time.Millisecond)))
	}
	return m
}

func TestModelAdvancesWithWallClock(t *testing.T) {
	m := NewModel(flatMission(), PlayOptions{Run: mission.Options{Seed: 1}})
	m = ticks(t, m, time.Unix(100, 0), 11)

	// The first tick only anchors the clock.
	if got := m.run.Elapsed(); got < 0.159 || got > 0.161 {
		t.Errorf("Elapsed() = %v, expected 0.16", got)
	}
	if m.run.Ticks() != 11 {
		t.Errorf("Ticks() = %d, expected 11", m.run.Ticks())
	}
}

func TestModelPauseFreezesRun(t *testing.T) {
	m := NewModel(flatMission(), PlayOptions{Run: mission.Options{Seed: 1}})
	t0 := time.Unix(100, 0)
	m = ticks(t, m, t0, 5)

	m = step(t, m, runeKey("p"))
	if !m.paused {
		t.Fatal("p should pause the run")
	}
	before := m.run.Elapsed()
	m = ticks(t, m, t0.Add(time.Second), 30)
	if m.run.Elapsed() != before {
		t.Errorf("Elapsed() while paused = %v, expected %v", m.run.Elapsed(), before)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show the pause overlay")
	}

	m = step(t, m, runeKey("p"))
	m = ticks(t, m, t0.Add(2*time.Second), 3)
	if m.run.Elapsed() <= before {
		t.Error("run should advance after resuming")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	m := NewModel(gateMission(), PlayOptions{Store: store, Difficulty: "normal", Run: mission.Options{Seed: 1}})
	m = ticks(t, m, time.Unix(100, 0), 10)

	if m.Outcome() != mission.OutcomeCleared {
		t.Fatalf("Outcome() = %v, expected cleared", m.Outcome())
	}
	results, err := store.Results("gate", 10)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(Results()) = %d, expected 1", len(results))
	}
	if results[0].Outcome != "cleared" || results[0].Difficulty != "normal" {
		t.Errorf("result = %+v, expected a normal clear", results[0])
	}

	unlocks, err := store.Unlocks()
	if err != nil {
		t.Fatalf("Unlocks() error = %v", err)
	}
	if !unlocks.Has(core.UnlockDoubleJump) {
		t.Error("clear should grant double_jump")
	}
	if !strings.Contains(m.View(), "MISSION CLEARED") {
		t.Error("View() should show the clear overlay")
	}

	m = step(t, m, runeKey("r"))
	if m.Outcome() != mission.OutcomeRunning {
		t.Fatalf("Outcome() after restart = %v, expected running", m.Outcome())
	}
	ticks(t, m, time.Unix(200, 0), 10)
	results, _ = store.Results("gate", 10)
	if len(results) != 2 {
		t.Errorf("len(Results()) after second clear = %d, expected 2", len(results))
	}
}

func TestModelRestartOnlyWhenStopped(t *testing.T) {
	m := NewModel(flatMission(), PlayOptions{Run: mission.Options{Seed: 1}})
	m = ticks(t, m, time.Unix(100, 0), 10)
	elapsed := m.run.Elapsed()

	m = step(t, m, runeKey("r"))
	if m.run.Elapsed() != elapsed {
		t.Error("r should not restart a running mission")
	}
}

func TestModelRecordsReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.replay")
	cfg := gateMission()
	m := NewModel(cfg, PlayOptions{RecordPath: path, Run: mission.Options{Seed: 3}})
	ticks(t, m, time.Unix(100, 0), 5)

	rec, err := replay.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.MissionID != "gate" {
		t.Errorf("MissionID = %q, expected gate", rec.MissionID)
	}
	if res := replay.Play(cfg, rec, nil); !res.Match || res.Outcome != mission.OutcomeCleared {
		t.Errorf("Play() = %+v, expected a matching clear", res)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(flatMission(), PlayOptions{})
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Error("q should quit a standalone model")
	}
	if got := next.(Model).View(); got != "" {
		t.Errorf("View() after quit = %q, expected empty", got)
	}

	embedded := NewModel(flatMission(), PlayOptions{Embedded: true})
	next, cmd = embedded.Update(runeKey("q"))
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
	if !next.(Model).BackToMenu() {
		t.Error("BackToMenu() = false, expected true")
	}
}

func TestModelReloadsRunningMission(t *testing.T) {
	registry.Reset()
	t.Cleanup(registry.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "flat.yaml")
	data := `
id: flat
name: Flat Revised
mode: platformer
bounds: [0, 0, 60, 30]
spawn: [2, 18]
gate: [50, 10, 2, 10]
solids:
  - [0, 20, 60, 2]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	m := NewModel(flatMission(), PlayOptions{Run: mission.Options{Seed: 1}})
	m = ticks(t, m, time.Unix(100, 0), 10)
	m = step(t, m, reloadMsg(path))

	if m.cfg.Name != "Flat Revised" {
		t.Errorf("Name after reload = %q, expected %q", m.cfg.Name, "Flat Revised")
	}
	if m.run.Elapsed() != 0 {
		t.Errorf("Elapsed() after reload = %v, expected 0", m.run.Elapsed())
	}
	if !registry.Exists("flat") {
		t.Error("reload should update the registry")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("id: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m = step(t, m, reloadMsg(bad))
	if !strings.HasPrefix(m.status, "reload failed") {
		t.Errorf("status = %q, expected a reload failure", m.status)
	}
	if m.cfg.Name != "Flat Revised" {
		t.Error("a broken file should not replace the running mission")
	}
}
