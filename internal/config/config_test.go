package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/boss"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/mission"
)

const sampleMission = `
id: sample
bounds: [0, 0, 100, 30]
spawn: [2, 18]
solids:
  - [0, 20, 100, 2]
hazards:
  - kind: beam
    box: [10, 0, 2, 20]
    cycle: 2
    warning: 0.5
    active: 0.5
    tick: 0.25
    damage: 1
  - kind: crusher
    belt: [20, 19.5, 10, 0.5]
    push_speed: -2
    head_x: 24
    head_w: 2
    head_h: 2
    top_y: 12
    bottom_y: 20
    cycle: 3
    warning: 0.5
    descend: 0.5
    hold: 0.5
    retract: 0.5
    damage: 2
  - kind: debris
    trigger_x: 40
    x: 42
    width: 8
    floor_y: 20
    bottom_limit: 30
    interval: 0.5
    fall_speed: 10
    size: 1
    damage: 1
enemies:
  - {x: 60, y: 18, min_x: 55, max_x: 70, speed: 2}
gate: [95, 10, 4, 10]
tuning:
  jump_speed: 25
`

func TestParseMission(t *testing.T) {
	cfg, err := ParseMission([]byte(sampleMission), "sample.yaml")
	if err != nil {
		t.Fatalf("ParseMission() error = %v", err)
	}

	if cfg.Name != "sample" {
		t.Errorf("Name = %q, expected the id as fallback", cfg.Name)
	}
	if cfg.Mode != mission.ModePlatformer {
		t.Errorf("Mode = %v, expected platformer", cfg.Mode)
	}
	if cfg.Spawn != (core.Vec{X: 2, Y: 18}) {
		t.Errorf("Spawn = %+v, expected {2 18}", cfg.Spawn)
	}
	if cfg.Gate == nil || *cfg.Gate != core.NewRect(95, 10, 4, 10) {
		t.Errorf("Gate = %v, expected [95 10 4 10]", cfg.Gate)
	}
	if len(cfg.Hazards) != 3 {
		t.Fatalf("len(Hazards) = %d, expected 3", len(cfg.Hazards))
	}
	if _, ok := cfg.Hazards[0].(hazard.BeamConfig); !ok {
		t.Errorf("Hazards[0] = %T, expected BeamConfig", cfg.Hazards[0])
	}
	if c, ok := cfg.Hazards[1].(hazard.CrusherConfig); !ok || c.PushSpeed != -2 {
		t.Errorf("Hazards[1] = %#v, expected CrusherConfig with push -2", cfg.Hazards[1])
	}
	if _, ok := cfg.Hazards[2].(hazard.DebrisConfig); !ok {
		t.Errorf("Hazards[2] = %T, expected DebrisConfig", cfg.Hazards[2])
	}

	e := cfg.Enemies[0]
	if e.W != 1 || e.H != 2 || e.Health != 1 {
		t.Errorf("enemy defaults = %vx%v health %d, expected 1x2 health 1", e.W, e.H, e.Health)
	}

	def := actor.DefaultTuning()
	if cfg.Tuning.JumpSpeed != 25 {
		t.Errorf("Tuning.JumpSpeed = %v, expected 25", cfg.Tuning.JumpSpeed)
	}
	if cfg.Tuning.MoveSpeed != def.MoveSpeed || cfg.Tuning.MaxHealth != def.MaxHealth {
		t.Error("tuning keys absent from the file should keep their defaults")
	}
}

func TestParseMissionErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "id: [unclosed"},
		{"short rect", "id: x\nbounds: [0, 0, 10]\ngate: [1, 1, 1, 1]"},
		{"unknown mode", "id: x\nmode: racing"},
		{"unknown hazard", "id: x\nbounds: [0, 0, 10, 10]\ngate: [1, 1, 1, 1]\nhazards:\n  - kind: laser"},
		{"beam without box", "id: x\nbounds: [0, 0, 10, 10]\ngate: [1, 1, 1, 1]\nhazards:\n  - kind: beam"},
		{"unknown attack", "id: x\nbounds: [0, 0, 10, 10]\nboss:\n  patterns: [[spread, laser]]"},
		{"too many phases", "id: x\nbounds: [0, 0, 10, 10]\nboss:\n  patterns: [[spread], [dash], [area], [dash]]"},
		{"not clearable", "id: x\nbounds: [0, 0, 10, 10]"},
		{"no spawn", "id: x\nmode: first-person\ngrid: ['###', '#E#', '###']"},
		{"unknown unlock", "id: x\nbounds: [0, 0, 10, 10]\ngate: [1, 1, 1, 1]\nunlocks_on_clear: [wall_jump]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMission([]byte(tt.doc), tt.name)
			if err == nil {
				t.Fatal("ParseMission() expected an error")
			}
			if !errors.Is(err, ErrInvalidMission) {
				t.Errorf("ParseMission() error = %v, expected it to wrap ErrInvalidMission", err)
			}
		})
	}
}

func TestDefaultMissions(t *testing.T) {
	list, err := DefaultMissions()
	if err != nil {
		t.Fatalf("DefaultMissions() error = %v", err)
	}

	byID := make(map[string]mission.Config)
	for _, cfg := range list {
		byID[cfg.ID] = cfg
	}
	for _, id := range []string{"relay", "foundry", "bunker"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("default mission %q missing", id)
		}
	}

	foundry := byID["foundry"]
	if foundry.Boss == nil {
		t.Fatal("foundry should have a boss")
	}
	if got := foundry.Boss.Config.Patterns[2]; len(got) != 4 || got[0] != boss.AttackArea {
		t.Errorf("foundry phase 3 pattern = %v, expected [area dash spread dash]", got)
	}
	if foundry.Boss.Config.MoveSpeed != boss.DefaultConfig().MoveSpeed {
		t.Error("boss tuning keys absent from the file should keep their defaults")
	}

	bunker := byID["bunker"]
	if bunker.Mode != mission.ModeFirstPerson {
		t.Errorf("bunker Mode = %v, expected first-person", bunker.Mode)
	}
	if bunker.FirstPerson.AggroRange != 7 || bunker.FirstPerson.MoveSpeed != mission.DefaultFirstPersonTuning().MoveSpeed {
		t.Errorf("bunker first-person tuning = %+v", bunker.FirstPerson)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadMissionsPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "relay.yaml", "id: relay\nname: Custom Relay\nbounds: [0, 0, 50, 30]\ngate: [40, 10, 4, 10]\n")
	writeFile(t, dir, "extra.yml", "id: extra\nbounds: [0, 0, 50, 30]\ngate: [40, 10, 4, 10]\n")
	writeFile(t, dir, "notes.txt", "not a mission")

	list, err := LoadMissions(dir)
	if err != nil {
		t.Fatalf("LoadMissions() error = %v", err)
	}

	counts := make(map[string]int)
	for _, cfg := range list {
		counts[cfg.ID]++
		if cfg.ID == "relay" && cfg.Name != "Custom Relay" {
			t.Errorf("relay Name = %q, expected the custom directory to win", cfg.Name)
		}
	}
	for _, id := range []string{"relay", "extra", "foundry", "bunker"} {
		if counts[id] != 1 {
			t.Errorf("mission %q loaded %d times, expected 1", id, counts[id])
		}
	}
}

func TestLoadMissionsCustomDirErrors(t *testing.T) {
	if _, err := LoadMissions(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadMissions() with a missing directory expected an error")
	}

	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "id: bad\nhazards:\n  - kind: laser\n")
	_, err := LoadMissions(dir)
	if !errors.Is(err, ErrInvalidMission) {
		t.Errorf("LoadMissions() error = %v, expected ErrInvalidMission", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyDifficulty(t *testing.T) {
	def := actor.DefaultTuning()
	fpDef := mission.DefaultFirstPersonTuning()

	tests := []struct {
		preset     DifficultyPreset
		health     int
		fpHealth   int
		invuln     float64
		damageScal float64
	}{
		{DifficultyEasy, def.MaxHealth + 2, fpDef.MaxHealth + 2, def.InvulnWindow * 1.5, 0.5},
		{DifficultyHard, def.MaxHealth - 2, fpDef.MaxHealth - 2, def.InvulnWindow * 0.6, 1.5},
	}

	for _, tt := range tests {
		cfg := mission.Config{ID: "x"}
		ApplyDifficulty(&cfg, tt.preset)
		if cfg.Tuning.MaxHealth != tt.health {
			t.Errorf("%s: MaxHealth = %d, expected %d", tt.preset, cfg.Tuning.MaxHealth, tt.health)
		}
		if cfg.FirstPerson.MaxHealth != tt.fpHealth {
			t.Errorf("%s: first-person MaxHealth = %d, expected %d", tt.preset, cfg.FirstPerson.MaxHealth, tt.fpHealth)
		}
		if cfg.Tuning.InvulnWindow != tt.invuln {
			t.Errorf("%s: InvulnWindow = %v, expected %v", tt.preset, cfg.Tuning.InvulnWindow, tt.invuln)
		}
		if cfg.DamageScale != tt.damageScal {
			t.Errorf("%s: DamageScale = %v, expected %v", tt.preset, cfg.DamageScale, tt.damageScal)
		}
	}

	normal := mission.Config{ID: "x"}
	ApplyDifficulty(&normal, DifficultyNormal)
	if normal.Tuning != (actor.Tuning{}) || normal.DamageScale != 0 {
		t.Error("normal difficulty should leave the mission untouched")
	}

	tiny := mission.Config{ID: "x", Tuning: def}
	tiny.Tuning.MaxHealth = 1
	ApplyDifficulty(&tiny, DifficultyHard)
	if tiny.Tuning.MaxHealth != 1 {
		t.Errorf("hard MaxHealth from 1 = %d, expected 1", tiny.Tuning.MaxHealth)
	}
}

func TestScript(t *testing.T) {
	s, err := ParseScript([]byte(`
- seconds: 1
  move_x: 1
  tap: [jump]
- seconds: 0.5
  hold: [fire, charge_hold]
`))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	if s.Duration() != 1.5 {
		t.Errorf("Duration() = %v, expected 1.5", s.Duration())
	}

	const dt = 0.1
	first := s.Frame(0, dt)
	if first.MoveX != 1 || !first.Has(core.ActionJump) {
		t.Errorf("Frame(0) = %+v, expected move right with a jump", first)
	}
	if later := s.Frame(0.5, dt); later.Has(core.ActionJump) {
		t.Error("Frame(0.5) should not repeat a tapped action")
	}
	second := s.Frame(1.2, dt)
	if second.MoveX != 0 || !second.Has(core.ActionFire) || !second.Has(core.ActionChargeHold) {
		t.Errorf("Frame(1.2) = %+v, expected held fire and charge", second)
	}
	if end := s.Frame(2, dt); len(end.Pressed()) != 0 || end.MoveX != 0 {
		t.Errorf("Frame(2) = %+v, expected idle", end)
	}

	if _, err := ParseScript([]byte("- seconds: 1\n  hold: [teleport]\n")); err == nil {
		t.Error("ParseScript() expected an error for an unknown action")
	}
	if _, err := ParseScript([]byte("- seconds: 0\n")); err == nil {
		t.Error("ParseScript() expected an error for an empty segment")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want core.Action
		ok   bool
	}{
		{"fire", core.ActionFire, true},
		{"Jump", core.ActionJump, true},
		{"charge_release", core.ActionChargeRelease, true},
		{"none", core.ActionNone, false},
		{"warp", core.ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcherReportsMissionFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("file watching unavailable: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "ignored.txt", "x")
	path := writeFile(t, dir, "m.yaml", "id: m\n")

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event = %q, expected %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the mission file")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
