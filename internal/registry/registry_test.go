package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
)

func gateMission(id, name string) mission.Config {
	gate := core.NewRect(40, 10, 4, 10)
	return mission.Config{
		ID:             id,
		Name:           name,
		Bounds:         core.NewRect(0, 0, 50, 30),
		Spawn:          core.Vec{X: 2, Y: 18},
		Solids:         []core.Rect{core.NewRect(0, 20, 50, 2)},
		Gate:           &gate,
		UnlocksOnClear: []string{core.UnlockAirDash},
	}
}

func TestRegisterAndList(t *testing.T) {
	Reset()
	defer Reset()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := Register(gateMission(id, "Mission "+id)); err != nil {
			t.Fatalf("Register(%q) error = %v", id, err)
		}
	}
	if err := Register(gateMission("alpha", "again")); err == nil {
		t.Error("Register() of a duplicate ID expected an error")
	}

	list := List()
	want := []string{"alpha", "mid", "zeta"}
	if len(list) != len(want) {
		t.Fatalf("len(List()) = %d, expected %d", len(list), len(want))
	}
	for i, info := range list {
		if info.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, expected %q", i, info.ID, want[i])
		}
		if info.Mode != "platformer" || info.HasBoss {
			t.Errorf("List()[%d] = %+v, expected a platformer without boss", i, info)
		}
	}
	if list[0].Name != "Mission alpha" || len(list[0].Unlocks) != 1 {
		t.Errorf("List()[0] = %+v", list[0])
	}
}

func TestLookup(t *testing.T) {
	Reset()
	defer Reset()

	_ = Register(gateMission("relay", "Relay"))

	cfg, err := Lookup("relay")
	if err != nil || cfg.Name != "Relay" {
		t.Errorf("Lookup(relay) = %q, %v", cfg.Name, err)
	}
	if !Exists("relay") || Exists("nope") {
		t.Error("Exists() mismatch")
	}

	_, err = Lookup("nope")
	if !errors.Is(err, ErrUnknownMission) {
		t.Errorf("Lookup(nope) error = %v, expected ErrUnknownMission", err)
	}
}

func TestReplaceAndStart(t *testing.T) {
	Reset()
	defer Reset()

	_ = Register(gateMission("relay", "Old"))
	Replace(gateMission("relay", "New"))

	if cfg, _ := Lookup("relay"); cfg.Name != "New" {
		t.Errorf("after Replace, Name = %q, expected New", cfg.Name)
	}

	run, err := Start("relay", mission.Options{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if run.Outcome() != mission.OutcomeRunning {
		t.Errorf("Outcome() = %v, expected running", run.Outcome())
	}
	if _, err := Start("nope", mission.Options{}); !errors.Is(err, ErrUnknownMission) {
		t.Errorf("Start(nope) error = %v, expected ErrUnknownMission", err)
	}
}
