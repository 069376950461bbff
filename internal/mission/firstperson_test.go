package mission

import (
	"testing"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/core"
)

func fpConfig(rows ...string) Config {
	return Config{ID: "fp", Mode: ModeFirstPerson, Grid: rows}
}

func forward(actions ...core.Action) core.InputFrame {
	f := input(0, actions...)
	f.MoveY = -1
	return f
}

func enemyBolts(events []Event) int {
	n := 0
	for _, e := range events {
		if e.Kind == EventBoltFired && e.Detail == actor.SideEnemy.String() {
			n++
		}
	}
	return n
}

func TestWallBlocksEnemySight(t *testing.T) {
	cfg := fpConfig(
		"#########",
		"#S.E#..M#",
		"#########",
	)
	cfg.FirstPerson = DefaultFirstPersonTuning()
	cfg.FirstPerson.AggroRange = 100
	r := Start(cfg, Options{Seed: 1})

	events := tickFor(r, input(0), 20)
	if n := enemyBolts(events); n != 0 {
		t.Errorf("enemy bolts = %d, expected 0 behind a wall", n)
	}
	if r.PlayerHealth() != r.PlayerMaxHealth() {
		t.Errorf("PlayerHealth() = %d, expected %d", r.PlayerHealth(), r.PlayerMaxHealth())
	}
	if r.Outcome() != OutcomeRunning {
		t.Errorf("Outcome() = %v, expected running", r.Outcome())
	}
}

func TestEnemyFiresWithLineOfSight(t *testing.T) {
	r := Start(fpConfig(
		"#########",
		"#S....M.#",
		"#E#######",
	), Options{Seed: 1})

	events := tickFor(r, input(0), 1)
	if enemyBolts(events) == 0 {
		t.Fatal("expected the enemy to fire with a clear line of sight")
	}
	if r.PlayerHealth() >= r.PlayerMaxHealth() {
		t.Errorf("PlayerHealth() = %d, expected a bolt to land", r.PlayerHealth())
	}
}

func TestWalkToExitClears(t *testing.T) {
	r := Start(fpConfig(
		"######",
		"#S..E#",
		"######",
	), Options{})

	tickFor(r, forward(), 3)
	if r.Outcome() != OutcomeCleared {
		t.Errorf("Outcome() = %v, expected cleared", r.Outcome())
	}
}

func TestExitNeedsEnemiesDown(t *testing.T) {
	r := Start(fpConfig(
		"#######",
		"#S..EM#",
		"#######",
	), Options{})

	var events []Event
	for i := 0; i < 180 && r.EnemiesAlive() > 0; i++ {
		r.Tick(input(0, core.ActionFire), frameDT)
		events = append(events, r.Events()...)
	}
	if r.EnemiesAlive() != 0 {
		t.Fatalf("EnemiesAlive() = %d, expected 0", r.EnemiesAlive())
	}
	if countEvents(events, EventEnemyKilled) != 1 {
		t.Errorf("enemy killed events = %d, expected 1", countEvents(events, EventEnemyKilled))
	}

	tickFor(r, forward(), 3)
	if r.Outcome() != OutcomeCleared {
		t.Errorf("Outcome() = %v, expected cleared", r.Outcome())
	}
}

func TestExitBlockedWhileEnemyAlive(t *testing.T) {
	cfg := fpConfig(
		"##########",
		"#S..E#.M.#",
		"##########",
	)
	r := Start(cfg, Options{})

	tickFor(r, forward(), 3)
	if r.Outcome() != OutcomeRunning {
		t.Errorf("Outcome() = %v, expected running while an enemy lives", r.Outcome())
	}
}

func TestFirstPersonDeterminism(t *testing.T) {
	rows := []string{
		"##########",
		"#S.......#",
		"#........#",
		"#...M....#",
		"#........#",
		"#.....M..#",
		"#......E.#",
		"##########",
	}
	run := func() Snapshot {
		r := Start(fpConfig(rows...), Options{Seed: 42})
		for i := range 900 {
			in := input(0)
			if i%200 < 50 {
				in.MoveX = 1
			} else {
				in.MoveY = -1
			}
			if i%20 == 0 {
				in.Set(core.ActionFire)
			}
			if r.Tick(in, frameDT) != OutcomeRunning {
				break
			}
		}
		return r.Snapshot()
	}

	s1 := run()
	s2 := run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
}

func TestInvalidGridFailsImmediately(t *testing.T) {
	r := Start(fpConfig(), Options{})
	if r.Outcome() != OutcomeFailed {
		t.Errorf("Outcome() = %v, expected failed", r.Outcome())
	}
	if r.Tick(forward(), frameDT) != OutcomeFailed || r.Ticks() != 0 {
		t.Error("Tick() on a failed run should do nothing")
	}
}

func TestFirstPersonViews(t *testing.T) {
	r := Start(fpConfig(
		"#######",
		"#S..EM#",
		"#######",
	), Options{})
	r.Tick(input(0), frameDT)

	if cols := r.DepthColumns(8); len(cols) != 8 {
		t.Errorf("len(DepthColumns(8)) = %d, expected 8", len(cols))
	}
	v, ok := r.FirstPersonView()
	if !ok {
		t.Fatal("FirstPersonView() should be available")
	}
	if v.Angle != 0 {
		t.Errorf("View.Angle = %v, expected 0 (facing the open corridor)", v.Angle)
	}
	if len(v.Rows) != 3 {
		t.Errorf("len(View.Rows) = %d, expected 3", len(v.Rows))
	}
	if _, ok := r.Scene(); ok {
		t.Error("Scene() should not be available for first-person runs")
	}
}
