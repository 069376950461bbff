// Package mission drives one playable mission. A Run owns every runtime
// entity and advances them together in Tick; the shell only feeds input
// and dt and reads the results back.
package mission

import (
	"math/rand"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/boss"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/raycast"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// Outcome is the terminal state of a run.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeFailed
	OutcomeCleared
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeFailed:
		return "failed"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// pickup is a placed heal pickup.
type pickup struct {
	box    core.Rect
	amount int
	used   bool
}

// Run is a live mission instance.
type Run struct {
	cfg  Config
	opts Options

	clock   *timeline.Clock
	tick    uint64
	outcome Outcome
	events  []Event

	// Side-scrolling state
	player      *actor.Player
	crates      []*actor.Crate
	pickups     []pickup
	hazards     []hazard.Hazard
	enemies     []*actor.Enemy
	boss        *boss.Boss
	projectiles []*actor.Projectile
	fx          hazard.Effects
	bossOut     boss.Output

	// First-person state
	fp *firstPerson
}

// Start creates a run from a validated template.
func Start(cfg Config, opts Options) *Run {
	if opts.MaxDT <= 0 {
		opts.MaxDT = core.DefaultMaxDT
	}
	opts.Unlocks = opts.Unlocks.Clone()
	r := &Run{cfg: cfg, opts: opts}
	r.reset()
	return r
}

// Restart discards all runtime state and starts the mission over.
// It is the only operation that rewinds elapsed time.
func (r *Run) Restart() {
	r.reset()
}

func (r *Run) reset() {
	r.clock = timeline.NewClock(r.opts.MaxDT)
	r.tick = 0
	r.outcome = OutcomeRunning
	r.events = r.events[:0]
	r.player = nil
	r.crates = nil
	r.pickups = nil
	r.hazards = nil
	r.enemies = nil
	r.boss = nil
	r.projectiles = nil
	r.fp = nil

	switch r.cfg.Mode {
	case ModeFirstPerson:
		r.resetFirstPerson()
	default:
		r.resetPlatformer()
	}
}

func (r *Run) resetPlatformer() {
	cfg := r.cfg
	r.player = actor.NewPlayer(cfg.Spawn.X, cfg.Spawn.Y, cfg.tuning(), r.opts.Unlocks)

	for _, c := range cfg.Crates {
		r.crates = append(r.crates, actor.NewCrate(c.Box, c.Health))
	}
	for _, p := range cfg.Pickups {
		r.pickups = append(r.pickups, pickup{box: p.Box, amount: p.Amount})
	}
	for _, h := range cfg.Hazards {
		if hz := hazard.New(h); hz != nil {
			r.hazards = append(r.hazards, hz)
		}
	}
	for _, e := range cfg.Enemies {
		r.enemies = append(r.enemies, actor.NewEnemy(e))
	}
}

func (r *Run) resetFirstPerson() {
	grid, err := raycast.ParseGrid(r.cfg.Grid)
	if err != nil {
		// Unvalidated template: nothing to play.
		r.outcome = OutcomeFailed
		return
	}
	r.fp = newFirstPerson(grid, r.cfg.firstPerson(), rand.New(rand.NewSource(r.opts.Seed))) //#nosec G404 -- gameplay RNG
}

// Config returns the template the run was started from.
func (r *Run) Config() Config {
	return r.cfg
}

// Tick advances the mission by dt seconds (clamped to [0, MaxDT]) using
// the input snapshot in. Once the run is terminal, Tick does nothing and
// keeps returning the outcome.
func (r *Run) Tick(in core.InputFrame, dt float64) Outcome {
	if r.outcome != OutcomeRunning {
		return r.outcome
	}
	r.events = r.events[:0]
	dt = r.clock.Advance(dt)
	now := r.clock.Elapsed()
	r.tick++

	switch r.cfg.Mode {
	case ModeFirstPerson:
		r.tickFirstPerson(in, now, dt)
	default:
		r.tickPlatformer(in, now, dt)
	}
	return r.outcome
}

// Outcome returns the current outcome.
func (r *Run) Outcome() Outcome {
	return r.outcome
}

// Elapsed returns mission time in seconds.
func (r *Run) Elapsed() float64 {
	return r.clock.Elapsed()
}

// Ticks returns the number of ticks simulated since the last restart.
func (r *Run) Ticks() uint64 {
	return r.tick
}

// Events returns the events of the last tick. The slice is reused by the
// next tick.
func (r *Run) Events() []Event {
	return r.events
}

func (r *Run) emit(kind EventKind, x, y float64, value int, detail string) {
	r.events = append(r.events, Event{
		Kind:   kind,
		Time:   r.clock.Elapsed(),
		X:      x,
		Y:      y,
		Value:  value,
		Detail: detail,
	})
}

func (r *Run) finish(o Outcome, x, y float64) {
	r.outcome = o
	kind := EventCleared
	if o == OutcomeFailed {
		kind = EventFailed
	}
	r.emit(kind, x, y, 0, "")
}
