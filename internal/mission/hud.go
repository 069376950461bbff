package mission

import (
	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/raycast"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// BossStatus is the boss readout for the HUD.
type BossStatus struct {
	Health     int
	MaxHealth  int
	Phase      int
	State      string
	Attack     string
	Vulnerable bool
}

// HazardCue is the warning/active readout of one hazard.
type HazardCue struct {
	Index   int
	Kind    hazard.Kind
	Warning bool
	Active  bool
}

// PlayerHealth returns the player's current health.
func (r *Run) PlayerHealth() int {
	switch {
	case r.player != nil:
		return r.player.Health
	case r.fp != nil:
		return r.fp.vitals.Health
	default:
		return 0
	}
}

// PlayerMaxHealth returns the player's maximum health.
func (r *Run) PlayerMaxHealth() int {
	switch {
	case r.player != nil:
		return r.player.MaxHealth
	case r.fp != nil:
		return r.fp.vitals.MaxHealth
	default:
		return 0
	}
}

// Boss reports the boss readout. ok is false until the boss has spawned.
func (r *Run) Boss() (BossStatus, bool) {
	if r.boss == nil {
		return BossStatus{}, false
	}
	b := r.boss
	return BossStatus{
		Health:     b.Health,
		MaxHealth:  b.MaxHealth,
		Phase:      b.Phase(),
		State:      b.State().String(),
		Attack:     b.Attack().String(),
		Vulnerable: b.Vulnerable(r.Elapsed()),
	}, true
}

// HazardCues returns the cue flags of every hazard at the current time.
func (r *Run) HazardCues() []HazardCue {
	now := r.Elapsed()
	out := make([]HazardCue, 0, len(r.hazards))
	for i, h := range r.hazards {
		c := hazard.CueOf(h, now)
		out = append(out, HazardCue{Index: i, Kind: c.Kind, Warning: c.Warning, Active: c.Active})
	}
	return out
}

// EnemiesAlive returns how many regular enemies are alive.
func (r *Run) EnemiesAlive() int {
	if r.fp != nil {
		return r.fp.aliveEnemies()
	}
	n := 0
	for _, e := range r.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// EnemiesTotal returns how many regular enemies the mission placed.
func (r *Run) EnemiesTotal() int {
	if r.fp != nil {
		return len(r.fp.enemies)
	}
	return len(r.enemies)
}

// ChargeLevel returns the player's charge-shot progress in [0, 1].
func (r *Run) ChargeLevel() float64 {
	if r.player == nil {
		return 0
	}
	return r.player.ChargeLevel(r.Elapsed())
}

// DepthColumns returns n fisheye-corrected depth columns from the
// first-person camera, or nil in a side-scrolling mission.
func (r *Run) DepthColumns(n int) []raycast.Column {
	if r.fp == nil {
		return nil
	}
	t := r.fp.tuning
	return r.fp.grid.Columns(r.fp.pos, r.fp.angle, t.FOV, n, t.MaxDepth, t.RayStep)
}

// ShotView is a projectile as seen by a renderer.
type ShotView struct {
	Pos    core.Vec
	Radius float64
	Owner  actor.Side
}

// BeamView is a gated beam as seen by a renderer.
type BeamView struct {
	Box     core.Rect
	Warning bool
	Active  bool
}

// CrusherView is a crusher lane as seen by a renderer.
type CrusherView struct {
	Belt    core.Rect
	Head    core.Rect
	Warning bool
}

// ZoneView is a boss area zone as seen by a renderer.
type ZoneView struct {
	Box    core.Rect
	Active bool
}

// Scene is a read-only copy of a side-scrolling run for renderers.
type Scene struct {
	Bounds   core.Rect
	Player   core.Rect
	Facing   float64
	Blinking bool // Player is invulnerable
	Solids   []core.Rect
	Crates   []core.Rect
	Pickups  []core.Rect
	Enemies  []core.Rect
	Beams    []BeamView
	Crushers []CrusherView
	Debris   []core.Rect
	Boss     *core.Rect
	Zones    []ZoneView
	Shots    []ShotView
	Gate     *core.Rect
}

// Scene returns the side-scrolling render data. ok is false for
// first-person runs.
func (r *Run) Scene() (Scene, bool) {
	if r.player == nil {
		return Scene{}, false
	}
	now := r.Elapsed()
	s := Scene{
		Bounds:   r.cfg.Bounds,
		Player:   r.player.Box(),
		Facing:   r.player.Facing,
		Blinking: r.player.Invulnerable(now),
		Solids:   r.cfg.Solids,
		Gate:     r.cfg.Gate,
	}
	for _, c := range r.crates {
		if c.Alive {
			s.Crates = append(s.Crates, c.Box)
		}
	}
	for _, p := range r.pickups {
		if !p.used {
			s.Pickups = append(s.Pickups, p.box)
		}
	}
	for _, e := range r.enemies {
		if e.Alive {
			s.Enemies = append(s.Enemies, e.Box())
		}
	}
	for _, h := range r.hazards {
		switch hz := h.(type) {
		case *hazard.Beam:
			p := hz.Phase(now)
			s.Beams = append(s.Beams, BeamView{Box: hz.Box(), Warning: p == timeline.Warning, Active: p == timeline.Active})
		case *hazard.Crusher:
			s.Crushers = append(s.Crushers, CrusherView{Belt: hz.Belt(), Head: hz.HeadRect(now), Warning: hz.Phase(now) == timeline.Warning})
		case *hazard.Debris:
			for _, it := range hz.Items() {
				s.Debris = append(s.Debris, it.Box)
			}
		}
	}
	if r.boss != nil && r.boss.Alive() {
		box := r.boss.Box()
		s.Boss = &box
		for _, z := range r.boss.Zones() {
			s.Zones = append(s.Zones, ZoneView{Box: z.Box, Active: z.Phase(now) == timeline.Active})
		}
	}
	for _, p := range r.projectiles {
		s.Shots = append(s.Shots, ShotView{Pos: p.Pos, Radius: p.Radius, Owner: p.Owner})
	}
	return s, true
}

// Sprite is a first-person entity as seen by a renderer.
type Sprite struct {
	Pos     core.Vec
	Hostile bool
	Bolt    bool
	Owner   actor.Side
}

// View is a read-only copy of a first-person run for renderers.
type View struct {
	Pos      core.Vec
	Angle    float64
	FOV      float64
	MaxDepth float64
	Exit     core.Vec
	Rows     []string
	Sprites  []Sprite
}

// FirstPersonView returns the first-person render data. ok is false for
// side-scrolling runs.
func (r *Run) FirstPersonView() (View, bool) {
	if r.fp == nil {
		return View{}, false
	}
	fp := r.fp
	v := View{
		Pos:      fp.pos,
		Angle:    fp.angle,
		FOV:      fp.tuning.FOV,
		MaxDepth: fp.tuning.MaxDepth,
		Exit:     fp.grid.Exit,
		Rows:     fp.grid.Rows(),
	}
	for _, e := range fp.enemies {
		if e.Alive {
			v.Sprites = append(v.Sprites, Sprite{Pos: e.Pos, Hostile: e.Hostile, Owner: actor.SideEnemy})
		}
	}
	for _, b := range fp.bolts {
		v.Sprites = append(v.Sprites, Sprite{Pos: b.Pos, Bolt: true, Owner: b.Owner})
	}
	return v, true
}
