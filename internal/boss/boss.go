// Package boss implements the multi-phase boss of a side-scrolling mission.
//
// The boss cycles reposition -> telegraph -> attack -> recover. Its phase
// (1..3) is a pure function of the health ratio and is recomputed every
// update. Every timer is an absolute mission time so the machine behaves
// the same for any frame pacing.
package boss

import (
	"math"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// State is the boss behaviour state.
type State uint8

const (
	StateReposition State = iota
	StateTelegraph
	StateAttack
	StateRecover
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateReposition:
		return "reposition"
	case StateTelegraph:
		return "telegraph"
	case StateAttack:
		return "attack"
	case StateRecover:
		return "recover"
	default:
		return "unknown"
	}
}

// AttackKind is one of the boss attacks.
type AttackKind uint8

const (
	AttackSpread AttackKind = iota
	AttackDash
	AttackArea
)

// String returns a human-readable name for the attack.
func (a AttackKind) String() string {
	switch a {
	case AttackSpread:
		return "spread"
	case AttackDash:
		return "dash"
	case AttackArea:
		return "area"
	default:
		return "unknown"
	}
}

// ParseAttack maps a name to an attack kind.
func ParseAttack(name string) (AttackKind, bool) {
	switch name {
	case "spread":
		return AttackSpread, true
	case "dash":
		return AttackDash, true
	case "area":
		return AttackArea, true
	default:
		return 0, false
	}
}

// MaxPhase is the highest boss phase.
const MaxPhase = 3

// defaultPattern is used for a phase without an attack list.
var defaultPattern = []AttackKind{AttackSpread}

// PhaseFor returns 1 plus the number of thresholds the ratio is below,
// clamped to 1..MaxPhase.
func PhaseFor(ratio float64, thresholds []float64) int {
	phase := 1
	for _, t := range thresholds {
		if ratio < t {
			phase++
		}
	}
	return core.Clamp(phase, 1, MaxPhase)
}

// HitSource identifies what part of the boss produced a hit.
type HitSource uint8

const (
	SourceBody HitSource = iota
	SourceDash
	SourceZone
)

// Hit is damage the boss deals to the player.
type Hit struct {
	Source  HitSource
	Damage  int
	SourceX float64
}

// Env is what the boss reads from the mission each update.
type Env struct {
	Now    float64
	DT     float64
	Player core.Rect
}

// Output collects what the boss produced in one update.
type Output struct {
	Shots []*actor.Projectile
	Hits  []Hit

	PhaseChanged bool
	FromPhase    int

	AttackStarted bool
	Attack        AttackKind

	Resolved bool // An attack finished and opened a vulnerability window
}

// Reset empties the output for reuse.
func (o *Output) Reset() {
	o.Shots = o.Shots[:0]
	o.Hits = o.Hits[:0]
	o.PhaseChanged = false
	o.FromPhase = 0
	o.AttackStarted = false
	o.Resolved = false
}

// Zone is an area-denial zone spawned by an area attack.
type Zone struct {
	Box    core.Rect
	cycle  timeline.Cycle
	damage int
	hit    bool
}

// Phase returns the zone phase at now. A zone rests as Dormant after its
// active interval ends.
func (z *Zone) Phase(now float64) timeline.Phase {
	s := z.cycle.At(now)
	if s.Cycle != 0 {
		return timeline.Dormant
	}
	return s.Phase
}

// Expired reports whether the zone has finished.
func (z *Zone) Expired(now float64) bool {
	return z.cycle.Stamp(now) >= 1
}

// Boss is a live boss.
type Boss struct {
	actor.Vitals

	Pos             core.Vec // Top-left corner
	VulnerableUntil float64

	cfg         Config
	phase       int
	state       State
	stateStart  float64
	stateUntil  float64
	attack      AttackKind
	attackIndex int
	dashTargetX float64
	repositionX float64
	zones       []*Zone
}

// New spawns a boss with its left edge at x, standing on cfg.GroundY.
func New(cfg Config, x, now float64) *Boss {
	cfg = cfg.withDefaults()
	b := &Boss{
		Vitals: actor.NewVitals(cfg.MaxHealth),
		Pos:    core.Vec{X: x, Y: cfg.GroundY - cfg.H},
		cfg:    cfg,
		phase:  1,
	}
	b.repositionX = b.Pos.X
	b.enter(StateReposition, now, cfg.RepositionTime)
	return b
}

// Phase returns the current phase.
func (b *Boss) Phase() int {
	return b.phase
}

// State returns the current behaviour state.
func (b *Boss) State() State {
	return b.state
}

// Attack returns the current or last selected attack.
func (b *Boss) Attack() AttackKind {
	return b.attack
}

// AttackIndex returns the persistent pattern position.
func (b *Boss) AttackIndex() int {
	return b.attackIndex
}

// Zones returns the live area-denial zones.
func (b *Boss) Zones() []*Zone {
	return b.zones
}

// Box returns the collision box.
func (b *Boss) Box() core.Rect {
	return core.NewRect(b.Pos.X, b.Pos.Y, b.cfg.W, b.cfg.H)
}

// Center returns the centre of the collision box.
func (b *Boss) Center() core.Vec {
	return b.Box().Center()
}

// Vulnerable reports whether damage at now bypasses armour.
func (b *Boss) Vulnerable(now float64) bool {
	return now < b.VulnerableUntil
}

// TakeDamage applies amount, reduced by the armour factor outside the
// vulnerability window. Fractions carry to later hits, so armour halves
// even single-point shots over time. Returns the whole damage applied.
func (b *Boss) TakeDamage(amount, now float64) int {
	if amount <= 0 || !b.Alive() {
		return 0
	}
	if !b.Vulnerable(now) {
		amount *= b.cfg.ArmorFactor
	}
	dealt := b.Wound(amount, now, 0)
	if !b.Alive() {
		b.zones = nil
	}
	return dealt
}

// Update advances the boss to env.Now.
func (b *Boss) Update(env Env, out *Output) {
	if !b.Alive() {
		return
	}

	if p := PhaseFor(b.Ratio(), b.cfg.Thresholds); p != b.phase {
		out.PhaseChanged = true
		out.FromPhase = b.phase
		b.phase = p
	}

	switch b.state {
	case StateReposition:
		b.updateReposition(env)
	case StateTelegraph:
		b.updateTelegraph(env, out)
	case StateAttack:
		b.updateAttack(env, out)
	case StateRecover:
		if env.Now >= b.stateUntil {
			b.beginReposition(env)
		}
	}

	b.updateZones(env, out)

	if b.Box().Intersects(env.Player) {
		out.Hits = append(out.Hits, Hit{
			Source:  SourceBody,
			Damage:  b.cfg.ContactDamage,
			SourceX: b.Center().X,
		})
	}
}

func (b *Boss) enter(s State, now, duration float64) {
	b.state = s
	b.stateStart = now
	b.stateUntil = now + b.scaled(duration)
}

// scaled shortens state durations in later phases.
func (b *Boss) scaled(d float64) float64 {
	return d / (1 + b.cfg.PhaseSpeedup*float64(b.phase-1))
}

func (b *Boss) beginReposition(env Env) {
	// Retreat to the arena edge farther from the player.
	mid := (b.cfg.ArenaMinX + b.cfg.ArenaMaxX) / 2
	if env.Player.Center().X < mid {
		b.repositionX = b.cfg.ArenaMaxX - b.cfg.W
	} else {
		b.repositionX = b.cfg.ArenaMinX
	}
	b.enter(StateReposition, env.Now, b.cfg.RepositionTime)
}

func (b *Boss) updateReposition(env Env) {
	b.Pos.X = core.Approach(b.Pos.X, b.repositionX, b.cfg.MoveSpeed*env.DT)
	if env.Now >= b.stateUntil {
		b.enter(StateTelegraph, env.Now, b.cfg.TelegraphTime)
	}
}

func (b *Boss) updateTelegraph(env Env, out *Output) {
	if env.Now < b.stateUntil {
		return
	}
	b.attack = b.nextAttack()
	out.AttackStarted = true
	out.Attack = b.attack

	switch b.attack {
	case AttackSpread:
		b.fireSpread(env, out)
		b.enter(StateAttack, env.Now, b.cfg.AttackTime)
	case AttackDash:
		b.dashTargetX = core.ClampF(env.Player.Center().X-b.cfg.W/2, b.cfg.ArenaMinX, b.cfg.ArenaMaxX-b.cfg.W)
		b.state = StateAttack
		b.stateStart = env.Now
		b.stateUntil = env.Now + b.cfg.DashTimeout
	case AttackArea:
		b.spawnZones(env)
		b.enter(StateAttack, env.Now, b.cfg.AttackTime)
	}
}

// nextAttack picks from the current phase's pattern. The index persists
// across phase changes.
func (b *Boss) nextAttack() AttackKind {
	pattern := defaultPattern
	if i := b.phase - 1; i < len(b.cfg.Patterns) && len(b.cfg.Patterns[i]) > 0 {
		pattern = b.cfg.Patterns[i]
	}
	a := pattern[b.attackIndex%len(pattern)]
	b.attackIndex++
	return a
}

func (b *Boss) updateAttack(env Env, out *Output) {
	switch b.attack {
	case AttackDash:
		step := b.cfg.DashSpeed * env.DT
		b.Pos.X = core.Approach(b.Pos.X, b.dashTargetX, step)
		arrived := b.Pos.X == b.dashTargetX
		if !arrived && env.Now < b.stateUntil {
			return
		}
		impact := b.Box()
		impact.X -= b.cfg.DashRadius
		impact.W += 2 * b.cfg.DashRadius
		impact.Y -= b.cfg.DashRadius
		impact.H += b.cfg.DashRadius
		if impact.Intersects(env.Player) {
			out.Hits = append(out.Hits, Hit{
				Source:  SourceDash,
				Damage:  b.cfg.DashDamage,
				SourceX: b.Center().X,
			})
		}
		b.resolve(env, out)
	default:
		if env.Now >= b.stateUntil {
			b.resolve(env, out)
		}
	}
}

func (b *Boss) resolve(env Env, out *Output) {
	b.VulnerableUntil = env.Now + b.cfg.VulnerableWindow
	out.Resolved = true
	b.enter(StateRecover, env.Now, b.cfg.RecoverTime)
}

func (b *Boss) fireSpread(env Env, out *Output) {
	c := b.Center()
	target := env.Player.Center()
	base := math.Atan2(target.Y-c.Y, target.X-c.X)
	n := b.cfg.SpreadCount
	step := b.cfg.SpreadAngle * float64(b.phase)

	for i := range n {
		angle := base + (float64(i)-float64(n-1)/2)*step
		vel := core.Vec{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(b.cfg.ShotSpeed)
		out.Shots = append(out.Shots, actor.NewProjectile(
			c, vel, b.cfg.ShotRadius, float64(b.cfg.ShotDamage), actor.SideEnemy, 0,
		))
	}
}

func (b *Boss) spawnZones(env Env) {
	n := b.cfg.ZoneCount
	cx := env.Player.Center().X
	spacing := b.cfg.ZoneWidth * 1.5

	for i := range n {
		x := cx + (float64(i)-float64(n-1)/2)*spacing - b.cfg.ZoneWidth/2
		x = core.ClampF(x, b.cfg.ArenaMinX, b.cfg.ArenaMaxX-b.cfg.ZoneWidth)
		b.zones = append(b.zones, &Zone{
			Box: core.NewRect(x, b.cfg.GroundY-b.cfg.ZoneHeight, b.cfg.ZoneWidth, b.cfg.ZoneHeight),
			cycle: timeline.Cycle{
				Offset: env.Now,
				Segments: []timeline.Segment{
					{Phase: timeline.Warning, Duration: b.cfg.ZoneWarning},
					{Phase: timeline.Active, Duration: b.cfg.ZoneActive},
				},
			},
			damage: b.cfg.ZoneDamage,
		})
	}
}

func (b *Boss) updateZones(env Env, out *Output) {
	kept := b.zones[:0]
	for _, z := range b.zones {
		if z.Expired(env.Now) {
			continue
		}
		if z.Phase(env.Now) == timeline.Active && !z.hit && z.Box.Intersects(env.Player) {
			z.hit = true
			out.Hits = append(out.Hits, Hit{
				Source:  SourceZone,
				Damage:  z.damage,
				SourceX: z.Box.Center().X,
			})
		}
		kept = append(kept, z)
	}
	b.zones = kept
}
