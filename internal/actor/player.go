package actor

import (
	"github.com/vovakirdan/sortie/internal/core"
)

// Player is the single controllable actor of a mission.
type Player struct {
	Vitals

	Pos      core.Vec // Top-left corner
	Vel      core.Vec
	Facing   float64 // -1 or 1
	Grounded bool

	JumpsUsed   int
	DashCharges int
	DashUntil   float64
	NextFireAt  float64
	Charging    bool
	ChargeStart float64

	dashDir float64
	tuning  Tuning
	unlocks core.Unlocks
}

// NewPlayer places a player with full health at (x, y).
func NewPlayer(x, y float64, t Tuning, unlocks core.Unlocks) *Player {
	return &Player{
		Vitals:      NewVitals(t.MaxHealth),
		Pos:         core.Vec{X: x, Y: y},
		Facing:      1,
		DashCharges: t.AirDashCharges,
		tuning:      t,
		unlocks:     unlocks.Clone(),
	}
}

// Tuning returns the controller constants.
func (p *Player) Tuning() Tuning {
	return p.tuning
}

// Box returns the collision box.
func (p *Player) Box() core.Rect {
	return core.NewRect(p.Pos.X, p.Pos.Y, p.tuning.Width, p.tuning.Height)
}

// Center returns the centre of the collision box.
func (p *Player) Center() core.Vec {
	return p.Box().Center()
}

// JumpBudget returns how many jumps are available between landings.
func (p *Player) JumpBudget() int {
	n := p.tuning.Jumps
	if p.unlocks.Has(core.UnlockDoubleJump) {
		n++
	}
	return n
}

// Dashing reports whether an air dash is in progress.
func (p *Player) Dashing(now float64) bool {
	return now < p.DashUntil
}

// ApplyIntent turns one input frame into velocity changes and returns the
// projectiles fired this tick.
func (p *Player) ApplyIntent(in core.InputFrame, now, dt float64) []*Projectile {
	t := p.tuning
	moveX, _ := in.Axis()
	if moveX != 0 {
		p.Facing = float64(moveX)
	}

	if p.Dashing(now) {
		p.Vel.X = p.dashDir * t.DashSpeed
		p.Vel.Y = 0
	} else {
		target := float64(moveX) * t.MoveSpeed
		rate := t.Decel
		if moveX != 0 && core.Sign(p.Vel.X) != -float64(moveX) {
			rate = t.Accel
		}
		p.Vel.X = core.Approach(p.Vel.X, target, rate*dt)
	}

	if in.Has(core.ActionJump) && p.JumpsUsed < p.JumpBudget() {
		p.JumpsUsed++
		p.Vel.Y = -t.JumpSpeed
		p.Grounded = false
		p.DashUntil = 0
	}

	if in.Has(core.ActionDash) && p.canAirDash(now) {
		p.DashCharges--
		p.DashUntil = now + t.DashDuration
		p.dashDir = p.Facing
		p.Vel.X = p.dashDir * t.DashSpeed
		p.Vel.Y = 0
	}

	var shots []*Projectile
	if in.Has(core.ActionFire) && now >= p.NextFireAt {
		shots = append(shots, p.shoot(t.ShotDamage, t.ShotRadius))
		p.NextFireAt = now + t.FireCooldown
	}

	if p.unlocks.Has(core.UnlockChargeShot) {
		if in.Has(core.ActionChargeHold) && !p.Charging {
			p.Charging = true
			p.ChargeStart = now
		}
		if in.Has(core.ActionChargeRelease) && p.Charging {
			p.Charging = false
			switch {
			case now-p.ChargeStart >= t.ChargeTime:
				shots = append(shots, p.shoot(t.ChargeDamage, t.ChargeRadius))
				p.NextFireAt = now + t.FireCooldown
			case now >= p.NextFireAt:
				shots = append(shots, p.shoot(t.ShotDamage, t.ShotRadius))
				p.NextFireAt = now + t.FireCooldown
			}
		}
	}

	return shots
}

// ChargeLevel returns charge progress in [0, 1].
func (p *Player) ChargeLevel(now float64) float64 {
	if !p.Charging || p.tuning.ChargeTime <= 0 {
		return 0
	}
	return core.ClampF((now-p.ChargeStart)/p.tuning.ChargeTime, 0, 1)
}

func (p *Player) canAirDash(now float64) bool {
	return !p.Grounded &&
		p.unlocks.Has(core.UnlockAirDash) &&
		p.DashCharges > 0 &&
		!p.Dashing(now)
}

func (p *Player) shoot(damage int, radius float64) *Projectile {
	c := p.Center()
	pierce := 0
	if p.unlocks.Has(core.UnlockPiercing) {
		pierce = p.tuning.PierceBudget
	}
	return NewProjectile(
		core.Vec{X: c.X + p.Facing*p.tuning.Width/2, Y: c.Y},
		core.Vec{X: p.Facing * p.tuning.ShotSpeed},
		radius, float64(damage), SidePlayer, pierce,
	)
}

// Integrate applies gravity and moves the player by its velocity.
// Gravity is suspended while dashing.
func (p *Player) Integrate(now, dt float64) {
	if !p.Dashing(now) {
		p.Vel.Y += p.tuning.Gravity * dt
		if p.Vel.Y > p.tuning.MaxFall {
			p.Vel.Y = p.tuning.MaxFall
		}
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// SetGrounded records the result of the ground probe.
func (p *Player) SetGrounded(onGround bool) {
	if onGround {
		p.Land()
		return
	}
	if p.Grounded {
		// Walking off a ledge spends the ground jump.
		p.Grounded = false
		if p.JumpsUsed == 0 {
			p.JumpsUsed = 1
		}
	}
}

// Land restores the jump budget and air-dash charges.
func (p *Player) Land() {
	p.Grounded = true
	p.JumpsUsed = 0
	p.DashCharges = p.tuning.AirDashCharges
	if p.Vel.Y > 0 {
		p.Vel.Y = 0
	}
}

// Hurt applies damage from a source at sourceX and knocks the player away
// from it. Returns true if the damage was applied.
func (p *Player) Hurt(amount int, sourceX, now float64) bool {
	if !p.TakeDamage(amount, now, p.tuning.InvulnWindow) {
		return false
	}
	dir := core.Sign(p.Center().X - sourceX)
	if dir == 0 {
		dir = -p.Facing
	}
	p.Vel.X = dir * p.tuning.Knockback
	p.Vel.Y = -p.tuning.KnockbackLift
	p.Grounded = false
	p.DashUntil = 0
	return true
}
