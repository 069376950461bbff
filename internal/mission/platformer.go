package mission

import (
	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/boss"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
)

const (
	// collisionPasses bounds the horizontal pushout iterations so a box
	// wedged between adjacent colliders settles without looping forever.
	collisionPasses = 3
	// groundProbe is how far below the feet support is searched.
	groundProbe = 0.05
	// bossKey identifies the boss in projectile hit bookkeeping.
	bossKey = -1
	// playerKey identifies the player in projectile hit bookkeeping.
	playerKey = -2
	// enemyKeyBase offsets enemy indices from crate indices.
	enemyKeyBase = 1 << 16
)

// tickPlatformer runs one side-scrolling tick in strict order:
// input, integration, collision, hazards, enemies, boss, projectiles,
// terminal check.
func (r *Run) tickPlatformer(in core.InputFrame, now, dt float64) {
	p := r.player

	for _, s := range p.ApplyIntent(in, now, dt) {
		r.projectiles = append(r.projectiles, s)
		r.emit(EventShotFired, s.Pos.X, s.Pos.Y, int(s.Damage), actor.SidePlayer.String())
	}

	prev := p.Pos
	p.Integrate(now, dt)
	r.resolveCollisions(prev)
	r.applyBounds()

	if p.Alive() {
		r.updateHazards(now, dt)
		r.updatePickups()
		r.updateEnemies(now, dt)
		r.updateBoss(now, dt)
	}
	r.updateProjectiles(now, dt)

	r.checkTerminal()
}

// colliders returns static solids plus live crates.
func (r *Run) colliders() []core.Rect {
	out := make([]core.Rect, 0, len(r.cfg.Solids)+len(r.crates))
	out = append(out, r.cfg.Solids...)
	for _, c := range r.crates {
		if c.Alive {
			out = append(out, c.Box)
		}
	}
	return out
}

// resolveCollisions separates the player from colliders one axis at a time:
// horizontal passes first with the vertical move withheld, then the
// vertical pass, then the ground probe.
func (r *Run) resolveCollisions(prev core.Vec) {
	p := r.player
	solids := r.colliders()

	targetY := p.Pos.Y
	p.Pos.Y = prev.Y
	r.resolveX(solids, prev.X)

	p.Pos.Y = targetY
	r.resolveY(solids, prev.Y)

	p.SetGrounded(p.Vel.Y >= 0 && r.probeGround(solids))
}

func (r *Run) resolveX(solids []core.Rect, prevX float64) {
	p := r.player
	for range collisionPasses {
		moved := false
		for _, s := range solids {
			box := p.Box()
			if !box.Intersects(s) {
				continue
			}
			dx := p.Pos.X - prevX
			switch {
			case dx > 0:
				p.Pos.X = s.X - box.W
			case dx < 0:
				p.Pos.X = s.Right()
			case box.Center().X < s.Center().X:
				p.Pos.X = s.X - box.W
			default:
				p.Pos.X = s.Right()
			}
			p.Vel.X = 0
			moved = true
		}
		if !moved {
			return
		}
	}
}

func (r *Run) resolveY(solids []core.Rect, prevY float64) {
	p := r.player
	for range collisionPasses {
		moved := false
		for _, s := range solids {
			box := p.Box()
			if !box.Intersects(s) {
				continue
			}
			dy := p.Pos.Y - prevY
			switch {
			case dy > 0:
				p.Pos.Y = s.Y - box.H
			case dy < 0:
				p.Pos.Y = s.Bottom()
			case box.Center().Y < s.Center().Y:
				p.Pos.Y = s.Y - box.H
			default:
				p.Pos.Y = s.Bottom()
			}
			p.Vel.Y = 0
			moved = true
		}
		if !moved {
			return
		}
	}
}

func (r *Run) probeGround(solids []core.Rect) bool {
	box := r.player.Box()
	feet := core.NewRect(box.X, box.Bottom(), box.W, groundProbe)
	for _, s := range solids {
		if feet.Intersects(s) {
			return true
		}
	}
	return false
}

// applyBounds keeps the player inside the world horizontally and routes a
// fall below the world through the damage path as lethal damage.
func (r *Run) applyBounds() {
	p := r.player
	b := r.cfg.Bounds
	w := p.Box().W

	if p.Pos.X < b.X {
		p.Pos.X = b.X
		p.Vel.X = 0
	}
	if p.Pos.X+w > b.Right() {
		p.Pos.X = b.Right() - w
		p.Vel.X = 0
	}
	if p.Pos.Y < b.Y {
		p.Pos.Y = b.Y
		if p.Vel.Y < 0 {
			p.Vel.Y = 0
		}
	}
	if p.Pos.Y > b.Bottom() && p.Alive() {
		c := p.Center()
		lost := p.Health
		p.Kill()
		r.emit(EventPlayerHit, c.X, c.Y, lost, "fall")
	}
}

// hurtPlayer is the single damage path for the side-scrolling player.
func (r *Run) hurtPlayer(amount int, sourceX, now float64, detail string) {
	amount = r.cfg.scaleDamage(amount)
	if r.player.Hurt(amount, sourceX, now) {
		c := r.player.Center()
		r.emit(EventPlayerHit, c.X, c.Y, amount, detail)
	}
}

func (r *Run) updateHazards(now, dt float64) {
	p := r.player
	for _, h := range r.hazards {
		target := hazard.Target{Box: p.Box(), Grounded: p.Grounded}
		r.fx.Reset()
		hazard.Update(h, now, dt, target, &r.fx)

		if r.fx.PushX != 0 {
			prevX := p.Pos.X
			p.Pos.X += r.fx.PushX
			r.resolveX(r.colliders(), prevX)
			r.applyBounds()
		}
		for _, hit := range r.fx.Hits {
			r.hurtPlayer(hit.Damage, hit.SourceX, now, hit.Kind.String())
		}
		if r.fx.Slams > 0 {
			if c, ok := h.(*hazard.Crusher); ok {
				head := c.HeadRect(now)
				r.emit(EventCrusherSlam, head.Center().X, head.Bottom(), r.fx.Slams, "")
			}
		}
		for _, s := range r.fx.Spawns {
			r.emit(EventDebrisSpawned, s.X, s.Y, 0, "")
		}
	}
}

func (r *Run) updatePickups() {
	p := r.player
	for i := range r.pickups {
		pk := &r.pickups[i]
		if pk.used || !p.Box().Intersects(pk.box) {
			continue
		}
		pk.used = true
		healed := p.Heal(pk.amount)
		c := pk.box.Center()
		r.emit(EventPlayerHealed, c.X, c.Y, healed, "")
	}
}

func (r *Run) updateEnemies(now, dt float64) {
	p := r.player
	for _, e := range r.enemies {
		if !e.Alive {
			continue
		}
		e.Patrol(dt)
		// No enemy-side cooldown: the player's invulnerability window is the only throttle.
		if e.Box().Intersects(p.Box()) {
			r.hurtPlayer(e.ContactDamage, e.Box().Center().X, now, "contact")
		}
	}
}

func (r *Run) updateBoss(now, dt float64) {
	spec := r.cfg.Boss
	if spec == nil {
		return
	}
	p := r.player

	if r.boss == nil {
		if p.Center().X < spec.TriggerX {
			return
		}
		r.boss = boss.New(spec.Config, spec.SpawnX, now)
		c := r.boss.Center()
		r.emit(EventBossSpawned, c.X, c.Y, r.boss.Health, "")
	}
	if !r.boss.Alive() {
		return
	}

	r.bossOut.Reset()
	r.boss.Update(boss.Env{Now: now, DT: dt, Player: p.Box()}, &r.bossOut)
	out := &r.bossOut
	c := r.boss.Center()

	if out.PhaseChanged {
		r.emit(EventBossPhase, c.X, c.Y, r.boss.Phase(), "")
	}
	if out.AttackStarted {
		r.emit(EventBossAttack, c.X, c.Y, int(out.Attack), out.Attack.String())
	}
	if out.Resolved {
		r.emit(EventBossVulnerable, c.X, c.Y, 0, "")
	}
	r.projectiles = append(r.projectiles, out.Shots...)
	for _, hit := range out.Hits {
		r.hurtPlayer(hit.Damage, hit.SourceX, now, "boss")
	}
}

func (r *Run) updateProjectiles(now, dt float64) {
	falloff := r.player.Tuning().PierceFalloff

	for _, pr := range r.projectiles {
		if !pr.Alive {
			continue
		}
		pr.Step(dt)
		if pr.Outside(r.cfg.Bounds) {
			pr.Alive = false
			continue
		}
		if r.hitsSolid(pr) {
			pr.Alive = false
			continue
		}

		if pr.Owner == actor.SideEnemy {
			if r.player.Alive() && pr.Hits(r.player.Box()) {
				if dmg := actor.WholeDamage(pr.RegisterHit(playerKey, 0)); dmg > 0 {
					r.hurtPlayer(dmg, pr.Pos.X, now, "projectile")
				}
			}
			continue
		}

		for i, c := range r.crates {
			if !c.Alive || !pr.Hits(c.Box) {
				continue
			}
			if dmg := pr.RegisterHit(i, falloff); dmg > 0 && c.Hit(dmg) {
				cc := c.Box.Center()
				r.emit(EventCrateBroken, cc.X, cc.Y, 0, "")
			}
		}
		for i, e := range r.enemies {
			if !e.Alive || !pr.Hits(e.Box()) {
				continue
			}
			if dmg := pr.RegisterHit(enemyKeyBase+i, falloff); dmg > 0 && e.Hit(dmg) {
				ec := e.Box().Center()
				r.emit(EventEnemyKilled, ec.X, ec.Y, 0, "")
			}
		}
		if r.boss != nil && r.boss.Alive() && pr.Hits(r.boss.Box()) {
			if dmg := pr.RegisterHit(bossKey, falloff); dmg > 0 {
				r.boss.TakeDamage(dmg, now)
				if !r.boss.Alive() {
					bc := r.boss.Center()
					r.emit(EventBossDefeated, bc.X, bc.Y, 0, "")
				}
			}
		}
	}

	kept := r.projectiles[:0]
	for _, pr := range r.projectiles {
		if pr.Alive {
			kept = append(kept, pr)
		}
	}
	clear(r.projectiles[len(kept):])
	r.projectiles = kept
}

func (r *Run) hitsSolid(pr *actor.Projectile) bool {
	for _, s := range r.cfg.Solids {
		if pr.Hits(s) {
			return true
		}
	}
	return false
}

func (r *Run) checkTerminal() {
	p := r.player
	c := p.Center()

	if p.Health <= 0 {
		r.finish(OutcomeFailed, c.X, c.Y)
		return
	}

	inGate := r.cfg.Gate != nil && p.Box().Intersects(*r.cfg.Gate)
	var cleared bool
	if r.cfg.Boss != nil {
		cleared = r.boss != nil && !r.boss.Alive() && (r.cfg.Gate == nil || inGate)
	} else {
		cleared = inGate
	}
	if cleared {
		r.finish(OutcomeCleared, c.X, c.Y)
	}
}
