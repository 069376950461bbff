package mission

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/raycast"
)

// fpEnemy is a first-person patrol enemy.
type fpEnemy struct {
	actor.Vitals
	Pos        core.Vec
	Heading    float64
	Hostile    bool
	Alive      bool
	nextTurnAt float64
	nextFireAt float64
}

// firstPerson is the state of a first-person run.
type firstPerson struct {
	grid   *raycast.Grid
	tuning FirstPersonTuning
	rng    *rand.Rand

	vitals     actor.Vitals
	pos        core.Vec
	angle      float64
	nextFireAt float64

	enemies []*fpEnemy
	bolts   []*actor.Projectile
}

func newFirstPerson(grid *raycast.Grid, t FirstPersonTuning, rng *rand.Rand) *firstPerson {
	fp := &firstPerson{
		grid:   grid,
		tuning: t,
		rng:    rng,
		vitals: actor.NewVitals(t.MaxHealth),
		pos:    grid.Spawn,
		angle:  initialAngle(grid),
	}
	for _, at := range grid.Enemies {
		e := &fpEnemy{
			Vitals: actor.NewVitals(t.EnemyHealth),
			Pos:    at,
			Alive:  true,
		}
		fp.retarget(e, 0)
		fp.enemies = append(fp.enemies, e)
	}
	return fp
}

// initialAngle faces the spawn towards its first open neighbour.
func initialAngle(g *raycast.Grid) float64 {
	cx, cy := int(g.Spawn.X), int(g.Spawn.Y)
	dirs := []struct {
		dx, dy int
		angle  float64
	}{
		{1, 0, 0},
		{0, 1, math.Pi / 2},
		{-1, 0, math.Pi},
		{0, -1, -math.Pi / 2},
	}
	for _, d := range dirs {
		if !g.IsWall(cx+d.dx, cy+d.dy) {
			return d.angle
		}
	}
	return 0
}

// retarget picks a new seeded heading and turn deadline.
func (fp *firstPerson) retarget(e *fpEnemy, now float64) {
	t := fp.tuning
	e.Heading = fp.rng.Float64() * 2 * math.Pi
	span := math.Max(0, t.TurnMax-t.TurnMin)
	e.nextTurnAt = now + t.TurnMin + fp.rng.Float64()*span
}

func (r *Run) tickFirstPerson(in core.InputFrame, now, dt float64) {
	fp := r.fp
	if fp == nil {
		return
	}
	t := fp.tuning

	turn, move := in.Axis()
	fp.angle = normalizeAngle(fp.angle + float64(turn)*t.TurnSpeed*dt)

	// MoveY -1 is forward. Each axis is tested on its own so the player
	// slides along walls.
	if move != 0 {
		step := float64(-move) * t.MoveSpeed * dt
		nx := fp.pos.X + math.Cos(fp.angle)*step
		if fp.grid.CanOccupy(nx, fp.pos.Y, t.Radius) {
			fp.pos.X = nx
		}
		ny := fp.pos.Y + math.Sin(fp.angle)*step
		if fp.grid.CanOccupy(fp.pos.X, ny, t.Radius) {
			fp.pos.Y = ny
		}
	}

	if in.Has(core.ActionFire) && now >= fp.nextFireAt {
		fp.nextFireAt = now + t.FireCooldown
		r.fireBolt(fp.pos, fp.angle, t.BoltDamage, actor.SidePlayer)
	}

	for _, e := range fp.enemies {
		if e.Alive {
			r.updateFPEnemy(e, now, dt)
		}
	}

	r.updateBolts(now, dt)

	if !fp.vitals.Alive() {
		r.finish(OutcomeFailed, fp.pos.X, fp.pos.Y)
		return
	}
	if fp.aliveEnemies() == 0 && fp.pos.Sub(fp.grid.Exit).Len() <= t.ExitRadius {
		r.finish(OutcomeCleared, fp.pos.X, fp.pos.Y)
	}
}

func (r *Run) updateFPEnemy(e *fpEnemy, now, dt float64) {
	fp := r.fp
	t := fp.tuning

	toPlayer := fp.pos.Sub(e.Pos)
	e.Hostile = toPlayer.Len() <= t.AggroRange && fp.grid.LineOfSight(e.Pos, fp.pos, t.RayStep)

	if e.Hostile {
		e.Heading = math.Atan2(toPlayer.Y, toPlayer.X)
		if now >= e.nextFireAt {
			e.nextFireAt = now + t.EnemyCooldown
			r.fireBolt(e.Pos, e.Heading, t.EnemyBoltDamage, actor.SideEnemy)
		}
		return
	}

	if now >= e.nextTurnAt {
		fp.retarget(e, now)
	}
	nx := e.Pos.X + math.Cos(e.Heading)*t.EnemySpeed*dt
	ny := e.Pos.Y + math.Sin(e.Heading)*t.EnemySpeed*dt
	if !fp.grid.CanOccupy(nx, ny, t.EnemyRadius) {
		fp.retarget(e, now)
		return
	}
	e.Pos = core.Vec{X: nx, Y: ny}
}

func (r *Run) fireBolt(from core.Vec, angle float64, damage int, owner actor.Side) {
	fp := r.fp
	t := fp.tuning
	dir := core.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	// Start just outside the shooter so it cannot hit itself.
	offset := t.Radius + t.BoltRadius
	if owner == actor.SideEnemy {
		offset = t.EnemyRadius + t.BoltRadius
	}
	pos := from.Add(dir.Scale(offset))
	fp.bolts = append(fp.bolts, actor.NewProjectile(pos, dir.Scale(t.BoltSpeed), t.BoltRadius, float64(damage), owner, 0))
	r.emit(EventBoltFired, pos.X, pos.Y, damage, owner.String())
}

func (r *Run) updateBolts(now, dt float64) {
	fp := r.fp
	t := fp.tuning

	for _, b := range fp.bolts {
		if !b.Alive {
			continue
		}
		b.Step(dt)
		if fp.grid.SolidAt(b.Pos.X, b.Pos.Y) {
			b.Alive = false
			continue
		}

		if b.Owner == actor.SideEnemy {
			if b.Hits(bodyRect(fp.pos, t.Radius)) {
				if dmg := actor.WholeDamage(b.RegisterHit(playerKey, 0)); dmg > 0 {
					dmg = r.cfg.scaleDamage(dmg)
					if fp.vitals.TakeDamage(dmg, now, t.InvulnWindow) {
						r.emit(EventPlayerHit, fp.pos.X, fp.pos.Y, dmg, "bolt")
					}
				}
			}
			continue
		}

		for i, e := range fp.enemies {
			if !e.Alive || !b.Hits(bodyRect(e.Pos, t.EnemyRadius)) {
				continue
			}
			if dmg := b.RegisterHit(i, 0); dmg > 0 && e.Wound(dmg, now, 0) > 0 && !e.Vitals.Alive() {
				e.Alive = false
				e.Hostile = false
				r.emit(EventEnemyKilled, e.Pos.X, e.Pos.Y, 0, "")
			}
		}
	}

	kept := fp.bolts[:0]
	for _, b := range fp.bolts {
		if b.Alive {
			kept = append(kept, b)
		}
	}
	clear(fp.bolts[len(kept):])
	fp.bolts = kept
}

func (fp *firstPerson) aliveEnemies() int {
	n := 0
	for _, e := range fp.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// bodyRect is the square hit box of a body of radius r.
func bodyRect(c core.Vec, r float64) core.Rect {
	return core.NewRect(c.X-r, c.Y-r, 2*r, 2*r)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
