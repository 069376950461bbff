package actor

import (
	"math"

	"github.com/vovakirdan/sortie/internal/core"
)

// EnemyConfig is a patrol enemy template.
type EnemyConfig struct {
	X, Y          float64
	W, H          float64
	MinX, MaxX    float64 // Patrol bounds for the box's left and right edges
	Speed         float64
	Health        int
	ContactDamage int
}

// Enemy is a patrolling hostile. Dead enemies stay in the list with
// Alive false.
type Enemy struct {
	Vitals
	Pos           core.Vec
	Vel           core.Vec
	W, H          float64
	MinX, MaxX    float64
	ContactDamage int
	Alive         bool
}

// NewEnemy creates an enemy from its template.
func NewEnemy(cfg EnemyConfig) *Enemy {
	if cfg.MaxX < cfg.MinX+cfg.W {
		cfg.MaxX = cfg.MinX + cfg.W
	}
	return &Enemy{
		Vitals:        NewVitals(cfg.Health),
		Pos:           core.Vec{X: cfg.X, Y: cfg.Y},
		Vel:           core.Vec{X: cfg.Speed},
		W:             cfg.W,
		H:             cfg.H,
		MinX:          cfg.MinX,
		MaxX:          cfg.MaxX,
		ContactDamage: cfg.ContactDamage,
		Alive:         true,
	}
}

// Box returns the collision box.
func (e *Enemy) Box() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Patrol moves the enemy and turns it around at its bounds.
func (e *Enemy) Patrol(dt float64) {
	if !e.Alive {
		return
	}
	e.Pos.X += e.Vel.X * dt
	if e.Pos.X <= e.MinX {
		e.Pos.X = e.MinX
		if e.Vel.X < 0 {
			e.Vel.X = -e.Vel.X
		}
	}
	if e.Pos.X+e.W >= e.MaxX {
		e.Pos.X = e.MaxX - e.W
		if e.Vel.X > 0 {
			e.Vel.X = -e.Vel.X
		}
	}
}

// Hit applies damage and returns true if it killed the enemy.
// Fractional damage carries over to later hits.
func (e *Enemy) Hit(amount float64) bool {
	if !e.Alive || e.Wound(amount, 0, 0) == 0 {
		return false
	}
	if e.Health == 0 {
		e.Alive = false
		return true
	}
	return false
}

// Crate is a breakable static collider.
type Crate struct {
	Box    core.Rect
	Health int
	Alive  bool

	carry float64
}

// NewCrate creates a crate with at least one health.
func NewCrate(box core.Rect, health int) *Crate {
	if health < 1 {
		health = 1
	}
	return &Crate{Box: box, Health: health, Alive: true}
}

// Hit applies damage and returns true if it broke the crate.
// Fractional damage carries over to later hits.
func (c *Crate) Hit(amount float64) bool {
	if !c.Alive || amount <= 0 {
		return false
	}
	c.carry += amount
	whole := math.Floor(c.carry + damageEpsilon)
	if whole < 1 {
		return false
	}
	c.carry = math.Max(c.carry-whole, 0)
	c.Health -= int(whole)
	if c.Health <= 0 {
		c.Health = 0
		c.Alive = false
		return true
	}
	return false
}
