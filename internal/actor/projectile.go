package actor

import (
	"math"
	"slices"

	"github.com/vovakirdan/sortie/internal/core"
)

// Side is the owner of a projectile.
type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// Projectile is a circular shot moving in a straight line.
type Projectile struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Damage float64
	Owner  Side
	Pierce int // Remaining extra targets
	Alive  bool

	hits []int
}

// NewProjectile creates a live projectile.
func NewProjectile(pos, vel core.Vec, radius, damage float64, owner Side, pierce int) *Projectile {
	if pierce < 0 {
		pierce = 0
	}
	return &Projectile{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Damage: damage,
		Owner:  owner,
		Pierce: pierce,
		Alive:  true,
	}
}

// Step moves the projectile by its velocity.
func (p *Projectile) Step(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// Circle returns the hit circle.
func (p *Projectile) Circle() core.Circle {
	return core.Circle{X: p.Pos.X, Y: p.Pos.Y, R: p.Radius}
}

// Hits reports whether the projectile overlaps r.
func (p *Projectile) Hits(r core.Rect) bool {
	return p.Alive && core.CircleHitsRect(p.Circle(), r)
}

// HasHit reports whether key was already damaged by this projectile.
func (p *Projectile) HasHit(key int) bool {
	return slices.Contains(p.hits, key)
}

// RegisterHit records a hit on the target identified by key and returns
// the damage to apply, or 0 if this projectile already hit that target
// or is dead. A piercing projectile keeps flying with its damage reduced
// by falloff; otherwise it dies. The result may be fractional; targets
// carry the remainder (see Vitals.Wound).
func (p *Projectile) RegisterHit(key int, falloff float64) float64 {
	if !p.Alive || p.HasHit(key) {
		return 0
	}
	dmg := max(p.Damage, 0)
	p.hits = append(p.hits, key)
	if p.Pierce > 0 {
		p.Pierce--
		p.Damage *= 1 - core.ClampF(falloff, 0, 1)
	} else {
		p.Alive = false
	}
	return dmg
}

// WholeDamage converts projectile damage for targets that take whole
// points only, such as the player. Positive damage never rounds below 1.
func WholeDamage(d float64) int {
	if d <= 0 {
		return 0
	}
	return max(int(math.Round(d)), 1)
}

// Outside reports whether the projectile has fully left bounds.
func (p *Projectile) Outside(bounds core.Rect) bool {
	return p.Pos.X+p.Radius < bounds.X ||
		p.Pos.X-p.Radius > bounds.Right() ||
		p.Pos.Y+p.Radius < bounds.Y ||
		p.Pos.Y-p.Radius > bounds.Bottom()
}
