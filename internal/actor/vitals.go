// Package actor models the entities that move through a side-scrolling
// mission: the player, patrol enemies, breakable crates and projectiles.
package actor

import "math"

// damageEpsilon absorbs float error when carried fractions sum to a whole point.
const damageEpsilon = 1e-9

// Vitals is the health block shared by everything that can be damaged.
type Vitals struct {
	Health            int
	MaxHealth         int
	InvulnerableUntil float64

	carry float64 // Fractional damage not yet applied
}

// NewVitals returns full health.
func NewVitals(max int) Vitals {
	if max < 1 {
		max = 1
	}
	return Vitals{Health: max, MaxHealth: max}
}

// Alive reports whether health is above zero.
func (v Vitals) Alive() bool {
	return v.Health > 0
}

// Invulnerable reports whether damage is ignored at time now.
func (v Vitals) Invulnerable(now float64) bool {
	return now < v.InvulnerableUntil
}

// Ratio returns Health/MaxHealth in [0, 1].
func (v Vitals) Ratio() float64 {
	if v.MaxHealth <= 0 {
		return 0
	}
	r := float64(v.Health) / float64(v.MaxHealth)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// TakeDamage applies amount unless invulnerable at now, then opens an
// invulnerability window. Health is clamped at zero.
// Returns true if the damage was applied.
func (v *Vitals) TakeDamage(amount int, now, window float64) bool {
	if amount <= 0 || v.Invulnerable(now) || v.Health <= 0 {
		return false
	}
	v.Health -= amount
	if v.Health < 0 {
		v.Health = 0
	}
	if window > 0 {
		v.InvulnerableUntil = now + window
	}
	return true
}

// Wound applies fractional damage. Fractions accumulate across calls and
// only whole points reduce health, so a half-damage hit applied twice costs
// exactly one point. Damage arriving while invulnerable is dropped.
// Returns the whole damage applied.
func (v *Vitals) Wound(amount, now, window float64) int {
	if amount <= 0 || v.Invulnerable(now) || v.Health <= 0 {
		return 0
	}
	v.carry += amount
	whole := math.Floor(v.carry + damageEpsilon)
	if whole < 1 {
		return 0
	}
	v.carry = math.Max(v.carry-whole, 0)
	before := v.Health
	v.TakeDamage(int(whole), now, window)
	return before - v.Health
}

// Kill drops health to zero regardless of invulnerability.
func (v *Vitals) Kill() {
	v.Health = 0
}

// Heal restores up to amount health, clamped at MaxHealth.
// Returns the amount actually restored.
func (v *Vitals) Heal(amount int) int {
	if amount <= 0 || v.Health <= 0 {
		return 0
	}
	before := v.Health
	v.Health += amount
	if v.Health > v.MaxHealth {
		v.Health = v.MaxHealth
	}
	return v.Health - before
}
