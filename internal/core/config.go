package core

import "sort"

// DefaultMaxDT is the largest frame delta the simulation will integrate.
// A longer frame (e.g. after a stall) is clamped so actors cannot tunnel
// through colliders and hazard phases cannot be skipped.
const DefaultMaxDT = 0.05

// RuntimeConfig contains configuration passed to the shell at startup.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Frames per second requested from the shell (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
	MaxDT    float64 // Frame delta clamp in seconds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		MaxDT:    DefaultMaxDT,
	}
}

// Unlock flags understood by the engine.
const (
	UnlockChargeShot = "charge_shot"
	UnlockAirDash    = "air_dash"
	UnlockDoubleJump = "double_jump"
	UnlockPiercing   = "piercing"
)

// KnownUnlocks lists every flag the engine reads.
var KnownUnlocks = []string{UnlockAirDash, UnlockChargeShot, UnlockDoubleJump, UnlockPiercing}

// Unlocks is the profile flag set that gates player abilities.
// The engine only reads it; persistence belongs to the profile store.
type Unlocks map[string]bool

// Has reports whether the flag is set. A nil set has nothing unlocked.
func (u Unlocks) Has(flag string) bool {
	if u == nil {
		return false
	}
	return u[flag]
}

// Clone copies the set so a running mission is isolated from later profile changes.
func (u Unlocks) Clone() Unlocks {
	out := make(Unlocks, len(u))
	for k, v := range u {
		if v {
			out[k] = true
		}
	}
	return out
}

// Flags returns the set flags in sorted order.
func (u Unlocks) Flags() []string {
	out := make([]string, 0, len(u))
	for k, v := range u {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// IsKnownUnlock reports whether flag is one the engine reads.
func IsKnownUnlock(flag string) bool {
	for _, k := range KnownUnlocks {
		if k == flag {
			return true
		}
	}
	return false
}
