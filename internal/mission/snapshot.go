package mission

import "math"

// Snapshot is a compact, comparable summary of a run used for
// determinism checks and replay verification.
type Snapshot struct {
	Tick         uint64
	Elapsed      float64
	Outcome      Outcome
	PlayerX      float64
	PlayerY      float64
	Angle        float64
	Health       int
	EnemiesAlive int
	BossHealth   int
	BossPhase    int
	BossState    string
	Projectiles  int
}

// Snapshot returns the current run summary.
func (r *Run) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         r.tick,
		Elapsed:      r.Elapsed(),
		Outcome:      r.outcome,
		Health:       r.PlayerHealth(),
		EnemiesAlive: r.EnemiesAlive(),
	}
	switch {
	case r.player != nil:
		s.PlayerX = r.player.Pos.X
		s.PlayerY = r.player.Pos.Y
		s.Projectiles = len(r.projectiles)
	case r.fp != nil:
		s.PlayerX = r.fp.pos.X
		s.PlayerY = r.fp.pos.Y
		s.Angle = r.fp.angle
		s.Projectiles = len(r.fp.bolts)
	}
	if b, ok := r.Boss(); ok {
		s.BossHealth = b.Health
		s.BossPhase = b.Phase
		s.BossState = b.State
	}
	return s
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + math.Float64bits(s.Elapsed)
	h = h*31 + uint64(s.Outcome)
	h = h*31 + math.Float64bits(s.PlayerX)
	h = h*31 + math.Float64bits(s.PlayerY)
	h = h*31 + math.Float64bits(s.Angle)
	h = h*31 + uint64(s.Health)       //#nosec G115 -- hash computation
	h = h*31 + uint64(s.EnemiesAlive) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.BossHealth)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.BossPhase)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Projectiles)  //#nosec G115 -- hash computation
	for _, c := range s.BossState {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}
