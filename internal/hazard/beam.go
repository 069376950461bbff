package hazard

import (
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// BeamConfig describes a gated beam: a warning interval followed by an
// active interval during which the beam box deals damage.
type BeamConfig struct {
	Box          core.Rect
	Region       core.Rect // Optional activation area, defaults to Box
	CycleTime    float64
	Offset       float64
	Warning      float64
	Active       float64
	TickInterval float64 // Minimum time between two hits
	Damage       int
}

func (BeamConfig) HazardKind() Kind { return KindBeam }
func (BeamConfig) config()          {}

// Beam is a live gated beam.
type Beam struct {
	cfg          BeamConfig
	cycle        timeline.Cycle
	nextDamageAt float64
}

// NewBeam creates a beam from its template.
func NewBeam(cfg BeamConfig) *Beam {
	if cfg.TickInterval < 0 {
		cfg.TickInterval = 0
	}
	return &Beam{
		cfg: cfg,
		cycle: timeline.Cycle{
			Length: cfg.CycleTime,
			Offset: cfg.Offset,
			Segments: []timeline.Segment{
				{Phase: timeline.Warning, Duration: cfg.Warning},
				{Phase: timeline.Active, Duration: cfg.Active},
			},
		},
	}
}

func (b *Beam) Kind() Kind { return KindBeam }
func (b *Beam) sealed()    {}

// Region returns the activation area.
func (b *Beam) Region() core.Rect {
	return regionOr(b.cfg.Region, b.cfg.Box)
}

// Box returns the damaging area.
func (b *Beam) Box() core.Rect {
	return b.cfg.Box
}

// Phase returns the beam phase at time now.
func (b *Beam) Phase(now float64) timeline.Phase {
	return b.cycle.PhaseAt(now)
}

// NextDamageAt returns the earliest time the beam may hit again.
func (b *Beam) NextDamageAt() float64 {
	return b.nextDamageAt
}

func (b *Beam) update(now float64, target Target, fx *Effects) {
	if b.Phase(now) != timeline.Active {
		return
	}
	if !target.Box.Intersects(b.cfg.Box) || now < b.nextDamageAt {
		return
	}
	b.nextDamageAt = now + b.cfg.TickInterval
	fx.Hits = append(fx.Hits, Hit{
		Kind:    KindBeam,
		Damage:  b.cfg.Damage,
		SourceX: b.cfg.Box.Center().X,
	})
}
