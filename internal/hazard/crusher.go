package hazard

import (
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// CrusherConfig describes a conveyor belt with a crusher head above it.
// TopY and BottomY are positions of the head's lower face.
type CrusherConfig struct {
	Belt      core.Rect // Grounded actors overlapping it are pushed
	PushSpeed float64   // Signed belt speed in units per second
	HeadX     float64
	HeadW     float64
	HeadH     float64
	TopY      float64
	BottomY   float64
	Region    core.Rect // Optional activation area, defaults to belt plus head travel
	CycleTime float64
	Offset    float64
	Warning   float64
	Descend   float64
	Hold      float64
	Retract   float64
	Damage    int
}

func (CrusherConfig) HazardKind() Kind { return KindCrusher }
func (CrusherConfig) config()          {}

// Crusher is a live crusher lane.
type Crusher struct {
	cfg           CrusherConfig
	cycle         timeline.Cycle
	region        core.Rect
	lastSlamCycle int64
	lastHitCycle  int64
}

// NewCrusher creates a crusher from its template.
func NewCrusher(cfg CrusherConfig) *Crusher {
	if cfg.BottomY < cfg.TopY {
		cfg.BottomY = cfg.TopY
	}
	c := &Crusher{
		cfg: cfg,
		cycle: timeline.Cycle{
			Length: cfg.CycleTime,
			Offset: cfg.Offset,
			Segments: []timeline.Segment{
				{Phase: timeline.Warning, Duration: cfg.Warning},
				{Phase: timeline.Descend, Duration: cfg.Descend},
				{Phase: timeline.Hold, Duration: cfg.Hold},
				{Phase: timeline.Retract, Duration: cfg.Retract},
			},
		},
		lastSlamCycle: -2,
		lastHitCycle:  -2,
	}
	travel := core.NewRect(cfg.HeadX, cfg.TopY-cfg.HeadH, cfg.HeadW, cfg.BottomY-cfg.TopY+cfg.HeadH)
	c.region = regionOr(cfg.Region, union(cfg.Belt, travel))
	return c
}

func (c *Crusher) Kind() Kind { return KindCrusher }
func (c *Crusher) sealed()    {}

// Region returns the activation area.
func (c *Crusher) Region() core.Rect {
	return c.region
}

// Belt returns the conveyor area.
func (c *Crusher) Belt() core.Rect {
	return c.cfg.Belt
}

// Phase returns the crusher phase at time now.
func (c *Crusher) Phase(now float64) timeline.Phase {
	return c.cycle.PhaseAt(now)
}

// HeadY returns the Y of the head's lower face at time now.
func (c *Crusher) HeadY(now float64) float64 {
	s := c.cycle.At(now)
	travel := c.cfg.BottomY - c.cfg.TopY
	switch s.Phase {
	case timeline.Descend:
		return c.cfg.TopY + travel*s.Fraction
	case timeline.Hold:
		return c.cfg.BottomY
	case timeline.Retract:
		return c.cfg.BottomY - travel*s.Fraction
	default:
		return c.cfg.TopY
	}
}

// HeadRect returns the head's box at time now.
func (c *Crusher) HeadRect(now float64) core.Rect {
	y := c.HeadY(now)
	return core.NewRect(c.cfg.HeadX, y-c.cfg.HeadH, c.cfg.HeadW, c.cfg.HeadH)
}

// observe marks the current hold as seen while the player is outside the
// region, so walking in mid-hold does not report a fresh slam.
func (c *Crusher) observe(now float64) {
	if s := c.cycle.At(now); s.Phase == timeline.Hold {
		c.lastSlamCycle = s.Cycle
	}
}

func (c *Crusher) update(now, dt float64, target Target, fx *Effects) {
	if target.Grounded && target.Box.Intersects(c.cfg.Belt) {
		fx.PushX += c.cfg.PushSpeed * dt
	}

	s := c.cycle.At(now)
	if s.Phase == timeline.Hold && s.Cycle != c.lastSlamCycle {
		c.lastSlamCycle = s.Cycle
		fx.Slams++
	}

	if s.Phase != timeline.Descend && s.Phase != timeline.Hold {
		return
	}
	if s.Cycle == c.lastHitCycle || !target.Box.Intersects(c.HeadRect(now)) {
		return
	}
	c.lastHitCycle = s.Cycle
	fx.Hits = append(fx.Hits, Hit{
		Kind:    KindCrusher,
		Damage:  c.cfg.Damage,
		SourceX: c.cfg.HeadX + c.cfg.HeadW/2,
	})
}
