// Package hazard implements the environmental damage sources of a
// side-scrolling mission: gated beams, crusher lanes and debris zones.
//
// A hazard stores only bookkeeping that cannot be recomputed from elapsed
// time (next damage time, per-cycle markers, spawn counters). Its phase is
// always derived from the mission clock through a timeline.Cycle.
package hazard

import (
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/timeline"
)

// Kind identifies a hazard variant.
type Kind uint8

const (
	KindBeam Kind = iota
	KindCrusher
	KindDebris
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBeam:
		return "beam"
	case KindCrusher:
		return "crusher"
	case KindDebris:
		return "debris"
	default:
		return "unknown"
	}
}

// Hazard is a live hazard instance. The set of implementations is closed:
// *Beam, *Crusher and *Debris.
type Hazard interface {
	Kind() Kind
	// Region is the activation area. Player interaction is skipped while
	// the player's box does not intersect it.
	Region() core.Rect
	sealed()
}

// Config is a hazard template. The set of implementations is closed:
// BeamConfig, CrusherConfig and DebrisConfig.
type Config interface {
	HazardKind() Kind
	config()
}

// Target is the player state a hazard reads during an update.
type Target struct {
	Box      core.Rect
	Grounded bool
}

// Hit is one damage application requested by a hazard.
type Hit struct {
	Kind    Kind
	Damage  int
	SourceX float64 // Horizontal origin used for knockback direction
}

// Effects collects everything a hazard produced in one update.
type Effects struct {
	Hits   []Hit
	PushX  float64    // Horizontal displacement to apply to the player
	Slams  int        // Crusher heads that reached the floor this update
	Spawns []core.Vec // Spawn positions of new debris items
}

// Reset empties the effects for reuse.
func (e *Effects) Reset() {
	e.Hits = e.Hits[:0]
	e.PushX = 0
	e.Slams = 0
	e.Spawns = e.Spawns[:0]
}

// Cue is the warning/active flag pair exposed for audio and visual cues.
type Cue struct {
	Kind    Kind
	Warning bool
	Active  bool
}

// New instantiates a hazard from its template.
func New(cfg Config) Hazard {
	switch c := cfg.(type) {
	case BeamConfig:
		return NewBeam(c)
	case CrusherConfig:
		return NewCrusher(c)
	case DebrisConfig:
		return NewDebris(c)
	case *BeamConfig:
		return NewBeam(*c)
	case *CrusherConfig:
		return NewCrusher(*c)
	case *DebrisConfig:
		return NewDebris(*c)
	default:
		return nil
	}
}

// Update advances h to time now. dt is the clamped frame delta that
// produced now. Effects are appended to fx.
func Update(h Hazard, now, dt float64, target Target, fx *Effects) {
	inRegion := target.Box.Intersects(h.Region())

	switch hz := h.(type) {
	case *Beam:
		if inRegion {
			hz.update(now, target, fx)
		}
	case *Crusher:
		if inRegion {
			hz.update(now, dt, target, fx)
		} else {
			hz.observe(now)
		}
	case *Debris:
		hz.update(now, dt, target, inRegion, fx)
	}
}

// CueOf reports the cue flags of h at time now.
func CueOf(h Hazard, now float64) Cue {
	switch hz := h.(type) {
	case *Beam:
		p := hz.Phase(now)
		return Cue{Kind: KindBeam, Warning: p == timeline.Warning, Active: p == timeline.Active}
	case *Crusher:
		p := hz.Phase(now)
		return Cue{
			Kind:    KindCrusher,
			Warning: p == timeline.Warning,
			Active:  p == timeline.Descend || p == timeline.Hold,
		}
	case *Debris:
		return Cue{Kind: KindDebris, Warning: hz.Armed() && !hz.Exhausted(), Active: len(hz.items) > 0}
	default:
		return Cue{}
	}
}

// regionOr returns r when it has area, otherwise fallback.
func regionOr(r, fallback core.Rect) core.Rect {
	if r.Empty() {
		return fallback
	}
	return r
}

// union returns the smallest rectangle covering a and b.
func union(a, b core.Rect) core.Rect {
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.Right(), b.Right())
	y1 := max(a.Bottom(), b.Bottom())
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
