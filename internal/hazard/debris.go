package hazard

import (
	"math"

	"github.com/vovakirdan/sortie/internal/core"
)

// DebrisConfig describes a zone that drops debris once armed.
type DebrisConfig struct {
	TriggerX    float64 // Arms when the player's centre X reaches it
	X           float64 // Left edge of the drop band
	Width       float64 // Width of the drop band
	SpawnY      float64
	FloorY      float64 // Items that reach it are removed
	BottomLimit float64 // Items below it are removed
	Interval    float64
	FallSpeed   float64
	Size        float64
	Damage      int
	MaxItems    int       // Total items to drop, 0 for unlimited
	Region      core.Rect // Optional activation area, defaults to the drop band
}

func (DebrisConfig) HazardKind() Kind { return KindDebris }
func (DebrisConfig) config()          {}

// Item is one falling piece of debris.
type Item struct {
	Box    core.Rect
	Serial int
}

// Debris is a live debris zone.
type Debris struct {
	cfg         DebrisConfig
	region      core.Rect
	triggered   bool
	triggeredAt float64
	spawned     int
	items       []Item
}

// NewDebris creates a debris zone from its template.
func NewDebris(cfg DebrisConfig) *Debris {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	if cfg.BottomLimit < cfg.FloorY {
		cfg.BottomLimit = cfg.FloorY
	}
	band := core.NewRect(cfg.X, cfg.SpawnY, cfg.Width+cfg.Size, cfg.FloorY-cfg.SpawnY)
	return &Debris{
		cfg:    cfg,
		region: regionOr(cfg.Region, band),
	}
}

func (d *Debris) Kind() Kind { return KindDebris }
func (d *Debris) sealed()    {}

// Region returns the activation area.
func (d *Debris) Region() core.Rect {
	return d.region
}

// Armed reports whether the zone has been triggered.
func (d *Debris) Armed() bool {
	return d.triggered
}

// Exhausted reports whether a limited zone has dropped everything.
func (d *Debris) Exhausted() bool {
	return d.cfg.MaxItems > 0 && d.spawned >= d.cfg.MaxItems
}

// Spawned returns the spawn counter.
func (d *Debris) Spawned() int {
	return d.spawned
}

// Items returns the falling items.
func (d *Debris) Items() []Item {
	return d.items
}

// OffsetFor returns the drop offset of the n-th item. The value depends
// only on n so a zone drops the same pattern every run.
func OffsetFor(n int, width float64) float64 {
	return float64((n*7919+13)%97) / 97 * width
}

func (d *Debris) update(now, dt float64, target Target, inRegion bool, fx *Effects) {
	if !d.triggered {
		if target.Box.Center().X < d.cfg.TriggerX {
			return
		}
		d.triggered = true
		d.triggeredAt = now
	}

	for i := range d.items {
		d.items[i].Box.Y += d.cfg.FallSpeed * dt
	}

	d.spawnDue(now, fx)

	kept := d.items[:0]
	for _, it := range d.items {
		if inRegion && it.Box.Intersects(target.Box) {
			fx.Hits = append(fx.Hits, Hit{
				Kind:    KindDebris,
				Damage:  d.cfg.Damage,
				SourceX: it.Box.Center().X,
			})
			continue
		}
		if it.Box.Bottom() >= d.cfg.FloorY || it.Box.Y > d.cfg.BottomLimit {
			continue
		}
		kept = append(kept, it)
	}
	d.items = kept
}

// spawnDue spawns every item scheduled up to now. An item that was due
// earlier in a long frame starts as far down as it would have fallen.
func (d *Debris) spawnDue(now float64, fx *Effects) {
	if d.cfg.Interval <= 0 {
		return
	}
	due := int(math.Floor((now-d.triggeredAt)/d.cfg.Interval)) + 1
	if d.cfg.MaxItems > 0 && due > d.cfg.MaxItems {
		due = d.cfg.MaxItems
	}
	for d.spawned < due {
		n := d.spawned
		at := d.triggeredAt + float64(n)*d.cfg.Interval
		x := d.cfg.X + OffsetFor(n, d.cfg.Width)
		y := d.cfg.SpawnY + d.cfg.FallSpeed*(now-at)
		d.items = append(d.items, Item{
			Box:    core.NewRect(x, y, d.cfg.Size, d.cfg.Size),
			Serial: n,
		})
		fx.Spawns = append(fx.Spawns, core.Vec{X: x, Y: d.cfg.SpawnY})
		d.spawned++
	}
}
