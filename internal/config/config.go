// Package config provides YAML-based mission loading and difficulty
// presets for the mission engine.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sortie/internal/core"
)

// Rect is a rectangle written as a flow sequence: [x, y, w, h].
type Rect core.Rect

// UnmarshalYAML decodes [x, y, w, h].
func (r *Rect) UnmarshalYAML(value *yaml.Node) error {
	var v []float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("line %d: rectangle needs 4 numbers, got %d", value.Line, len(v))
	}
	*r = Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
	return nil
}

// Vec is a point written as a flow sequence: [x, y].
type Vec core.Vec

// UnmarshalYAML decodes [x, y].
func (p *Vec) UnmarshalYAML(value *yaml.Node) error {
	var v []float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("line %d: point needs 2 numbers, got %d", value.Line, len(v))
	}
	*p = Vec{X: v[0], Y: v[1]}
	return nil
}

// MissionFile is the on-disk form of a mission.
type MissionFile struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Mode   string `yaml:"mode"` // "platformer" (default) or "first-person"
	Bounds Rect   `yaml:"bounds"`
	Spawn  Vec    `yaml:"spawn"`

	Solids  []Rect       `yaml:"solids"`
	Crates  []CrateFile  `yaml:"crates"`
	Pickups []PickupFile `yaml:"pickups"`
	Hazards []HazardFile `yaml:"hazards"`
	Enemies []EnemyFile  `yaml:"enemies"`
	Boss    *BossFile    `yaml:"boss"`
	Gate    *Rect        `yaml:"gate"`

	// Tuning overrides player constants; absent keys keep their defaults.
	Tuning yaml.Node `yaml:"tuning"`

	Grid        []string  `yaml:"grid"`
	FirstPerson yaml.Node `yaml:"first_person"`

	DamageScale    float64  `yaml:"damage_scale"`
	UnlocksOnClear []string `yaml:"unlocks_on_clear"`
}

// CrateFile places a breakable crate.
type CrateFile struct {
	Box    Rect `yaml:"box"`
	Health int  `yaml:"health"`
}

// PickupFile places a heal pickup.
type PickupFile struct {
	Box    Rect `yaml:"box"`
	Amount int  `yaml:"amount"`
}

// HazardFile is any hazard; Kind selects which fields apply.
type HazardFile struct {
	Kind   string  `yaml:"kind"` // beam, crusher or debris
	Region *Rect   `yaml:"region"`
	Offset float64 `yaml:"offset"`
	Cycle  float64 `yaml:"cycle"`
	Damage int     `yaml:"damage"`

	// beam
	Box     *Rect   `yaml:"box"`
	Warning float64 `yaml:"warning"`
	Active  float64 `yaml:"active"`
	Tick    float64 `yaml:"tick"`

	// crusher
	Belt      *Rect   `yaml:"belt"`
	PushSpeed float64 `yaml:"push_speed"`
	HeadX     float64 `yaml:"head_x"`
	HeadW     float64 `yaml:"head_w"`
	HeadH     float64 `yaml:"head_h"`
	TopY      float64 `yaml:"top_y"`
	BottomY   float64 `yaml:"bottom_y"`
	Descend   float64 `yaml:"descend"`
	Hold      float64 `yaml:"hold"`
	Retract   float64 `yaml:"retract"`

	// debris
	TriggerX    float64 `yaml:"trigger_x"`
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	SpawnY      float64 `yaml:"spawn_y"`
	FloorY      float64 `yaml:"floor_y"`
	BottomLimit float64 `yaml:"bottom_limit"`
	Interval    float64 `yaml:"interval"`
	FallSpeed   float64 `yaml:"fall_speed"`
	Size        float64 `yaml:"size"`
	MaxItems    int     `yaml:"max_items"`
}

// EnemyFile places a patrolling enemy. Width and height default to 1x2.
type EnemyFile struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	W             float64 `yaml:"w"`
	H             float64 `yaml:"h"`
	MinX          float64 `yaml:"min_x"`
	MaxX          float64 `yaml:"max_x"`
	Speed         float64 `yaml:"speed"`
	Health        int     `yaml:"health"`
	ContactDamage int     `yaml:"contact_damage"`
}

// BossFile places the boss. Tuning overrides fields of the default boss.
type BossFile struct {
	TriggerX float64    `yaml:"trigger_x"`
	SpawnX   float64    `yaml:"spawn_x"`
	Patterns [][]string `yaml:"patterns"`
	Tuning   yaml.Node  `yaml:"tuning"`
}
