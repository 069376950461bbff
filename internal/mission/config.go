package mission

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/boss"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/raycast"
)

// Mode selects which loop drives a mission.
type Mode uint8

const (
	ModePlatformer Mode = iota
	ModeFirstPerson
)

// String returns the mode tag used in mission files.
func (m Mode) String() string {
	switch m {
	case ModePlatformer:
		return "platformer"
	case ModeFirstPerson:
		return "first-person"
	default:
		return "unknown"
	}
}

// ParseMode maps a mission file tag to a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "platformer", "":
		return ModePlatformer, nil
	case "first-person", "firstperson", "fps":
		return ModeFirstPerson, nil
	default:
		return 0, fmt.Errorf("mission: unknown mode %q", s)
	}
}

// CrateSpec places a breakable crate.
type CrateSpec struct {
	Box    core.Rect
	Health int
}

// PickupSpec places a heal pickup.
type PickupSpec struct {
	Box    core.Rect
	Amount int
}

// BossSpec places the boss. It spawns at SpawnX once the player's centre
// reaches TriggerX.
type BossSpec struct {
	Config   boss.Config
	TriggerX float64
	SpawnX   float64
}

// FirstPersonTuning holds every constant of the first-person loop.
type FirstPersonTuning struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	TurnSpeed    float64 `yaml:"turn_speed"`
	Radius       float64 `yaml:"radius"`
	FOV          float64 `yaml:"fov"`
	MaxDepth     float64 `yaml:"max_depth"`
	RayStep      float64 `yaml:"ray_step"`
	MaxHealth    int     `yaml:"max_health"`
	InvulnWindow float64 `yaml:"invuln_window"`
	ExitRadius   float64 `yaml:"exit_radius"`

	BoltSpeed    float64 `yaml:"bolt_speed"`
	BoltRadius   float64 `yaml:"bolt_radius"`
	BoltDamage   int     `yaml:"bolt_damage"`
	FireCooldown float64 `yaml:"fire_cooldown"`

	EnemyHealth     int     `yaml:"enemy_health"`
	EnemySpeed      float64 `yaml:"enemy_speed"`
	EnemyRadius     float64 `yaml:"enemy_radius"`
	AggroRange      float64 `yaml:"aggro_range"`
	EnemyCooldown   float64 `yaml:"enemy_cooldown"`
	EnemyBoltDamage int     `yaml:"enemy_bolt_damage"`
	TurnMin         float64 `yaml:"turn_min"`
	TurnMax         float64 `yaml:"turn_max"`
}

// DefaultFirstPersonTuning returns the constants used when a mission does
// not override them. Units are grid cells, radians and seconds.
func DefaultFirstPersonTuning() FirstPersonTuning {
	return FirstPersonTuning{
		MoveSpeed:    3,
		TurnSpeed:    2.5,
		Radius:       0.2,
		FOV:          1.05,
		MaxDepth:     16,
		RayStep:      0.02,
		MaxHealth:    6,
		InvulnWindow: 0.6,
		ExitRadius:   0.6,

		BoltSpeed:    9,
		BoltRadius:   0.15,
		BoltDamage:   1,
		FireCooldown: 0.35,

		EnemyHealth:     2,
		EnemySpeed:      1.2,
		EnemyRadius:     0.3,
		AggroRange:      6,
		EnemyCooldown:   1.4,
		EnemyBoltDamage: 1,
		TurnMin:         1.0,
		TurnMax:         3.0,
	}
}

// Config is an immutable mission template. A Run never mutates it.
type Config struct {
	ID   string
	Name string
	Mode Mode

	// Side-scrolling layout
	Bounds  core.Rect
	Spawn   core.Vec // Player top-left corner
	Solids  []core.Rect
	Crates  []CrateSpec
	Pickups []PickupSpec
	Hazards []hazard.Config
	Enemies []actor.EnemyConfig
	Boss    *BossSpec
	Gate    *core.Rect
	Tuning  actor.Tuning

	// First-person layout
	Grid        []string
	FirstPerson FirstPersonTuning

	// DamageScale multiplies damage dealt to the player; 0 means 1.
	DamageScale float64
	// UnlocksOnClear are profile flags granted when the mission is cleared.
	UnlocksOnClear []string
}

// Validate checks the template once at load time so the tick loop never
// has to.
func (c Config) Validate() error {
	if c.ID == "" {
		return errors.New("mission: missing id")
	}
	if c.DamageScale < 0 {
		return fmt.Errorf("mission %s: negative damage scale", c.ID)
	}
	for _, flag := range c.UnlocksOnClear {
		if !core.IsKnownUnlock(flag) {
			return fmt.Errorf("mission %s: unknown unlock %q", c.ID, flag)
		}
	}

	switch c.Mode {
	case ModePlatformer:
		if c.Bounds.Empty() {
			return fmt.Errorf("mission %s: empty world bounds", c.ID)
		}
		if c.Boss == nil && c.Gate == nil {
			return fmt.Errorf("mission %s: needs a boss or a gate to be clearable", c.ID)
		}
		t := c.tuning()
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("mission %s: player size must be positive", c.ID)
		}
		for i, h := range c.Hazards {
			if h == nil {
				return fmt.Errorf("mission %s: hazard %d is empty", c.ID, i)
			}
		}
	case ModeFirstPerson:
		if _, err := raycast.ParseGrid(c.Grid); err != nil {
			return fmt.Errorf("mission %s: %w", c.ID, err)
		}
	default:
		return fmt.Errorf("mission %s: unknown mode %d", c.ID, c.Mode)
	}
	return nil
}

func (c Config) tuning() actor.Tuning {
	if c.Tuning == (actor.Tuning{}) {
		return actor.DefaultTuning()
	}
	return c.Tuning
}

func (c Config) firstPerson() FirstPersonTuning {
	if c.FirstPerson == (FirstPersonTuning{}) {
		return DefaultFirstPersonTuning()
	}
	return c.FirstPerson
}

// scaleDamage applies DamageScale, keeping any positive damage at least 1.
func (c Config) scaleDamage(amount int) int {
	if amount <= 0 || c.DamageScale == 0 || c.DamageScale == 1 {
		return amount
	}
	scaled := int(float64(amount)*c.DamageScale + 0.5)
	return max(1, scaled)
}

// Options are the collaborator inputs of a run.
type Options struct {
	Unlocks core.Unlocks // Read-only ability gates
	MaxDT   float64      // Frame delta clamp; <= 0 means core.DefaultMaxDT
	Seed    int64        // Seed for first-person enemy headings
}
