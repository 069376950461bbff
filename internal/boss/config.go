package boss

// Config is the boss template.
type Config struct {
	W         float64 `yaml:"width"`
	H         float64 `yaml:"height"`
	MaxHealth int     `yaml:"max_health"`

	// Thresholds are descending health ratios; dropping below each one
	// advances the phase.
	Thresholds []float64 `yaml:"thresholds"`
	// Patterns holds one ordered attack list per phase.
	Patterns [][]AttackKind `yaml:"-"`

	ArenaMinX float64 `yaml:"arena_min_x"`
	ArenaMaxX float64 `yaml:"arena_max_x"`
	GroundY   float64 `yaml:"ground_y"`
	MoveSpeed float64 `yaml:"move_speed"`

	RepositionTime float64 `yaml:"reposition_time"`
	TelegraphTime  float64 `yaml:"telegraph_time"`
	AttackTime     float64 `yaml:"attack_time"`
	RecoverTime    float64 `yaml:"recover_time"`
	PhaseSpeedup   float64 `yaml:"phase_speedup"` // Fractional speedup of state timers per phase above 1

	ContactDamage    int     `yaml:"contact_damage"`
	ArmorFactor      float64 `yaml:"armor_factor"` // Damage multiplier outside the vulnerability window
	VulnerableWindow float64 `yaml:"vulnerable_window"`

	SpreadCount int     `yaml:"spread_count"`
	SpreadAngle float64 `yaml:"spread_angle"` // Radians between shots in phase 1
	ShotSpeed   float64 `yaml:"shot_speed"`
	ShotRadius  float64 `yaml:"shot_radius"`
	ShotDamage  int     `yaml:"shot_damage"`

	DashSpeed   float64 `yaml:"dash_speed"`
	DashTimeout float64 `yaml:"dash_timeout"`
	DashDamage  int     `yaml:"dash_damage"`
	DashRadius  float64 `yaml:"dash_radius"`

	ZoneCount   int     `yaml:"zone_count"`
	ZoneWidth   float64 `yaml:"zone_width"`
	ZoneHeight  float64 `yaml:"zone_height"`
	ZoneWarning float64 `yaml:"zone_warning"`
	ZoneActive  float64 `yaml:"zone_active"`
	ZoneDamage  int     `yaml:"zone_damage"`
}

// DefaultConfig returns a three-phase boss for a 40 cell arena.
func DefaultConfig() Config {
	return Config{
		W:          3,
		H:          3,
		MaxHealth:  30,
		Thresholds: []float64{0.7, 0.35},
		Patterns: [][]AttackKind{
			{AttackSpread, AttackDash},
			{AttackSpread, AttackArea, AttackDash},
			{AttackArea, AttackDash, AttackSpread, AttackDash},
		},

		ArenaMaxX: 40,
		GroundY:   20,
		MoveSpeed: 8,

		RepositionTime: 1.2,
		TelegraphTime:  0.8,
		AttackTime:     0.6,
		RecoverTime:    1.0,
		PhaseSpeedup:   0.25,

		ContactDamage:    1,
		ArmorFactor:      0.5,
		VulnerableWindow: 1.5,

		SpreadCount: 5,
		SpreadAngle: 0.12,
		ShotSpeed:   14,
		ShotRadius:  0.3,
		ShotDamage:  1,

		DashSpeed:   30,
		DashTimeout: 1.5,
		DashDamage:  2,
		DashRadius:  1,

		ZoneCount:   3,
		ZoneWidth:   3,
		ZoneHeight:  4,
		ZoneWarning: 0.7,
		ZoneActive:  0.5,
		ZoneDamage:  2,
	}
}

// withDefaults fills fields that would stall the state machine.
func (c Config) withDefaults() Config {
	if c.MaxHealth < 1 {
		c.MaxHealth = 1
	}
	if c.ArmorFactor < 0 {
		c.ArmorFactor = 0
	}
	if c.ArmorFactor > 1 {
		c.ArmorFactor = 1
	}
	if c.ArenaMaxX < c.ArenaMinX+c.W {
		c.ArenaMaxX = c.ArenaMinX + c.W
	}
	if c.SpreadCount < 1 {
		c.SpreadCount = 1
	}
	if c.ZoneWarning+c.ZoneActive <= 0 {
		c.ZoneActive = 0.1
	}
	if c.PhaseSpeedup < 0 {
		c.PhaseSpeedup = 0
	}
	return c
}
