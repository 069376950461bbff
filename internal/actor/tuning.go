package actor

// Tuning holds every constant of the player controller.
type Tuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	MoveSpeed float64 `yaml:"move_speed"`
	Accel     float64 `yaml:"accel"`
	Decel     float64 `yaml:"decel"`
	Gravity   float64 `yaml:"gravity"`
	MaxFall   float64 `yaml:"max_fall"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Jumps     int     `yaml:"jumps"` // Base jump budget; double_jump adds one

	DashSpeed      float64 `yaml:"dash_speed"`
	DashDuration   float64 `yaml:"dash_duration"`
	AirDashCharges int     `yaml:"air_dash_charges"`

	FireCooldown float64 `yaml:"fire_cooldown"`
	ShotSpeed    float64 `yaml:"shot_speed"`
	ShotRadius   float64 `yaml:"shot_radius"`
	ShotDamage   int     `yaml:"shot_damage"`

	ChargeTime    float64 `yaml:"charge_time"`
	ChargeDamage  int     `yaml:"charge_damage"`
	ChargeRadius  float64 `yaml:"charge_radius"`
	PierceBudget  int     `yaml:"pierce_budget"`
	PierceFalloff float64 `yaml:"pierce_falloff"`

	MaxHealth     int     `yaml:"max_health"`
	InvulnWindow  float64 `yaml:"invuln_window"`
	Knockback     float64 `yaml:"knockback"`
	KnockbackLift float64 `yaml:"knockback_lift"`
}

// DefaultTuning returns the controller constants used when a mission does
// not override them. Units are world cells and seconds.
func DefaultTuning() Tuning {
	return Tuning{
		Width:  1,
		Height: 2,

		MoveSpeed: 12,
		Accel:     80,
		Decel:     60,
		Gravity:   60,
		MaxFall:   30,
		JumpSpeed: 22,
		Jumps:     1,

		DashSpeed:      28,
		DashDuration:   0.18,
		AirDashCharges: 1,

		FireCooldown: 0.25,
		ShotSpeed:    30,
		ShotRadius:   0.3,
		ShotDamage:   1,

		ChargeTime:    0.8,
		ChargeDamage:  4,
		ChargeRadius:  0.6,
		PierceBudget:  2,
		PierceFalloff: 0.25,

		MaxHealth:     5,
		InvulnWindow:  1.0,
		Knockback:     10,
		KnockbackLift: 8,
	}
}
