package actor

import (
	"testing"

	"github.com/vovakirdan/sortie/internal/core"
)

func frame(moveX int, actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.MoveX = moveX
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestVitalsInvulnerabilityAtLowHealth(t *testing.T) {
	v := Vitals{Health: 1, MaxHealth: 5, InvulnerableUntil: 2.0}

	if v.TakeDamage(3, 1.5, 1.0) {
		t.Error("TakeDamage() during invulnerability should be ignored")
	}
	if v.Health != 1 {
		t.Errorf("Health = %d, expected 1", v.Health)
	}

	if !v.TakeDamage(3, 2.0, 1.0) {
		t.Error("TakeDamage() after the window should apply")
	}
	if v.Health != 0 {
		t.Errorf("Health = %d, expected 0 (clamped)", v.Health)
	}
	if v.InvulnerableUntil != 3.0 {
		t.Errorf("InvulnerableUntil = %v, expected 3.0", v.InvulnerableUntil)
	}
}

func TestVitalsNeverNegativeOrOverMax(t *testing.T) {
	tests := []struct {
		name     string
		ops      func(v *Vitals)
		expected int
	}{
		{"overkill", func(v *Vitals) { v.TakeDamage(100, 0, 0) }, 0},
		{"repeated hits", func(v *Vitals) {
			for i := range 10 {
				v.TakeDamage(2, float64(i), 0)
			}
		}, 0},
		{"heal clamps", func(v *Vitals) {
			v.TakeDamage(2, 0, 0)
			v.Heal(10)
		}, 5},
		{"negative damage ignored", func(v *Vitals) { v.TakeDamage(-3, 0, 0) }, 5},
		{"dead cannot heal", func(v *Vitals) {
			v.Kill()
			v.Heal(3)
		}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewVitals(5)
			tc.ops(&v)
			if v.Health != tc.expected {
				t.Errorf("Health = %d, expected %d", v.Health, tc.expected)
			}
			if v.Health < 0 {
				t.Errorf("Health went negative: %d", v.Health)
			}
		})
	}
}

func TestPlayerAcceleratesTowardTarget(t *testing.T) {
	tu := DefaultTuning()
	p := NewPlayer(0, 0, tu, nil)

	p.ApplyIntent(frame(1), 0, 0.05)
	if p.Vel.X != tu.Accel*0.05 {
		t.Errorf("Vel.X after one tick = %v, expected %v", p.Vel.X, tu.Accel*0.05)
	}

	for i := range 40 {
		p.ApplyIntent(frame(1), float64(i)*0.05, 0.05)
	}
	if p.Vel.X != tu.MoveSpeed {
		t.Errorf("Vel.X = %v, expected top speed %v", p.Vel.X, tu.MoveSpeed)
	}

	p.ApplyIntent(frame(0), 2, 0.05)
	if p.Vel.X != tu.MoveSpeed-tu.Decel*0.05 {
		t.Errorf("Vel.X after release = %v, expected %v", p.Vel.X, tu.MoveSpeed-tu.Decel*0.05)
	}
}

func TestPlayerJumpBudget(t *testing.T) {
	tests := []struct {
		name    string
		unlocks core.Unlocks
		jumps   int
	}{
		{"single jump", nil, 1},
		{"double jump", core.Unlocks{core.UnlockDoubleJump: true}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(0, 0, DefaultTuning(), tc.unlocks)
			p.Land()

			got := 0
			for i := range 5 {
				p.Vel.Y = 0
				p.ApplyIntent(frame(0, core.ActionJump), float64(i), 0.016)
				if p.Vel.Y < 0 {
					got++
				}
			}
			if got != tc.jumps {
				t.Errorf("jumps = %d, expected %d", got, tc.jumps)
			}

			p.Land()
			if p.JumpsUsed != 0 {
				t.Errorf("JumpsUsed after Land() = %d, expected 0", p.JumpsUsed)
			}
		})
	}
}

func TestWalkingOffLedgeSpendsGroundJump(t *testing.T) {
	p := NewPlayer(0, 0, DefaultTuning(), core.Unlocks{core.UnlockDoubleJump: true})
	p.SetGrounded(true)
	p.SetGrounded(false)

	if p.JumpsUsed != 1 {
		t.Errorf("JumpsUsed after leaving ground = %d, expected 1", p.JumpsUsed)
	}
	p.ApplyIntent(frame(0, core.ActionJump), 0, 0.016)
	if p.Vel.Y >= 0 {
		t.Error("air jump should still be available with double_jump")
	}
}

func TestAirDash(t *testing.T) {
	tu := DefaultTuning()

	locked := NewPlayer(0, 0, tu, nil)
	locked.ApplyIntent(frame(1, core.ActionDash), 0, 0.016)
	if locked.Dashing(0.01) {
		t.Error("dash without air_dash unlock should not start")
	}

	p := NewPlayer(0, 0, tu, core.Unlocks{core.UnlockAirDash: true})
	p.Land()
	p.ApplyIntent(frame(1, core.ActionDash), 0, 0.016)
	if p.Dashing(0.01) {
		t.Error("dash on the ground should not start")
	}

	p.SetGrounded(false)
	p.Vel.Y = 5
	p.ApplyIntent(frame(1, core.ActionDash), 1, 0.016)
	if !p.Dashing(1.01) {
		t.Fatal("air dash should start when airborne")
	}
	if p.Vel.X != tu.DashSpeed || p.Vel.Y != 0 {
		t.Errorf("Vel during dash = %+v, expected (%v, 0)", p.Vel, tu.DashSpeed)
	}

	// No charge left until landing.
	later := 1 + tu.DashDuration + 0.1
	p.ApplyIntent(frame(1, core.ActionDash), later, 0.016)
	if p.Dashing(later + 0.01) {
		t.Error("second air dash should need a landing")
	}

	p.Land()
	p.SetGrounded(false)
	p.ApplyIntent(frame(1, core.ActionDash), later+1, 0.016)
	if !p.Dashing(later + 1.01) {
		t.Error("landing should recharge the air dash")
	}
}

func TestIntegrateClampsFall(t *testing.T) {
	tu := DefaultTuning()
	p := NewPlayer(0, 0, tu, nil)

	for range 100 {
		p.Integrate(0, 0.05)
	}
	if p.Vel.Y != tu.MaxFall {
		t.Errorf("Vel.Y = %v, expected MaxFall %v", p.Vel.Y, tu.MaxFall)
	}
}

func TestHurtKnocksBackAway(t *testing.T) {
	tu := DefaultTuning()
	p := NewPlayer(10, 0, tu, nil)

	if !p.Hurt(1, 20, 0) {
		t.Fatal("Hurt() should apply")
	}
	if p.Vel.X >= 0 {
		t.Errorf("Vel.X = %v, expected knockback to the left", p.Vel.X)
	}
	if p.Health != tu.MaxHealth-1 {
		t.Errorf("Health = %d, expected %d", p.Health, tu.MaxHealth-1)
	}
	if p.Hurt(1, 0, 0.5) {
		t.Error("Hurt() inside the invulnerability window should be ignored")
	}
}

func TestFireCooldown(t *testing.T) {
	tu := DefaultTuning()
	p := NewPlayer(0, 0, tu, nil)

	fired := 0
	for i := range 60 {
		fired += len(p.ApplyIntent(frame(0, core.ActionFire), float64(i)/60, 1.0/60))
	}
	// One second of held fire with a 0.25s cooldown.
	if fired != 4 {
		t.Errorf("shots fired = %d, expected 4", fired)
	}
}

func TestChargeShot(t *testing.T) {
	tu := DefaultTuning()

	locked := NewPlayer(0, 0, tu, nil)
	locked.ApplyIntent(frame(0, core.ActionChargeHold), 0, 0.016)
	if shots := locked.ApplyIntent(frame(0, core.ActionChargeRelease), 2, 0.016); len(shots) != 0 {
		t.Error("charge shot without unlock should not fire")
	}

	p := NewPlayer(0, 0, tu, core.Unlocks{core.UnlockChargeShot: true})
	p.ApplyIntent(frame(0, core.ActionChargeHold), 0, 0.016)
	if p.ChargeLevel(tu.ChargeTime/2) != 0.5 {
		t.Errorf("ChargeLevel() = %v, expected 0.5", p.ChargeLevel(tu.ChargeTime/2))
	}

	shots := p.ApplyIntent(frame(0, core.ActionChargeRelease), tu.ChargeTime+0.1, 0.016)
	if len(shots) != 1 {
		t.Fatalf("shots = %d, expected 1", len(shots))
	}
	if shots[0].Damage != float64(tu.ChargeDamage) || shots[0].Radius != tu.ChargeRadius {
		t.Errorf("charged shot = %+v, expected damage %d radius %v", shots[0], tu.ChargeDamage, tu.ChargeRadius)
	}
}

func TestPierceBudget(t *testing.T) {
	for budget := range 4 {
		p := NewProjectile(core.Vec{}, core.Vec{X: 1}, 0.5, 4, SidePlayer, budget)

		hits := 0
		for key := range 10 {
			if p.RegisterHit(key, 0.25) > 0 {
				hits++
			}
			// The same target never counts twice.
			if p.RegisterHit(key, 0.25) > 0 {
				t.Fatalf("budget %d: target %d hit twice", budget, key)
			}
		}
		if hits != budget+1 {
			t.Errorf("budget %d: hits = %d, expected %d", budget, hits, budget+1)
		}
		if p.Alive {
			t.Errorf("budget %d: projectile should be dead after exhausting its pierce", budget)
		}
	}
}

func TestPierceFalloff(t *testing.T) {
	tests := []struct {
		name     string
		damage   float64
		expected []float64
	}{
		{"heavy shot", 4, []float64{4, 3, 2.25}},
		{"default shot", 1, []float64{1, 0.75, 0.5625}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjectile(core.Vec{}, core.Vec{X: 1}, 0.5, tt.damage, SidePlayer, 2)
			for i, want := range tt.expected {
				if got := p.RegisterHit(i, 0.25); got != want {
					t.Errorf("hit %d damage = %v, expected %v", i, got, want)
				}
			}
		})
	}
}

func TestPierceFalloffReachesTargets(t *testing.T) {
	p := NewProjectile(core.Vec{}, core.Vec{X: 1}, 0.5, 1, SidePlayer, 2)
	enemies := []*Enemy{
		NewEnemy(EnemyConfig{W: 1, H: 1, MaxX: 4, Health: 1}),
		NewEnemy(EnemyConfig{W: 1, H: 1, MaxX: 4, Health: 1}),
		NewEnemy(EnemyConfig{W: 1, H: 1, MaxX: 4, Health: 1}),
	}

	killed := []bool{}
	for i, e := range enemies {
		killed = append(killed, e.Hit(p.RegisterHit(i, 0.25)))
	}
	// Only the first target takes the full point.
	expected := []bool{true, false, false}
	for i := range expected {
		if killed[i] != expected[i] {
			t.Errorf("enemy %d killed = %v, expected %v", i, killed[i], expected[i])
		}
	}
}

func TestWoundCarriesFractions(t *testing.T) {
	tests := []struct {
		name     string
		hits     []float64
		expected int // health left from 5
	}{
		{"two halves make a point", []float64{0.5, 0.5}, 4},
		{"single half does nothing", []float64{0.5}, 5},
		{"quarters", []float64{0.75, 0.75, 0.75, 0.75}, 2},
		{"whole hits", []float64{2, 1}, 2},
		{"negative ignored", []float64{-1, 0.5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVitals(5)
			for _, h := range tt.hits {
				v.Wound(h, 0, 0)
			}
			if v.Health != tt.expected {
				t.Errorf("Health = %d, expected %d", v.Health, tt.expected)
			}
		})
	}
}

func TestWoundDropsDamageWhileInvulnerable(t *testing.T) {
	v := NewVitals(5)
	if got := v.Wound(1, 0, 1); got != 1 {
		t.Fatalf("Wound() = %d, expected 1", got)
	}
	v.Wound(0.5, 0.5, 1)
	if got := v.Wound(0.5, 2, 1); got != 0 {
		t.Errorf("Wound() after window = %d, expected 0 (the blocked half is not carried)", got)
	}
}

func TestWholeDamage(t *testing.T) {
	tests := []struct {
		in       float64
		expected int
	}{
		{0, 0},
		{-2, 0},
		{0.2, 1},
		{1, 1},
		{2.6, 3},
	}
	for _, tt := range tests {
		if got := WholeDamage(tt.in); got != tt.expected {
			t.Errorf("WholeDamage(%v) = %d, expected %d", tt.in, got, tt.expected)
		}
	}
}

func TestProjectileStepAndBounds(t *testing.T) {
	p := NewProjectile(core.Vec{X: 1, Y: 1}, core.Vec{X: 10}, 0.25, 1, SideEnemy, 0)
	p.Step(0.5)

	if p.Pos.X != 6 {
		t.Errorf("Pos.X = %v, expected 6", p.Pos.X)
	}
	if !p.Hits(core.NewRect(6, 0, 1, 2)) {
		t.Error("Hits() should detect overlap")
	}
	if p.Outside(core.NewRect(0, 0, 10, 10)) {
		t.Error("projectile inside bounds reported outside")
	}
	p.Step(1)
	if !p.Outside(core.NewRect(0, 0, 10, 10)) {
		t.Error("projectile past bounds should be outside")
	}
}

func TestEnemyPatrolAndDeath(t *testing.T) {
	e := NewEnemy(EnemyConfig{X: 5, Y: 0, W: 1, H: 1, MinX: 4, MaxX: 8, Speed: 2, Health: 2, ContactDamage: 1})

	for range 100 {
		e.Patrol(0.05)
		if e.Pos.X < 4 || e.Pos.X+e.W > 8 {
			t.Fatalf("enemy left patrol bounds: x=%v", e.Pos.X)
		}
	}

	if e.Hit(1) {
		t.Error("first hit should not kill a 2 HP enemy")
	}
	if !e.Hit(1) || e.Alive {
		t.Error("second hit should kill the enemy")
	}
	if e.Hit(1) {
		t.Error("dead enemy cannot be killed again")
	}

	x := e.Pos.X
	e.Patrol(1)
	if e.Pos.X != x {
		t.Error("dead enemy should not move")
	}
}

func TestCrateBreaks(t *testing.T) {
	c := NewCrate(core.NewRect(0, 0, 1, 1), 2)

	if c.Hit(1) {
		t.Error("crate should survive the first hit")
	}
	if !c.Hit(5) || c.Alive || c.Health != 0 {
		t.Errorf("crate after breaking = %+v", c)
	}

	c = NewCrate(core.NewRect(0, 0, 1, 1), 1)
	if c.Hit(0.75) {
		t.Error("a fraction of a point should not break the crate")
	}
	if !c.Hit(0.25) {
		t.Error("the carried fraction should break the crate")
	}
}
