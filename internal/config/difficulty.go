package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/mission"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScaling holds what a preset changes on top of a mission.
type presetScaling struct {
	healthDelta  int     // Added to player max health, result never below 1
	invulnScale  float64 // Multiplies the invulnerability window
	damageFactor float64 // Multiplies incoming damage
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {healthDelta: 2, invulnScale: 1.5, damageFactor: 0.5},
	DifficultyNormal: {healthDelta: 0, invulnScale: 1, damageFactor: 1},
	DifficultyHard:   {healthDelta: -2, invulnScale: 0.6, damageFactor: 1.5},
}

// ParseDifficulty maps a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyDifficulty modifies the mission based on a difficulty preset. It
// adjusts player max health, the invulnerability window and the incoming
// damage scale of both mission modes.
func ApplyDifficulty(cfg *mission.Config, preset DifficultyPreset) {
	sc, ok := presets[preset]
	if !ok || preset == DifficultyNormal {
		return
	}

	if cfg.Tuning == (actor.Tuning{}) {
		cfg.Tuning = actor.DefaultTuning()
	}
	cfg.Tuning.MaxHealth = max(1, cfg.Tuning.MaxHealth+sc.healthDelta)
	cfg.Tuning.InvulnWindow *= sc.invulnScale

	if cfg.FirstPerson == (mission.FirstPersonTuning{}) {
		cfg.FirstPerson = mission.DefaultFirstPersonTuning()
	}
	cfg.FirstPerson.MaxHealth = max(1, cfg.FirstPerson.MaxHealth+sc.healthDelta)
	cfg.FirstPerson.InvulnWindow *= sc.invulnScale

	scale := cfg.DamageScale
	if scale == 0 {
		scale = 1
	}
	cfg.DamageScale = scale * sc.damageFactor
}
