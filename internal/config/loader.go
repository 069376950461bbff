package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/boss"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/mission"
)

// ErrInvalidMission is wrapped by every error caused by mission content
// rather than by I/O.
var ErrInvalidMission = errors.New("invalid mission")

// LoadMissions gathers every mission definition.
// Search order: customDir -> ~/.sortie/missions -> ./missions -> embedded defaults.
// A mission ID loaded from an earlier source is never replaced by a later one.
// Errors in customDir are fatal; unreadable or invalid files in the other
// directories are skipped.
func LoadMissions(customDir string) ([]mission.Config, error) {
	var out []mission.Config
	seen := make(map[string]bool)
	add := func(list []mission.Config) {
		for _, cfg := range list {
			if seen[cfg.ID] {
				continue
			}
			seen[cfg.ID] = true
			out = append(out, cfg)
		}
	}

	// Try custom directory first
	if customDir != "" {
		list, err := loadDir(customDir, true)
		if err != nil {
			return nil, err
		}
		add(list)
	}

	// Try user mission directory
	if dir := userMissionDir(); dir != "" {
		if list, err := loadDir(dir, false); err == nil {
			add(list)
		}
	}

	// Try local missions directory
	if list, err := loadDir("missions", false); err == nil {
		add(list)
	}

	// Embedded defaults always load
	list, err := DefaultMissions()
	if err != nil {
		return nil, err
	}
	add(list)
	return out, nil
}

// LoadMissionFile reads and validates a single mission file.
func LoadMissionFile(path string) (mission.Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-selected mission file
	if err != nil {
		return mission.Config{}, fmt.Errorf("config: failed to read mission %s: %w", path, err)
	}
	return ParseMission(data, path)
}

// ParseMission decodes one mission document and validates it. source names
// the document in error messages.
func ParseMission(data []byte, source string) (mission.Config, error) {
	var f MissionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return mission.Config{}, fmt.Errorf("config: failed to parse mission %s: %w: %w", source, ErrInvalidMission, err)
	}
	cfg, err := f.Mission()
	if err != nil {
		return mission.Config{}, fmt.Errorf("config: mission %s: %w: %w", source, ErrInvalidMission, err)
	}
	if err := cfg.Validate(); err != nil {
		return mission.Config{}, fmt.Errorf("config: mission %s: %w: %w", source, ErrInvalidMission, err)
	}
	return cfg, nil
}

// loadDir parses every .yaml/.yml file in dir in name order. When strict
// is false, files that fail to load are skipped.
func loadDir(dir string, strict bool) ([]mission.Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read mission directory %s: %w", dir, err)
	}
	var out []mission.Config
	for _, e := range entries {
		if e.IsDir() || !IsMissionFile(e.Name()) {
			continue
		}
		cfg, err := LoadMissionFile(filepath.Join(dir, e.Name()))
		if err != nil {
			if strict {
				return nil, err
			}
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}

// IsMissionFile reports whether path has a mission file extension.
func IsMissionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// userMissionDir returns the user mission directory, or empty if home is unavailable.
func userMissionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sortie", "missions")
}

// Mission converts the file into an engine template. Tuning blocks are
// decoded on top of the defaults so absent keys keep their default value.
func (f MissionFile) Mission() (mission.Config, error) {
	mode, err := mission.ParseMode(f.Mode)
	if err != nil {
		return mission.Config{}, err
	}
	cfg := mission.Config{
		ID:             f.ID,
		Name:           f.Name,
		Mode:           mode,
		Bounds:         core.Rect(f.Bounds),
		Spawn:          core.Vec(f.Spawn),
		Grid:           f.Grid,
		DamageScale:    f.DamageScale,
		UnlocksOnClear: f.UnlocksOnClear,
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}

	for _, s := range f.Solids {
		cfg.Solids = append(cfg.Solids, core.Rect(s))
	}
	for _, c := range f.Crates {
		cfg.Crates = append(cfg.Crates, mission.CrateSpec{Box: core.Rect(c.Box), Health: c.Health})
	}
	for _, p := range f.Pickups {
		amount := p.Amount
		if amount == 0 {
			amount = 1
		}
		cfg.Pickups = append(cfg.Pickups, mission.PickupSpec{Box: core.Rect(p.Box), Amount: amount})
	}
	for i, h := range f.Hazards {
		hc, err := h.config()
		if err != nil {
			return mission.Config{}, fmt.Errorf("hazard %d: %w", i, err)
		}
		cfg.Hazards = append(cfg.Hazards, hc)
	}
	for _, e := range f.Enemies {
		cfg.Enemies = append(cfg.Enemies, e.config())
	}
	if f.Boss != nil {
		spec, err := f.Boss.spec()
		if err != nil {
			return mission.Config{}, err
		}
		cfg.Boss = spec
	}
	if f.Gate != nil {
		gate := core.Rect(*f.Gate)
		cfg.Gate = &gate
	}

	cfg.Tuning = actor.DefaultTuning()
	if f.Tuning.Kind != 0 {
		if err := f.Tuning.Decode(&cfg.Tuning); err != nil {
			return mission.Config{}, fmt.Errorf("tuning: %w", err)
		}
	}
	cfg.FirstPerson = mission.DefaultFirstPersonTuning()
	if f.FirstPerson.Kind != 0 {
		if err := f.FirstPerson.Decode(&cfg.FirstPerson); err != nil {
			return mission.Config{}, fmt.Errorf("first_person: %w", err)
		}
	}
	return cfg, nil
}

func optionalRect(r *Rect) core.Rect {
	if r == nil {
		return core.Rect{}
	}
	return core.Rect(*r)
}

func (h HazardFile) config() (hazard.Config, error) {
	switch strings.ToLower(h.Kind) {
	case "beam":
		if h.Box == nil {
			return nil, errors.New("beam needs a box")
		}
		return hazard.BeamConfig{
			Box:          core.Rect(*h.Box),
			Region:       optionalRect(h.Region),
			CycleTime:    h.Cycle,
			Offset:       h.Offset,
			Warning:      h.Warning,
			Active:       h.Active,
			TickInterval: h.Tick,
			Damage:       h.Damage,
		}, nil
	case "crusher":
		if h.Belt == nil {
			return nil, errors.New("crusher needs a belt")
		}
		return hazard.CrusherConfig{
			Belt:      core.Rect(*h.Belt),
			PushSpeed: h.PushSpeed,
			HeadX:     h.HeadX,
			HeadW:     h.HeadW,
			HeadH:     h.HeadH,
			TopY:      h.TopY,
			BottomY:   h.BottomY,
			Region:    optionalRect(h.Region),
			CycleTime: h.Cycle,
			Offset:    h.Offset,
			Warning:   h.Warning,
			Descend:   h.Descend,
			Hold:      h.Hold,
			Retract:   h.Retract,
			Damage:    h.Damage,
		}, nil
	case "debris":
		if h.Interval <= 0 {
			return nil, errors.New("debris needs a positive interval")
		}
		return hazard.DebrisConfig{
			TriggerX:    h.TriggerX,
			X:           h.X,
			Width:       h.Width,
			SpawnY:      h.SpawnY,
			FloorY:      h.FloorY,
			BottomLimit: h.BottomLimit,
			Interval:    h.Interval,
			FallSpeed:   h.FallSpeed,
			Size:        h.Size,
			Damage:      h.Damage,
			MaxItems:    h.MaxItems,
			Region:      optionalRect(h.Region),
		}, nil
	default:
		return nil, fmt.Errorf("unknown hazard kind %q", h.Kind)
	}
}

func (e EnemyFile) config() actor.EnemyConfig {
	cfg := actor.EnemyConfig{
		X:             e.X,
		Y:             e.Y,
		W:             e.W,
		H:             e.H,
		MinX:          e.MinX,
		MaxX:          e.MaxX,
		Speed:         e.Speed,
		Health:        e.Health,
		ContactDamage: e.ContactDamage,
	}
	if cfg.W <= 0 {
		cfg.W = 1
	}
	if cfg.H <= 0 {
		cfg.H = 2
	}
	if cfg.Health <= 0 {
		cfg.Health = 1
	}
	return cfg
}

func (b BossFile) spec() (*mission.BossSpec, error) {
	cfg := boss.DefaultConfig()
	if b.Tuning.Kind != 0 {
		if err := b.Tuning.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("boss tuning: %w", err)
		}
	}
	if len(b.Patterns) > boss.MaxPhase {
		return nil, fmt.Errorf("boss has %d pattern lists, at most %d phases exist", len(b.Patterns), boss.MaxPhase)
	}
	if len(b.Patterns) > 0 {
		cfg.Patterns = make([][]boss.AttackKind, 0, len(b.Patterns))
		for i, names := range b.Patterns {
			kinds := make([]boss.AttackKind, 0, len(names))
			for _, name := range names {
				k, ok := boss.ParseAttack(name)
				if !ok {
					return nil, fmt.Errorf("boss phase %d: unknown attack %q", i+1, name)
				}
				kinds = append(kinds, k)
			}
			cfg.Patterns = append(cfg.Patterns, kinds)
		}
	}
	return &mission.BossSpec{Config: cfg, TriggerX: b.TriggerX, SpawnX: b.SpawnX}, nil
}
