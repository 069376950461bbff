package config

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/sortie/internal/mission"
)

//go:embed defaults/missions/*.yaml
var defaultMissions embed.FS

const defaultMissionDir = "defaults/missions"

// DefaultMissions returns the built-in missions in file name order.
func DefaultMissions() ([]mission.Config, error) {
	entries, err := fs.ReadDir(defaultMissions, defaultMissionDir)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read embedded missions: %w", err)
	}
	out := make([]mission.Config, 0, len(entries))
	for _, e := range entries {
		name := path.Join(defaultMissionDir, e.Name())
		data, err := defaultMissions.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read embedded mission %s: %w", name, err)
		}
		cfg, err := ParseMission(data, name)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}
