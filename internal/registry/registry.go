// Package registry provides the process-wide mission catalog.
// The shell loads mission files once at startup and registers them here,
// so commands can discover and start missions by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sortie/internal/mission"
)

// ErrUnknownMission is returned for IDs that were never registered.
var ErrUnknownMission = errors.New("unknown mission")

// MissionInfo contains metadata about a registered mission.
type MissionInfo struct {
	ID      string
	Name    string
	Mode    string
	HasBoss bool
	Unlocks []string // Flags granted on clear
}

var (
	missions = make(map[string]mission.Config)
	mu       sync.RWMutex
)

// Register adds a mission template to the catalog.
// Returns an error if a mission with the same ID is already registered.
func Register(cfg mission.Config) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := missions[cfg.ID]; exists {
		return fmt.Errorf("registry: mission %q already registered", cfg.ID)
	}
	missions[cfg.ID] = cfg
	return nil
}

// Replace stores cfg, overwriting any mission with the same ID.
// Used by hot reload.
func Replace(cfg mission.Config) {
	mu.Lock()
	defer mu.Unlock()
	missions[cfg.ID] = cfg
}

// List returns information about all registered missions, sorted by ID.
func List() []MissionInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MissionInfo, 0, len(missions))
	for id, cfg := range missions {
		result = append(result, MissionInfo{
			ID:      id,
			Name:    cfg.Name,
			Mode:    cfg.Mode.String(),
			HasBoss: cfg.Boss != nil,
			Unlocks: append([]string(nil), cfg.UnlocksOnClear...),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the template registered under id.
func Lookup(id string) (mission.Config, error) {
	mu.RLock()
	defer mu.RUnlock()

	cfg, ok := missions[id]
	if !ok {
		return mission.Config{}, fmt.Errorf("registry: %w %q", ErrUnknownMission, id)
	}
	return cfg, nil
}

// Start looks up id and starts a run of it.
func Start(id string, opts mission.Options) (*mission.Run, error) {
	cfg, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return mission.Start(cfg, opts), nil
}

// Exists checks if a mission with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := missions[id]
	return ok
}

// Reset empties the catalog.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(missions)
}
