package mission

// EventKind identifies a simulation event.
type EventKind uint8

const (
	EventPlayerHit EventKind = iota
	EventPlayerHealed
	EventShotFired
	EventEnemyKilled
	EventCrateBroken
	EventCrusherSlam
	EventDebrisSpawned
	EventBossSpawned
	EventBossPhase
	EventBossAttack
	EventBossVulnerable
	EventBossDefeated
	EventBoltFired
	EventCleared
	EventFailed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlayerHit:
		return "player_hit"
	case EventPlayerHealed:
		return "player_healed"
	case EventShotFired:
		return "shot_fired"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventCrateBroken:
		return "crate_broken"
	case EventCrusherSlam:
		return "crusher_slam"
	case EventDebrisSpawned:
		return "debris_spawned"
	case EventBossSpawned:
		return "boss_spawned"
	case EventBossPhase:
		return "boss_phase"
	case EventBossAttack:
		return "boss_attack"
	case EventBossVulnerable:
		return "boss_vulnerable"
	case EventBossDefeated:
		return "boss_defeated"
	case EventBoltFired:
		return "bolt_fired"
	case EventCleared:
		return "cleared"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is something that happened during a tick, reported to the shell
// for audio, effects and logging.
type Event struct {
	Kind   EventKind
	Time   float64
	X, Y   float64
	Value  int    // Damage, heal amount, or boss phase
	Detail string // Attack name, hazard kind, or bolt owner
}
