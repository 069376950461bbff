package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
)

// Terminals report key presses and auto-repeats but never key releases,
// so a key counts as held until its repeats stop for this long.
const (
	holdWindow   = 220 * time.Millisecond
	chargeWindow = 550 * time.Millisecond
)

type direction int

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirCount
)

// KeyMapper translates Bubble Tea key messages to mission input frames.
// Movement keys are held for a short window after each press; discrete
// actions are queued until the next frame is built.
type KeyMapper struct {
	mode     mission.Mode
	held     [dirCount]time.Time
	pending  []core.Action
	charging bool
	chargeAt time.Time
}

// NewKeyMapper creates a key mapper for the given mission mode.
func NewKeyMapper(mode mission.Mode) *KeyMapper {
	return &KeyMapper{mode: mode}
}

// MapKey translates one key to a discrete action.
// Returns ActionNone for movement keys and unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "p", "esc":
		return core.ActionPause
	case "r":
		return core.ActionRestart
	case "f", "j", "enter":
		return core.ActionFire
	case "x", "k", "shift+left", "shift+right":
		if km.mode == mission.ModePlatformer {
			return core.ActionDash
		}
	case " ":
		if km.mode == mission.ModeFirstPerson {
			return core.ActionFire
		}
		return core.ActionJump
	case "w", "up":
		if km.mode == mission.ModePlatformer {
			return core.ActionJump
		}
	}
	return core.ActionNone
}

func (km *KeyMapper) direction(key string) (direction, bool) {
	switch key {
	case "a", "left", "shift+left":
		return dirLeft, true
	case "d", "right", "shift+right":
		return dirRight, true
	case "w", "up":
		return dirUp, km.mode == mission.ModeFirstPerson
	case "s", "down":
		return dirDown, km.mode == mission.ModeFirstPerson
	}
	return 0, false
}

// Press records a key message received at now and returns the discrete
// action it maps to, so the caller can react to shell actions at once.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) core.Action {
	key := msg.String()
	if d, ok := km.direction(key); ok {
		km.held[d] = now
	}
	if key == "c" && km.mode == mission.ModePlatformer {
		if !km.charging {
			km.charging = true
			km.pending = append(km.pending, core.ActionChargeHold)
		}
		km.chargeAt = now
		return core.ActionChargeHold
	}

	action := km.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionPause, core.ActionRestart:
		// Shell actions never reach the simulation.
	case core.ActionFire:
		if km.charging {
			km.charging = false
			km.pending = append(km.pending, core.ActionChargeRelease)
			break
		}
		km.pending = append(km.pending, action)
	default:
		km.pending = append(km.pending, action)
	}
	return action
}

// Frame builds the input for the tick at now and drains queued actions.
func (km *KeyMapper) Frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	in.MoveX = km.axis(now, dirLeft, dirRight)
	if km.mode == mission.ModeFirstPerson {
		in.MoveY = km.axis(now, dirUp, dirDown)
	}
	for _, a := range km.pending {
		in.Set(a)
	}
	km.pending = km.pending[:0]

	if km.charging && now.Sub(km.chargeAt) > chargeWindow {
		km.charging = false
		in.Set(core.ActionChargeRelease)
	}
	return in
}

// axis resolves two opposing directions; the most recent press wins.
func (km *KeyMapper) axis(now time.Time, neg, pos direction) int {
	n := km.isHeld(now, neg)
	p := km.isHeld(now, pos)
	switch {
	case n && p:
		if km.held[pos].After(km.held[neg]) {
			return 1
		}
		return -1
	case n:
		return -1
	case p:
		return 1
	}
	return 0
}

func (km *KeyMapper) isHeld(now time.Time, d direction) bool {
	t := km.held[d]
	return !t.IsZero() && now.Sub(t) <= holdWindow
}

// Reset forgets held keys and queued actions.
func (km *KeyMapper) Reset() {
	km.held = [dirCount]time.Time{}
	km.pending = km.pending[:0]
	km.charging = false
}

// Charging reports whether the charge key is currently held.
func (km *KeyMapper) Charging() bool {
	return km.charging
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRecords
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionRecords
	}
	return MenuActionNone
}
