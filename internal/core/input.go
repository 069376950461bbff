package core

// Action represents a discrete press event, abstracted from physical keys.
// This allows the simulation to work with intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionJump                 // Space, W - jump (consumes one jump from the budget)
	ActionDash                 // Shift, X - air dash
	ActionFire                 // F, J - shoot / interact
	ActionChargeHold           // C held - charge shot building up
	ActionChargeRelease        // C released - charge shot fires
	ActionPause                // P - pause (consumed by the shell)
	ActionRestart              // R - restart after the mission ends (consumed by the shell)
	ActionQuit                 // Q, Ctrl+C - leave the mission (consumed by the shell)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDash:
		return "Dash"
	case ActionFire:
		return "Fire"
	case ActionChargeHold:
		return "ChargeHold"
	case ActionChargeRelease:
		return "ChargeRelease"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the read-only intent snapshot for one simulation tick.
type InputFrame struct {
	// MoveX is the horizontal axis: -1 left, 0 idle, 1 right.
	// In first-person missions it turns the view.
	MoveX int
	// MoveY is the vertical axis: -1 up/forward, 0 idle, 1 down/back.
	// Only first-person missions read it.
	MoveY int

	// Actions maps press events to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Axis returns the movement axes clamped to [-1, 1].
func (f InputFrame) Axis() (x, y int) {
	return Clamp(f.MoveX, -1, 1), Clamp(f.MoveY, -1, 1)
}

// Clear resets axes and actions for the next frame.
func (f *InputFrame) Clear() {
	f.MoveX = 0
	f.MoveY = 0
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.MoveX = f.MoveX
	clone.MoveY = f.MoveY
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Pressed returns the set actions in ascending order.
// Used by recorders that need a stable encoding.
func (f InputFrame) Pressed() []Action {
	var out []Action
	for a := ActionJump; a <= ActionQuit; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
