package core

import "time"

// Action represents a discrete lifecycle command, abstracted from physical
// key presses. Steering is not an action: it is read from the held KeySet.
type Action int

const (
	ActionNone  Action = iota
	ActionStart        // Enter, Space - start a session from the title screen
	ActionPause        // P, Escape - pause/unpause a running session
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Key identifiers understood by the vehicle controls. Letter keys are their
// own identifiers ("a", "A", ...).
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

// KeySet is the set of currently held key identifiers.
type KeySet map[string]struct{}

// NewKeySet creates a set holding the given keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Press adds a key to the set.
func (s KeySet) Press(key string) {
	s[key] = struct{}{}
}

// Has reports whether the key is held. Safe on a nil set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Any reports whether at least one of the keys is held.
func (s KeySet) Any(keys ...string) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// InputFrame is everything the game reads at the start of one frame.
type InputFrame struct {
	// Actions maps lifecycle actions to whether they were triggered this frame.
	Actions map[Action]bool

	// Keys is a snapshot of held keys. The game never mutates it.
	Keys KeySet

	// Now is the frame timestamp; elapsed time is derived from consecutive frames.
	Now time.Time
}

// NewInputFrame creates an empty input frame stamped with now.
func NewInputFrame(now time.Time) InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Keys:    make(KeySet),
		Now:     now,
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

// Clear resets all actions for the next frame. Keys are left alone since
// they describe held state, not events.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
