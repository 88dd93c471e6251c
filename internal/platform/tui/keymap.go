package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/road-rush/internal/core"
)

// Terminals report presses and auto-repeats but never releases, so a held
// key is one that was seen recently. The first press waits out the usual
// auto-repeat delay; later repeats only need to bridge the repeat interval.
const (
	DefaultFirstHold  = 550 * time.Millisecond
	DefaultRepeatHold = 120 * time.Millisecond
)

// steerKeys translates Bubble Tea key names to the identifiers the vehicle
// reads. Shifted letters arrive as upper case and keep their case.
var steerKeys = map[string]string{
	"left":  core.KeyArrowLeft,
	"right": core.KeyArrowRight,
	"up":    core.KeyArrowUp,
	"down":  core.KeyArrowDown,
	"a":     "a",
	"d":     "d",
	"w":     "w",
	"s":     "s",
	"A":     "A",
	"D":     "D",
	"W":     "W",
	"S":     "S",
}

// steerDirs gives each identifier an axis (0 horizontal, 1 vertical) and a
// sign along it.
var steerDirs = map[string][2]int{
	core.KeyArrowLeft:  {0, -1},
	"a":                {0, -1},
	"A":                {0, -1},
	core.KeyArrowRight: {0, 1},
	"d":                {0, 1},
	"D":                {0, 1},
	core.KeyArrowUp:    {1, -1},
	"w":                {1, -1},
	"W":                {1, -1},
	core.KeyArrowDown:  {1, 1},
	"s":                {1, 1},
	"S":                {1, 1},
}

// MapSteerKey returns the steering identifier for a key message.
func MapSteerKey(msg tea.KeyMsg) (string, bool) {
	id, ok := steerKeys[msg.String()]
	return id, ok
}

// HeldKeys approximates key-held state from press events.
type HeldKeys struct {
	firstHold  time.Duration
	repeatHold time.Duration
	expires    map[string]time.Time
}

// NewHeldKeys creates a tracker. Non-positive durations use the defaults.
func NewHeldKeys(firstHold, repeatHold time.Duration) *HeldKeys {
	if firstHold <= 0 {
		firstHold = DefaultFirstHold
	}
	if repeatHold <= 0 {
		repeatHold = DefaultRepeatHold
	}
	return &HeldKeys{
		firstHold:  firstHold,
		repeatHold: repeatHold,
		expires:    make(map[string]time.Time),
	}
}

// Press records a press or auto-repeat of id at now. Pressing a direction
// releases any held key pointing the opposite way on the same axis.
func (h *HeldKeys) Press(id string, now time.Time) {
	hold := h.firstHold
	if exp, ok := h.expires[id]; ok && now.Before(exp) {
		hold = h.repeatHold
	}
	h.expires[id] = now.Add(hold)

	dir, ok := steerDirs[id]
	if !ok {
		return
	}
	for other := range h.expires {
		if od, ok := steerDirs[other]; ok && od[0] == dir[0] && od[1] != dir[1] {
			delete(h.expires, other)
		}
	}
}

// Snapshot drops expired keys and returns the keys still held at now.
func (h *HeldKeys) Snapshot(now time.Time) core.KeySet {
	held := core.NewKeySet()
	for id, exp := range h.expires {
		if !now.Before(exp) {
			delete(h.expires, id)
			continue
		}
		held.Press(id)
	}
	return held
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.expires)
}

// KeyMap defines the key bindings shown in the play footer.
type KeyMap struct {
	Steer      key.Binding
	Start      key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Steer, k.Start, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Steer, k.Start, k.Pause},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Steer: key.NewBinding(
			key.WithKeys("left", "right", "up", "down", "a", "d", "w", "s", "A", "D", "W", "S"),
			key.WithHelp("arrows/wasd", "steer"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapAction translates a key message to a lifecycle action.
func (k KeyMap) MapAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}
