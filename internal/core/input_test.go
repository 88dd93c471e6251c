package core

import (
	"testing"
	"time"
)

func TestKeySetPress(t *testing.T) {
	s := NewKeySet()
	if s.Has(KeyArrowLeft) {
		t.Error("Empty set should not hold ArrowLeft")
	}

	s.Press(KeyArrowLeft)
	s.Press("a")
	if !s.Has(KeyArrowLeft) || !s.Has("a") {
		t.Error("Pressed keys should be held")
	}

	if !s.Any("d", "a", "A") {
		t.Error("Any should find held 'a'")
	}
}

func TestKeySetNilSafe(t *testing.T) {
	var s KeySet
	if s.Has("a") || s.Any("a", "b") {
		t.Error("Nil set should hold nothing")
	}
}

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame(time.Unix(0, 0))
	if f.Has(ActionStart) {
		t.Error("New frame should have no actions")
	}

	f.Set(ActionStart)
	f.Set(ActionPause)
	if !f.Has(ActionStart) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported")
	}

	f.Keys.Press("a")
	f.Clear()
	if f.Has(ActionStart) {
		t.Error("Clear should drop actions")
	}
	if !f.Keys.Has("a") {
		t.Error("Clear should keep held keys")
	}

	var zero InputFrame
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionStart.String() != "Start" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
