package chat

import "testing"

func TestAttributionToggle(t *testing.T) {
	a := NewAttributionState()

	if a.Visible("m1") {
		t.Error("fresh state should have nothing visible")
	}

	a.Toggle("m1")
	if !a.Visible("m1") {
		t.Error("toggle should expand the panel")
	}

	a.Toggle("m1")
	if a.Visible("m1") {
		t.Error("second toggle should collapse the panel")
	}
}

func TestAttributionSingleExpansion(t *testing.T) {
	a := NewAttributionState()

	a.Toggle("m1")
	a.Toggle("m2")

	// Expanding another message collapses the first: at most one panel open.
	if a.Visible("m1") {
		t.Error("m1 should have collapsed when m2 expanded")
	}
	if !a.Visible("m2") {
		t.Error("m2 should be visible")
	}
	if got := a.Expanded(); got != "m2" {
		t.Errorf("Expanded: want m2, got %q", got)
	}
}

func TestAttributionClear(t *testing.T) {
	a := NewAttributionState()
	a.Toggle("m1")
	a.Clear()

	if a.Visible("m1") {
		t.Error("Clear should collapse the open panel")
	}
	if a.Expanded() != "" {
		t.Errorf("Expanded after Clear: %q", a.Expanded())
	}

	// Clear on an already-empty state is a no-op, not an error.
	a.Clear()
	if a.Expanded() != "" {
		t.Error("double Clear changed state")
	}
}

func TestAttributionEmptyIDNeverVisible(t *testing.T) {
	a := NewAttributionState()
	if a.Visible("") {
		t.Error("empty ID should never be visible")
	}
	a.Toggle("m1")
	if a.Visible("") {
		t.Error("empty ID visible while m1 expanded")
	}
}
