package chat

import "sync"

// AttributionState tracks which message's source panel is expanded. At most
// one message is expanded at a time; submitting a new question collapses it.
type AttributionState struct {
	mu       sync.Mutex
	expanded string // message ID, or "" for none
}

// NewAttributionState returns a state with no panel expanded.
func NewAttributionState() *AttributionState {
	return &AttributionState{}
}

// Toggle expands the panel for messageID, or collapses it when it is the
// one already expanded. Expanding one message collapses any other.
func (a *AttributionState) Toggle(messageID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expanded == messageID {
		a.expanded = ""
		return
	}
	a.expanded = messageID
}

// Visible reports whether messageID's panel is expanded.
func (a *AttributionState) Visible(messageID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return messageID != "" && a.expanded == messageID
}

// Clear collapses any expanded panel.
func (a *AttributionState) Clear() {
	a.mu.Lock()
	a.expanded = ""
	a.mu.Unlock()
}

// Expanded returns the expanded message ID, or "" when none is.
func (a *AttributionState) Expanded() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expanded
}
