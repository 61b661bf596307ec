package chat

import (
	"errors"
	"fmt"
	"sync"
)

// Model identifiers the backend accepts. The backend instantiates the
// requested model per exchange, so this list is the client-side contract.
const (
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"
	ModelGPT35     = "gpt-3.5-turbo"
)

// DefaultModel is the best-overall tier, used until the user picks another.
const DefaultModel = ModelGPT4o

// ErrInvalidModel is returned by Select for identifiers outside the
// supported set.
var ErrInvalidModel = errors.New("unsupported model")

var supportedModels = []string{ModelGPT4o, ModelGPT4oMini, ModelGPT35}

// SupportedModels returns the supported identifiers in display order.
func SupportedModels() []string {
	out := make([]string, len(supportedModels))
	copy(out, supportedModels)
	return out
}

// IsSupportedModel reports membership in the supported set.
func IsSupportedModel(name string) bool {
	for _, m := range supportedModels {
		if m == name {
			return true
		}
	}
	return false
}

// ModelSelector holds the model identifier used for the next turn. A turn
// in flight keeps the identifier it captured at submit time, so changing
// the selection mid-request only affects later turns.
type ModelSelector struct {
	mu      sync.Mutex
	current string
}

// NewModelSelector returns a selector set to DefaultModel.
func NewModelSelector() *ModelSelector {
	return &ModelSelector{current: DefaultModel}
}

// Current returns the selected model identifier.
func (s *ModelSelector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Select switches the selection. It returns ErrInvalidModel (leaving the
// selection unchanged) when candidate is not in the supported set.
func (s *ModelSelector) Select(candidate string) error {
	if !IsSupportedModel(candidate) {
		return fmt.Errorf("%w: %q", ErrInvalidModel, candidate)
	}
	s.mu.Lock()
	s.current = candidate
	s.mu.Unlock()
	return nil
}
