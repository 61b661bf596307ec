package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/hkapoor246/rag-ai-app/internal/api"
)

// FallbackText is appended as the assistant turn when an exchange fails.
// Failures become conversation entries instead of aborting the session.
const FallbackText = "Sorry, I ran into an error. Please try again."

// Exchanger performs one request/response round trip to the backend.
// *api.Client satisfies it; tests substitute a fake.
type Exchanger interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Orchestrator drives one turn at a time: append the question, issue the
// exchange, append the answer (or the fallback). Only one turn may be in
// flight; submits while sending are dropped rather than queued.
type Orchestrator struct {
	mu      sync.Mutex
	sending bool
	session *Session
	client  Exchanger
}

// NewOrchestrator wires an orchestrator to its session and backend.
func NewOrchestrator(session *Session, client Exchanger) *Orchestrator {
	return &Orchestrator{session: session, client: client}
}

// Session returns the session this orchestrator mutates.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Sending reports whether a turn is in flight.
func (o *Orchestrator) Sending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sending
}

// Turn is a staged exchange: the user message has been appended and the
// request captured. Exchange completes it.
type Turn struct {
	orch *Orchestrator
	req  api.ChatRequest
}

// Request returns the captured backend request.
func (t *Turn) Request() api.ChatRequest {
	return t.req
}

// Submit stages a new turn. It returns false with no side effects when the
// trimmed input is empty or a turn is already in flight. Otherwise it
// collapses any open source panel, captures the pre-submit history and the
// current model, appends the user message, and marks the orchestrator
// sending. The caller clears its input buffer on true and must then call
// Exchange exactly once.
func (o *Orchestrator) Submit(rawInput string) (*Turn, bool) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return nil, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sending {
		return nil, false
	}
	o.sending = true

	o.session.Attribution.Clear()
	history := o.session.Log.HistoryForRequest()
	o.session.Log.Append(NewUserMessage(input))

	return &Turn{
		orch: o,
		req: api.ChatRequest{
			Question:    input,
			ModelName:   o.session.Models.Current(),
			ChatHistory: history,
		},
	}, true
}

// Exchange performs the staged request and folds the outcome into the log:
// the answer with its sources on success, FallbackText with no sources on
// any failure. The orchestrator returns to idle either way. The returned
// error is diagnostic only; it has already been absorbed into the
// conversation.
func (t *Turn) Exchange(ctx context.Context) error {
	resp, err := t.orch.client.Chat(ctx, t.req)

	var reply Message
	switch {
	case err != nil:
		reply = NewAssistantMessage(FallbackText, nil)
	case resp == nil:
		reply = NewAssistantMessage(FallbackText, nil)
	default:
		reply = NewAssistantMessage(resp.Answer, sourcesFrom(resp.Sources))
	}

	o := t.orch
	o.mu.Lock()
	o.session.Log.Append(reply)
	o.sending = false
	o.mu.Unlock()

	return err
}

func sourcesFrom(docs []api.SourceDocument) []Source {
	if len(docs) == 0 {
		return nil
	}
	out := make([]Source, len(docs))
	for i, d := range docs {
		out[i] = Source{Origin: d.Source, Excerpt: d.PageContent}
	}
	return out
}
