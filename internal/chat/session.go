package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hkapoor246/rag-ai-app/internal/api"
)

// Log is the append-only conversation record. It has a single writer (the
// orchestrator) and any number of readers.
type Log struct {
	mu   sync.RWMutex
	msgs []Message
}

// NewLog returns an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds msg to the end of the log, assigning an ID and timestamp when
// they are blank, and returns the message ID. It never fails.
func (l *Log) Append(msg Message) string {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
	return msg.ID
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.msgs)
}

// Snapshot returns a copy of the log in conversational order. Later
// appends do not alter a returned snapshot.
func (l *Log) Snapshot() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// HistoryForRequest projects the log into the backend's chat_history
// shape: sender tag and text only, sources and IDs dropped. The
// orchestrator calls this before appending the turn being submitted, so
// an in-flight question never appears in its own history payload.
func (l *Log) HistoryForRequest() []api.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]api.HistoryEntry, 0, len(l.msgs))
	for _, m := range l.msgs {
		out = append(out, api.HistoryEntry{Sender: m.Sender.wireTag(), Text: m.Text})
	}
	return out
}

// Session is the conversational state for one application session: the
// message log, the model selection, and the attribution cursor. It is
// constructed once at startup and handed to whichever view renders it, so
// navigating between views never resets the conversation.
type Session struct {
	Log         *Log
	Models      *ModelSelector
	Attribution *AttributionState
}

// NewSession creates an empty session with the default model selected.
func NewSession() *Session {
	return &Session{
		Log:         NewLog(),
		Models:      NewModelSelector(),
		Attribution: NewAttributionState(),
	}
}
