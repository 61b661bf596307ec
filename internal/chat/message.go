// Package chat holds the conversational session state: the append-only
// message log, the model selection, source-attribution visibility, and the
// orchestrator that drives one question/answer turn against the backend.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// wireTag is the sender label the backend expects in chat_history.
func (s Sender) wireTag() string {
	if s == SenderAssistant {
		return "ai"
	}
	return "user"
}

// Source is one retrieved passage supporting an assistant answer.
type Source struct {
	Origin  string `json:"origin"`
	Excerpt string `json:"excerpt"`
}

// Message is a single conversation entry. Messages are never mutated once
// appended; the log only grows.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with a generated ID.
// Sources may be nil when the backend retrieved nothing.
func NewAssistantMessage(text string, sources []Source) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      text,
		Sources:   sources,
		CreatedAt: time.Now(),
	}
}

// HasSources reports whether the message carries retrieved passages.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}
