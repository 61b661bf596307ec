package chat

import (
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Log
// ---------------------------------------------------------------------------

func TestLogAppendAssignsIDAndTimestamp(t *testing.T) {
	log := NewLog()

	id := log.Append(Message{Sender: SenderUser, Text: "hello"})
	if id == "" {
		t.Fatal("Append returned empty ID")
	}

	msgs := log.Snapshot()
	if len(msgs) != 1 {
		t.Fatalf("Len: want 1, got %d", len(msgs))
	}
	if msgs[0].ID != id {
		t.Errorf("stored ID %q does not match returned %q", msgs[0].ID, id)
	}
	if msgs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned")
	}
}

func TestLogAppendKeepsExistingID(t *testing.T) {
	log := NewLog()
	msg := NewUserMessage("hello")
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg.CreatedAt = stamp

	id := log.Append(msg)
	if id != msg.ID {
		t.Errorf("Append replaced existing ID: %q vs %q", id, msg.ID)
	}
	if got := log.Snapshot()[0].CreatedAt; !got.Equal(stamp) {
		t.Errorf("Append replaced existing timestamp: %v", got)
	}
}

func TestLogSnapshotIsolation(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("one"))

	snap := log.Snapshot()
	log.Append(NewAssistantMessage("two", nil))

	if len(snap) != 1 {
		t.Errorf("earlier snapshot grew: %d messages", len(snap))
	}

	snap[0].Text = "mutated"
	if log.Snapshot()[0].Text != "one" {
		t.Error("mutating a snapshot reached the log")
	}
}

func TestHistoryForRequestWireTags(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("question"))
	log.Append(NewAssistantMessage("answer", []Source{{Origin: "doc.pdf", Excerpt: "text"}}))

	history := log.HistoryForRequest()
	if len(history) != 2 {
		t.Fatalf("history length: want 2, got %d", len(history))
	}
	if history[0].Sender != "user" {
		t.Errorf("user wire tag: %q", history[0].Sender)
	}
	// The backend contract tags assistant turns as "ai".
	if history[1].Sender != "ai" {
		t.Errorf("assistant wire tag: %q", history[1].Sender)
	}
	if history[1].Text != "answer" {
		t.Errorf("history text: %q", history[1].Text)
	}
}

func TestHistoryForRequestEmptyLog(t *testing.T) {
	log := NewLog()
	history := log.HistoryForRequest()
	if history == nil {
		t.Error("empty log should project to an empty slice, not nil")
	}
	if len(history) != 0 {
		t.Errorf("history length: want 0, got %d", len(history))
	}
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("hi")
	if u.Sender != SenderUser || u.ID == "" || u.CreatedAt.IsZero() {
		t.Errorf("NewUserMessage: %+v", u)
	}
	if u.HasSources() {
		t.Error("user message should have no sources")
	}

	a := NewAssistantMessage("hello", []Source{{Origin: "a.pdf"}})
	if a.Sender != SenderAssistant || a.ID == "" {
		t.Errorf("NewAssistantMessage: %+v", a)
	}
	if !a.HasSources() {
		t.Error("assistant message with sources reports none")
	}

	if u.ID == a.ID {
		t.Error("message IDs should be unique")
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.Log == nil || s.Models == nil || s.Attribution == nil {
		t.Fatal("NewSession left nil fields")
	}
	if s.Log.Len() != 0 {
		t.Errorf("new session log not empty: %d", s.Log.Len())
	}
	if s.Models.Current() != DefaultModel {
		t.Errorf("new session model: %q", s.Models.Current())
	}
}
