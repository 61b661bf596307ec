package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Chat
// ---------------------------------------------------------------------------

func TestChatRequestShape(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: want POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/" {
			t.Errorf("path: want /chat/, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Answer: "the answer",
			Sources: []SourceDocument{
				{Source: "notes.pdf", PageContent: "some passage"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	resp, err := client.Chat(context.Background(), ChatRequest{
		Question:  "what now?",
		ModelName: "gpt-4o",
		ChatHistory: []HistoryEntry{
			{Sender: "user", Text: "earlier"},
			{Sender: "ai", Text: "reply"},
		},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if got.Question != "what now?" {
		t.Errorf("question on the wire: %q", got.Question)
	}
	if got.ModelName != "gpt-4o" {
		t.Errorf("model_name on the wire: %q", got.ModelName)
	}
	if len(got.ChatHistory) != 2 || got.ChatHistory[1].Sender != "ai" {
		t.Errorf("chat_history on the wire: %+v", got.ChatHistory)
	}

	if resp.Answer != "the answer" {
		t.Errorf("Answer: %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Source != "notes.pdf" {
		t.Errorf("Sources: %+v", resp.Sources)
	}
}

func TestChatNilHistorySerializesAsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{Answer: "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	if _, err := client.Chat(context.Background(), ChatRequest{Question: "q", ModelName: "gpt-4o"}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	// The backend validates chat_history as a list; null would be rejected.
	if string(raw["chat_history"]) != "[]" {
		t.Errorf("chat_history: want [], got %s", raw["chat_history"])
	}
}

func TestChatErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Unsupported model"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	_, err := client.Chat(context.Background(), ChatRequest{Question: "q"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status: %d", apiErr.Status)
	}
	if apiErr.Detail != "Unsupported model" {
		t.Errorf("Detail: %q", apiErr.Detail)
	}
}

func TestChatErrorWithoutDetailBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	_, err := client.Chat(context.Background(), ChatRequest{Question: "q"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: %T", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("Status: %d", apiErr.Status)
	}
	if apiErr.Detail != "" {
		t.Errorf("Detail from a non-JSON body: %q", apiErr.Detail)
	}
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/list/" {
			t.Errorf("path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{"a.pdf", "b.txt"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	names, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(names) != 2 || names[0] != "a.pdf" || names[1] != "b.txt" {
		t.Errorf("names: %v", names)
	}
}

func TestVisualize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/visualize/" {
			t.Errorf("path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Point{
			{X: 1.5, Y: -2.25, Source: "a.pdf", Text: "chunk text"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	points, err := client.Visualize(context.Background())
	if err != nil {
		t.Fatalf("Visualize: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points: %d", len(points))
	}
	if points[0].X != 1.5 || points[0].Y != -2.25 || points[0].Source != "a.pdf" {
		t.Errorf("points[0]: %+v", points[0])
	}
}

// ---------------------------------------------------------------------------
// Upload
// ---------------------------------------------------------------------------

func TestUploadMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("document body"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload/" {
			t.Errorf("path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "report.txt" {
			t.Errorf("filename: %q", header.Filename)
		}
		json.NewEncoder(w).Encode(UploadResult{
			Filename:    header.Filename,
			Detail:      "Document processed",
			ChunksCount: 3,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	res, err := client.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.Filename != "report.txt" || res.ChunksCount != 3 {
		t.Errorf("result: %+v", res)
	}
}

func TestUploadMissingFile(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second)
	_, err := client.Upload(context.Background(), "/nonexistent/file.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 0)
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL: %q", client.BaseURL())
	}

	client = NewClient("http://example.com:9000/", 0)
	if client.BaseURL() != "http://example.com:9000" {
		t.Errorf("trailing slash not trimmed: %q", client.BaseURL())
	}
}
