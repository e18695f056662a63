package polisher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quillworks/polishd/internal/anthropic"
	"github.com/quillworks/polishd/internal/prompt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func llmReturning(t *testing.T, text string, capture *string) (*anthropic.Client, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []anthropic.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if capture != nil && len(req.Messages) == 1 {
			*capture = req.Messages[0].Content
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
			"stop_reason": "end_turn",
		})
	}))

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)
	return llm, server.Close
}

func TestPolish_Success(t *testing.T) {
	var sentPrompt string
	llm, done := llmReturning(t, "1) Hi team, please review.\n2) - Shortened greeting", &sentPrompt)
	defer done()

	p := New(llm, 2048, discardLogger())
	out, err := p.Polish(context.Background(), Request{
		Text:      "hey guys pls review",
		Tone:      prompt.ToneMoreFormal,
		Context:   prompt.ContextMessageTeammate,
		WantNotes: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Body != "Hi team, please review." {
		t.Errorf("body = %q", out.Body)
	}
	if len(out.Notes) != 1 || out.Notes[0] != "Shortened greeting" {
		t.Errorf("notes = %v", out.Notes)
	}
	if out.Subject != "" {
		t.Errorf("subject = %q, want none for teammate message", out.Subject)
	}
	if out.Model != "test-model" {
		t.Errorf("model = %q", out.Model)
	}
	if out.Raw == "" {
		t.Error("raw response must be carried through")
	}

	if !strings.Contains(sentPrompt, "hey guys pls review") {
		t.Errorf("prompt missing original text:\n%s", sentPrompt)
	}
	if !strings.Contains(sentPrompt, "Target tone: More formal") {
		t.Errorf("prompt missing tone:\n%s", sentPrompt)
	}
}

func TestPolish_EmailSubject(t *testing.T) {
	llm, done := llmReturning(t, "Subject: Review request\n\nHi all, please review the doc.", nil)
	defer done()

	p := New(llm, 2048, discardLogger())
	out, err := p.Polish(context.Background(), Request{
		Text:    "pls review doc",
		Tone:    prompt.ToneMorePolite,
		Context: prompt.ContextEmailToManager,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Subject != "Review request" {
		t.Errorf("subject = %q", out.Subject)
	}
	if out.Body != "Hi all, please review the doc." {
		t.Errorf("body = %q", out.Body)
	}
}

func TestPolish_LLMFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "api_error", "message": "overloaded"},
		})
	}))
	defer server.Close()

	llm := anthropic.NewClient("test-key", "test-model")
	llm.SetTestTransport(server.URL)

	p := New(llm, 2048, discardLogger())
	_, err := p.Polish(context.Background(), Request{
		Text:    "anything",
		Tone:    prompt.ToneMoreConcise,
		Context: prompt.ContextChatMessage,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "api_error") {
		t.Errorf("expected api error detail, got %v", err)
	}
}

func TestPolish_UnparseableResponseStillSucceeds(t *testing.T) {
	llm, done := llmReturning(t, "The model just rambled with no structure at all.", nil)
	defer done()

	p := New(llm, 2048, discardLogger())
	out, err := p.Polish(context.Background(), Request{
		Text:      "input",
		Tone:      prompt.ToneMoreCasual,
		Context:   prompt.ContextChatMessage,
		WantNotes: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Body != "The model just rambled with no structure at all." {
		t.Errorf("body = %q, want the whole raw response", out.Body)
	}
	if len(out.Notes) != 0 {
		t.Errorf("notes = %v, want empty", out.Notes)
	}
}
