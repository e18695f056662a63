package polisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillworks/polishd/internal/anthropic"
	"github.com/quillworks/polishd/internal/decompose"
	"github.com/quillworks/polishd/internal/prompt"
)

// LLM is the slice of the Anthropic client the polisher needs. Satisfied
// by *anthropic.Client; tests substitute a fake.
type LLM interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
	Model() string
}

// Request is one polish request as validated by the API layer.
type Request struct {
	Text      string
	Tone      prompt.Tone
	Context   prompt.Context
	WantNotes bool
}

// Outcome is the structured result of one polish. Raw keeps the unparsed
// model response so a caller can fall back to showing it when notes were
// requested but none could be parsed.
type Outcome struct {
	Subject string
	Body    string
	Notes   []string
	Raw     string
	Model   string
}

// Polisher runs one request through the compose → complete → decompose
// pipeline.
type Polisher struct {
	llm       LLM
	maxTokens int
	logger    *slog.Logger
}

func New(llm LLM, maxTokens int, logger *slog.Logger) *Polisher {
	return &Polisher{llm: llm, maxTokens: maxTokens, logger: logger}
}

// Polish sends the composed prompt to the model and decomposes the reply.
// An LLM transport or API failure is returned to the caller as-is; the
// decomposition itself cannot fail.
func (p *Polisher) Polish(ctx context.Context, req Request) (*Outcome, error) {
	userPrompt := prompt.Compose(req.Text, req.Tone, req.Context, req.WantNotes)

	p.logger.Info("polishing",
		"tone", req.Tone,
		"context", req.Context,
		"want_notes", req.WantNotes,
		"input_len", len(req.Text),
	)

	raw, err := p.llm.Complete(ctx, prompt.SystemPrompt, []anthropic.Message{
		{Role: "user", Content: userPrompt},
	}, p.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("llm polish: %w", err)
	}

	result := decompose.Decompose(raw, req.Context)

	p.logger.Info("polish complete",
		"context", req.Context,
		"has_subject", result.Subject != "",
		"notes", len(result.Notes),
		"output_len", len(result.Body),
	)

	return &Outcome{
		Subject: result.Subject,
		Body:    result.Body,
		Notes:   result.Notes,
		Raw:     raw,
		Model:   p.llm.Model(),
	}, nil
}
