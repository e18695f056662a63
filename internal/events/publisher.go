package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectInteractionRecorded is published after an interaction row has
// been written, so downstream consumers can follow along without polling
// the table.
const SubjectInteractionRecorded = "polish.interaction.recorded"

// InteractionEvent mirrors the persisted record minus the text payloads;
// consumers that need the full text read the row by id.
type InteractionEvent struct {
	RecordID  int64  `json:"record_id"`
	SessionID string `json:"session_id"`
	Context   string `json:"context"`
	Tone      string `json:"tone"`
	Model     string `json:"model"`
	Subject   string `json:"subject,omitempty"`
	NoteCount int    `json:"note_count"`
	InputLen  int    `json:"input_len"`
	OutputLen int    `json:"output_len"`
	Timestamp string `json:"timestamp"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func Connect(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

// InteractionRecorded publishes one recorded-interaction event. Failures
// are the caller's to log; they must never fail the request.
func (p *Publisher) InteractionRecorded(evt InteractionEvent) error {
	if evt.Timestamp == "" {
		evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(SubjectInteractionRecorded, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
