package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// InteractionRecord is one completed polish request. Rows are write-once:
// no update or delete path exists in this service.
type InteractionRecord struct {
	SessionID    string
	InputText    string
	Language     string // reserved, currently always empty
	Context      string
	Tone         string
	Model        string
	Subject      string
	PolishedText string
	Notes        []string
}

// WriteInteraction appends one interaction row. The timestamp is captured
// here, notes are stored as a JSON array, and the length metrics are
// counted in runes from the literal strings given.
func (s *Store) WriteInteraction(ctx context.Context, rec InteractionRecord) (int64, error) {
	notes := rec.Notes
	if notes == nil {
		notes = []string{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return 0, fmt.Errorf("marshal notes: %w", err)
	}

	var id int64
	err = s.pool.QueryRow(ctx, `
		INSERT INTO interactions (
			created_at, session_id, input_text, language, context, tone,
			model, subject, polished_text, notes, input_len, output_len
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		time.Now().UTC(),
		rec.SessionID,
		rec.InputText,
		rec.Language,
		rec.Context,
		rec.Tone,
		rec.Model,
		rec.Subject,
		rec.PolishedText,
		notesJSON,
		utf8.RuneCountInString(rec.InputText),
		utf8.RuneCountInString(rec.PolishedText),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert interaction: %w", err)
	}

	return id, nil
}

// CountInteractions reports how many rows have been written. Used by the
// status endpoint; the service never reads records back otherwise.
func (s *Store) CountInteractions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM interactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
