package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/quillworks/polishd/internal/events"
	"github.com/quillworks/polishd/internal/polisher"
	"github.com/quillworks/polishd/internal/prompt"
	"github.com/quillworks/polishd/internal/store"
)

// PolishRequest is the JSON payload for POST /api/v1/polish.
type PolishRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
	Tone      string `json:"tone"`
	Context   string `json:"context"`
	ShowNotes bool   `json:"show_notes"`
}

// PolishResponse is the structured result returned to the client.
// RawResponse is only set when notes were requested but none could be
// parsed, so the client can show the full model output instead of
// silently dropping it.
type PolishResponse struct {
	SessionID   string   `json:"session_id"`
	Subject     string   `json:"subject,omitempty"`
	Body        string   `json:"body"`
	Notes       []string `json:"notes"`
	RawResponse string   `json:"raw_response,omitempty"`
	Model       string   `json:"model"`
}

// DownloadRequest is the JSON payload for POST /api/v1/polish/download.
type DownloadRequest struct {
	Text string `json:"text"`
}

func (s *Server) polish(w http.ResponseWriter, r *http.Request) {
	var req PolishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	tone, err := prompt.ParseTone(req.Tone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pctx, err := prompt.ParseContext(req.Context)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	out, err := s.polisher.Polish(r.Context(), polisher.Request{
		Text:      req.Text,
		Tone:      tone,
		Context:   pctx,
		WantNotes: req.ShowNotes,
	})
	if err != nil {
		s.logger.Error("polish failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("polish failed: %v", err))
		return
	}

	s.record(r, sessionID, req, out)

	resp := PolishResponse{
		SessionID: sessionID,
		Subject:   out.Subject,
		Body:      out.Body,
		Notes:     out.Notes,
		Model:     out.Model,
	}
	if req.ShowNotes && len(out.Notes) == 0 {
		resp.RawResponse = out.Raw
	}
	writeJSON(w, http.StatusOK, resp)
}

// record persists the interaction and fans out the event. The user-facing
// result is already computed at this point, so a store failure is logged
// and the request still succeeds.
func (s *Server) record(r *http.Request, sessionID string, req PolishRequest, out *polisher.Outcome) {
	if s.store == nil {
		return
	}

	id, err := s.store.WriteInteraction(r.Context(), store.InteractionRecord{
		SessionID:    sessionID,
		InputText:    req.Text,
		Context:      req.Context,
		Tone:         req.Tone,
		Model:        out.Model,
		Subject:      out.Subject,
		PolishedText: out.Body,
		Notes:        out.Notes,
	})
	if err != nil {
		s.logger.Error("failed to record interaction", "session_id", sessionID, "error", err)
		return
	}

	if s.events == nil {
		return
	}
	evt := events.InteractionEvent{
		RecordID:  id,
		SessionID: sessionID,
		Context:   req.Context,
		Tone:      req.Tone,
		Model:     out.Model,
		Subject:   out.Subject,
		NoteCount: len(out.Notes),
		InputLen:  utf8.RuneCountInString(req.Text),
		OutputLen: utf8.RuneCountInString(out.Body),
	}
	if err := s.events.InteractionRecorded(evt); err != nil {
		s.logger.Warn("failed to publish interaction event", "record_id", id, "error", err)
	}
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="polished_text.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(req.Text))
}
