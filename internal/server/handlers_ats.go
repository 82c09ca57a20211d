package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-pulse/internal/db"
	"github.com/jonathan/candidate-pulse/internal/schemas"
	"github.com/jonathan/candidate-pulse/internal/types"
)

// atsWebhookBody is the loose inbound shape before normalization. Upstream
// systems disagree on which fields they send; missing values get defaults.
type atsWebhookBody struct {
	ID             string `json:"id"`
	Event          string `json:"event"`
	Stage          string `json:"stage"`
	RoleFamily     string `json:"role_family"`
	CandidateToken string `json:"candidate_token"`
	SentAt         string `json:"sent_at"`
	Source         string `json:"source"`
}

// handleATSWebhook ingests an ATS event: normalize, validate against the
// event schema, persist, and forward downstream. A failed forward lands the
// event in the dead-letter queue instead of failing the request.
func (s *Server) handleATSWebhook(w http.ResponseWriter, r *http.Request) {
	var body atsWebhookBody
	if raw, err := io.ReadAll(r.Body); err == nil {
		// A malformed body normalizes the same way an empty one does
		_ = json.Unmarshal(raw, &body)
	}

	event := normalizeATSEvent(body, r.Header.Get("X-Idempotency-Key"), time.Now().UTC())

	document, err := json.Marshal(event)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode event")
		return
	}
	if err := schemas.ValidateATSEvent(document); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.db != nil {
		if inserted, err := s.db.SaveATSEvent(r.Context(), event); err != nil {
			log.Printf("Failed to save ATS event %s: %v", event.EventID, err)
		} else if !inserted {
			log.Printf("Duplicate ATS event ignored: %s", event.IdempotencyKey)
		}
	}

	if s.forwarder != nil {
		if err := s.forwarder.Forward(r.Context(), event); err != nil {
			log.Printf("Failed to forward ATS event %s: %v", event.EventID, err)
			if s.db != nil {
				if err := s.db.EnqueueDLQ(r.Context(), event.DayKey(), document, err.Error()); err != nil {
					log.Printf("Failed to enqueue dead-letter item: %v", err)
				}
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ok":              true,
		"event_id":        event.EventID,
		"idempotency_key": event.IdempotencyKey,
	})
}

// normalizeATSEvent fills defaults and stamps identifiers on an inbound
// payload. The idempotency key falls back to the event ID.
func normalizeATSEvent(body atsWebhookBody, idempotencyKey string, now time.Time) *types.ATSEvent {
	eventID := body.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	if idempotencyKey == "" {
		idempotencyKey = eventID
	}

	event := &types.ATSEvent{
		SchemaVersion:  types.ATSEventSchemaVersion,
		Event:          body.Event,
		Stage:          body.Stage,
		RoleFamily:     body.RoleFamily,
		CandidateToken: body.CandidateToken,
		SentAt:         body.SentAt,
		Source:         body.Source,
		EventID:        eventID,
		IdempotencyKey: idempotencyKey,
		ReceivedAt:     now,
	}
	if event.Event == "" {
		event.Event = types.DefaultATSEventName
	}
	if event.Stage == "" {
		event.Stage = "unknown"
	}
	if event.RoleFamily == "" {
		event.RoleFamily = "unknown"
	}
	if event.CandidateToken == "" {
		event.CandidateToken = "anon"
	}
	if event.SentAt == "" {
		event.SentAt = now.Format(time.RFC3339)
	}
	return event
}

// handleDLQRetry drains the dead-letter queue for one day, re-forwarding
// pending items and archiving the ones that deliver.
func (s *Server) handleDLQRetry(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if s.forwarder == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "forwarding is not configured")
		return
	}

	dayKey := r.URL.Query().Get("day")
	if dayKey == "" {
		dayKey = time.Now().UTC().Format("2006-01-02")
	}

	result, err := s.forwarder.DrainDLQ(r.Context(), s.db, dayKey)
	if err != nil {
		log.Printf("DLQ drain failed for %s: %v", dayKey, err)
		s.errorResponse(w, HTTPStatus(err), "dead-letter drain failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"day":       dayKey,
		"attempted": result.Attempted,
		"delivered": result.Delivered,
		"failed":    result.Failed,
	})
}

// handleDLQStats reports pending dead-letter counts grouped by day.
func (s *Server) handleDLQStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stats, err := s.db.CountDLQ(r.Context())
	if err != nil {
		log.Printf("Failed to count dead-letter items: %v", err)
		s.errorResponse(w, HTTPStatus(err), "failed to read dead-letter stats")
		return
	}
	if stats == nil {
		stats = []db.DLQStat{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"days": stats})
}
