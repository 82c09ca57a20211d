package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-pulse/internal/db"
	"github.com/jonathan/candidate-pulse/internal/scoring"
	"github.com/jonathan/candidate-pulse/internal/types"
)

// handleScore scores a feedback submission and returns the full result.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var sub types.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrInvalidJSON{}).Error())
		return
	}

	if err := sub.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.composer.Score(&sub)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Persistence is best-effort: a store failure never loses the score
	if s.db != nil {
		if id, err := s.db.SaveSubmission(r.Context(), &sub); err != nil {
			log.Printf("Failed to save submission: %v", err)
		} else if err := s.db.SaveScore(r.Context(), id, result.CompositeIndex, result.Bands["overall"], result); err != nil {
			log.Printf("Failed to save score: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleSubmissions lists stored submissions for a candidate token.
func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token := r.URL.Query().Get("candidate_token")
	if token == "" {
		s.errorResponse(w, http.StatusBadRequest, "candidate_token is required")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.db.ListSubmissions(r.Context(), token, limit)
	if err != nil {
		log.Printf("Failed to list submissions: %v", err)
		s.errorResponse(w, HTTPStatus(err), "failed to list submissions")
		return
	}
	if records == nil {
		records = []db.SubmissionRecord{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"submissions": records})
}

// handleSubmissionScore returns the stored score for one submission.
func (s *Server) handleSubmissionScore(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	rec, err := s.db.GetScore(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get score: %v", err)
		s.errorResponse(w, HTTPStatus(err), "failed to get score")
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, "no score stored for submission")
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleSnapshot runs demo-mode snapshot scoring on a survey form payload.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var in scoring.SnapshotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrInvalidJSON{}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, scoring.BuildSnapshot(in))
}

// handleTrack accepts fire-and-forget client metrics. The payload is logged
// and acknowledged; nothing downstream depends on it.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrInvalidJSON{}).Error())
		return
	}

	if name, ok := payload["event"].(string); ok {
		log.Printf("[track] %s", name)
	}

	s.jsonResponse(w, http.StatusAccepted, map[string]bool{"ok": true})
}
