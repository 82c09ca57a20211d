package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-pulse/internal/types"
)

// SubmissionRecord is a stored feedback submission
type SubmissionRecord struct {
	ID             uuid.UUID `json:"id"`
	CandidateToken string    `json:"candidate_token"`
	Stage          string    `json:"stage"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScoreRecord is a stored score result for a submission
type ScoreRecord struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	Composite    float64   `json:"composite"`
	Band         string    `json:"band"`
	Result       any       `json:"result,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaveSubmission stores a feedback submission and returns its ID
func (db *DB) SaveSubmission(ctx context.Context, sub *types.Submission) (uuid.UUID, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO submissions (candidate_token, stage, payload)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sub.CandidateToken, sub.Stage, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save submission: %w", err)
	}
	return id, nil
}

// SaveScore stores a score result for a submission
func (db *DB) SaveScore(ctx context.Context, submissionID uuid.UUID, composite float64, band string, result any) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal score result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO scores (submission_id, composite, band, result)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (submission_id) DO UPDATE SET composite = $2, band = $3, result = $4, created_at = NOW()`,
		submissionID, composite, band, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// GetScore retrieves a score record by submission ID. Returns nil when no
// score has been stored for the submission.
func (db *DB) GetScore(ctx context.Context, submissionID uuid.UUID) (*ScoreRecord, error) {
	var rec ScoreRecord
	var resultBytes []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, submission_id, composite, band, result, created_at
		 FROM scores WHERE submission_id = $1`,
		submissionID,
	).Scan(&rec.ID, &rec.SubmissionID, &rec.Composite, &rec.Band, &resultBytes, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	if len(resultBytes) > 0 {
		var result any
		if err := json.Unmarshal(resultBytes, &result); err == nil {
			rec.Result = result
		}
	}
	return &rec, nil
}

// ListSubmissions retrieves recent submissions for a candidate token
func (db *DB) ListSubmissions(ctx context.Context, candidateToken string, limit int) ([]SubmissionRecord, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_token, stage, created_at
		 FROM submissions WHERE candidate_token = $1
		 ORDER BY created_at DESC LIMIT $2`,
		candidateToken, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var records []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.CandidateToken, &rec.Stage, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
