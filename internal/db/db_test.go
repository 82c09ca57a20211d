package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionRecordType(t *testing.T) {
	rec := SubmissionRecord{
		CandidateToken: "cand-123",
		Stage:          "panel",
	}

	assert.Equal(t, "cand-123", rec.CandidateToken)
	assert.Equal(t, "panel", rec.Stage)
	assert.Equal(t, uuid.Nil, rec.ID)
}

func TestScoreRecordType(t *testing.T) {
	rec := ScoreRecord{
		Composite: 0.82,
		Band:      "Success",
	}

	assert.Equal(t, 0.82, rec.Composite)
	assert.Equal(t, "Success", rec.Band)
	assert.Nil(t, rec.Result)
}

func TestDLQItemType(t *testing.T) {
	item := DLQItem{
		DayKey:  "2026-02-10",
		Payload: []byte(`{"event":"candidate_feedback_invite"}`),
		Reason:  "connection refused",
	}

	assert.Equal(t, "2026-02-10", item.DayKey)
	assert.NotEmpty(t, item.Payload)
	assert.Equal(t, "connection refused", item.Reason)
}
