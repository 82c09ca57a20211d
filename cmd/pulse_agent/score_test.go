package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-pulse/internal/scoring"
)

const validSubmissionJSON = `{
	"candidate_token": "tok_cli",
	"stage": "panel",
	"role_family": "engineering",
	"overall": 5,
	"fairness": 5,
	"attention": 5,
	"aspects": ["clarity", "communication"],
	"well": "panel was engaging transparent respectful thoughtful inclusive collaborative pacing strong role clarity genuine context depth",
	"better": "faster compensation transparency and earlier interview timeline updates would help candidates plan around busy weeks",
	"consent": true
}`

func TestScoreSubmission_Valid(t *testing.T) {
	result, err := scoreSubmission([]byte(validSubmissionJSON))
	require.NoError(t, err)

	assert.Equal(t, "tok_cli", result.CandidateToken)
	assert.True(t, result.IncentiveEligible)
	assert.NotEmpty(t, result.Summary)
}

func TestScoreSubmission_MalformedJSON(t *testing.T) {
	_, err := scoreSubmission([]byte("{ nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse submission JSON")
}

func TestScoreSubmission_RantTooLong(t *testing.T) {
	payload := `{
		"candidate_token": "tok_cli",
		"overall": 5, "fairness": 5, "attention": 5,
		"well": "panel was engaging transparent respectful thoughtful inclusive collaborative pacing strong role clarity genuine context depth",
		"better": "faster compensation transparency and earlier interview timeline updates would help candidates plan around busy weeks",
		"rant": "` + strings.Repeat("a", 10000) + `",
		"consent": true
	}`

	_, err := scoreSubmission([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid submission")
	assert.Contains(t, err.Error(), "Rant")
}

func TestScoreSubmission_ValidationError(t *testing.T) {
	_, err := scoreSubmission([]byte(`{"candidate_token":"tok","well":"short","better":"short","overall":5,"fairness":5,"attention":5,"consent":false}`))
	require.Error(t, err)

	var valErr *scoring.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "consent", valErr.Field)
}
