// Package types provides type definitions for structured data shared across
// the candidate-pulse system.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Interview funnel stages. Unknown stage values pass through as free text;
// the set here only drives display formatting.
const (
	StageApplied       = "applied"
	StageRecruiter     = "recruiter"
	StageHiringManager = "hiring_manager"
	StagePanel         = "panel"
	StageAssignment    = "assignment"
	StageOffer         = "offer"
	StageRejected      = "rejected"
)

// Submission is a post-interview feedback submission as received from the
// survey client. It is immutable once received; re-scoring requires
// re-submitting the original text.
type Submission struct {
	CandidateToken string   `json:"candidate_token" validate:"required"`
	Stage          string   `json:"stage"`
	RoleFamily     string   `json:"role_family"`
	Overall        int      `json:"overall" validate:"min=1,max=5"`
	Fairness       int      `json:"fairness" validate:"min=1,max=5"`
	Attention      int      `json:"attention" validate:"min=1,max=5"`
	Aspects        []string `json:"aspects"`
	Well           string   `json:"well" validate:"required"`
	Better         string   `json:"better" validate:"required"`
	Rant           string   `json:"rant,omitempty" validate:"omitempty,max=500"`
	Consent        bool     `json:"consent"`
}

// Validate validates the Submission using the validator. Domain rules that
// the tag syntax cannot express (consent, minimum word counts) are enforced
// by the score composer.
func (s *Submission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// UniqueAspects returns the caller-selected aspect tags with duplicates
// collapsed, preserving first-seen order.
func (s *Submission) UniqueAspects() []string {
	seen := make(map[string]bool, len(s.Aspects))
	out := make([]string, 0, len(s.Aspects))
	for _, a := range s.Aspects {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
