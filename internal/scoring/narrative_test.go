package scoring

import (
	"testing"

	"github.com/jonathan/candidate-pulse/internal/absa"
	"github.com/jonathan/candidate-pulse/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildSummary_PositiveWithStrengths(t *testing.T) {
	got := buildSummary(types.StagePanel, 0.8, absa.Aspects{
		Positive: []string{absa.Communication, absa.Clarity, absa.Respect},
	})

	assert.Equal(t,
		"Candidate sentiment landed positive at the Panel stage. "+
			"Strengths: Communication & Clarity. Focus next: feedback cadence.",
		got)
}

func TestBuildSummary_NegativeFocus(t *testing.T) {
	got := buildSummary(types.StageRecruiter, -0.4, absa.Aspects{
		Negative: []string{absa.Scheduling},
	})

	assert.Contains(t, got, "landed risk at the Recruiter Screen stage")
	assert.Contains(t, got, "Focus next: Scheduling.")
	assert.Contains(t, got, "Strengths: responsiveness")
}

func TestBuildCoachingCue_PrefersFeedbackAspect(t *testing.T) {
	got := buildCoachingCue(types.StageHiringManager, absa.Aspects{
		Negative: []string{absa.Scheduling, absa.FeedbackTimeliness},
	})

	assert.Equal(t,
		"Coach the hiring manager crew on Feedback Timeliness and ship a follow-up within 24 hours.",
		got)
}

func TestBuildCoachingCue_FallsBackToFirstNegative(t *testing.T) {
	got := buildCoachingCue(types.StagePanel, absa.Aspects{
		Negative: []string{absa.Scheduling},
	})

	assert.Contains(t, got, "on Scheduling")
}

func TestBuildCoachingCue_DefaultFocus(t *testing.T) {
	got := buildCoachingCue(types.StageOffer, absa.Aspects{})

	assert.Contains(t, got, "Coach the offer crew on Follow Up Clarity")
}

func TestFormatStage_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "Panel", formatStage("something_else"))
	assert.Equal(t, "Take-home", formatStage(types.StageAssignment))
}

func TestFormatAspect(t *testing.T) {
	assert.Equal(t, "Feedback Timeliness", formatAspect("feedback_timeliness"))
	assert.Equal(t, "Follow Up Clarity", formatAspect("follow-up clarity"))
	assert.Equal(t, "", formatAspect(""))
}
