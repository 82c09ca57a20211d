package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-pulse/internal/absa"
	"github.com/jonathan/candidate-pulse/internal/sentiment"
	"github.com/jonathan/candidate-pulse/internal/types"
)

// stageLabels maps funnel stages to display labels. Unknown stages fall back
// to "Panel" so the templates never render a raw enum value.
var stageLabels = map[string]string{
	types.StageApplied:       "Applied",
	types.StageRecruiter:     "Recruiter Screen",
	types.StageHiringManager: "Hiring Manager",
	types.StagePanel:         "Panel",
	types.StageAssignment:    "Take-home",
	types.StageOffer:         "Offer",
	types.StageRejected:      "Closure",
}

func formatStage(stage string) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return "Panel"
}

// formatAspect turns an aspect key into a display label: underscores and
// hyphens become spaces and each word is capitalized.
func formatAspect(aspect string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(aspect)
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// buildSummary renders the templated response summary from the stage, the
// net sentiment, and the extracted aspects.
func buildSummary(stage string, nss float64, aspects absa.Aspects) string {
	tone := "positive"
	if nss < 0 {
		tone = "risk"
	}

	strengthLabel := "responsiveness"
	if len(aspects.Positive) > 0 {
		strengths := aspects.Positive
		if len(strengths) > 2 {
			strengths = strengths[:2]
		}
		labels := make([]string, len(strengths))
		for i, a := range strengths {
			labels[i] = formatAspect(a)
		}
		strengthLabel = strings.Join(labels, " & ")
	}

	focus := "feedback cadence"
	if len(aspects.Negative) > 0 {
		focus = formatAspect(aspects.Negative[0])
	}

	return fmt.Sprintf("Candidate sentiment landed %s at the %s stage. Strengths: %s. Focus next: %s.",
		tone, formatStage(stage), strengthLabel, focus)
}

// buildCoachingCue renders the follow-up recommendation, preferring a
// feedback-related negative aspect as the coaching focus.
func buildCoachingCue(stage string, aspects absa.Aspects) string {
	focus := "follow-up clarity"
	for _, a := range aspects.Negative {
		if strings.Contains(a, "feedback") {
			focus = a
			break
		}
	}
	if focus == "follow-up clarity" && len(aspects.Negative) > 0 {
		focus = aspects.Negative[0]
	}

	return fmt.Sprintf("Coach the %s crew on %s and ship a follow-up within 24 hours.",
		strings.ToLower(formatStage(stage)), formatAspect(focus))
}

// summaryTone labels a snapshot's sentiment blend for display.
func summaryTone(nss float64) string {
	return sentiment.ToneFromScore(nss)
}
