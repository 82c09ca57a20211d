// Package absa extracts aspect-based sentiment from survey free text. A fixed
// rule table matches interview-experience categories (communication,
// scheduling, clarity, ...) and classifies each matched aspect as positive or
// negative using shared polarity cues, falling back to the polarity implied
// by the field the trigger appeared in.
package absa

import "strings"

// Aspects holds the per-category polarity classification for one submission.
// Each category appears in at most one of the two lists.
type Aspects struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Extract matches the aspect rule table against the submission's free-text
// fields. Polarity is decided by the shared cue patterns over the full text,
// negative cues first; when neither cue matches, the field that contains the
// trigger decides (well implies positive, better and rant imply negative).
func Extract(well, better, rant string) Aspects {
	wellLower := strings.ToLower(well)
	betterLower := strings.ToLower(better)
	rantLower := strings.ToLower(rant)
	full := strings.TrimSpace(wellLower + " " + betterLower + " " + rantLower)

	var out Aspects
	if full == "" {
		return out
	}

	hasNegative := negativeCue.MatchString(full)
	hasPositive := positiveCue.MatchString(full)

	for _, r := range rules {
		if !r.match.MatchString(full) {
			continue
		}
		switch {
		case hasNegative:
			out.Negative = append(out.Negative, r.category)
		case hasPositive:
			out.Positive = append(out.Positive, r.category)
		case r.match.MatchString(wellLower):
			out.Positive = append(out.Positive, r.category)
		default:
			out.Negative = append(out.Negative, r.category)
		}
	}
	return out
}

// Balance returns (positives - negatives) / (positives + negatives), or 0
// when no aspects matched.
func (a Aspects) Balance() float64 {
	total := len(a.Positive) + len(a.Negative)
	if total == 0 {
		return 0
	}
	return float64(len(a.Positive)-len(a.Negative)) / float64(total)
}
