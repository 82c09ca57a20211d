// Package scoring composes structured ratings, lexicon sentiment, aspect
// polarity, and text-quality heuristics into a single experience index with
// discrete bands and an incentive-eligibility decision.
//
// Two weight sets exist for historical reasons: the HTTP endpoint profile
// (rating-driven NSS) and the embedded snapshot profile (text-sentiment NSS).
// Both are kept as named Profile values rather than silently merged; the
// HTTP profile is canonical for the API surface.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/candidate-pulse/internal/absa"
	"github.com/jonathan/candidate-pulse/internal/quality"
	"github.com/jonathan/candidate-pulse/internal/types"
)

// Band labels for every score dimension.
const (
	BandSuccess = "Success"
	BandCaution = "Caution"
	BandRisk    = "Risk"
)

// minFieldWords is the minimum word count for the required free-text fields.
const minFieldWords = 15

// Profile holds the weight set for one score-composition variant.
type Profile struct {
	Name string

	// Rating-driven NSS blend (HTTP endpoint).
	NSSOverallWeight  float64
	NSSFairnessWeight float64

	// Composite index blend.
	CompositeNSSWeight      float64
	CompositeABSAWeight     float64
	CompositeRichnessWeight float64
	LowEffortPenalty        float64
	RichnessCap             float64
	AspectRichness          float64

	// Band thresholds.
	SuccessAt float64
	CautionAt float64

	// Text-sentiment NSS blend (snapshot variant).
	SnapshotSummaryWeight float64
	SnapshotWellWeight    float64
	SnapshotBetterWeight  float64

	// Snapshot composite blend over index/hygiene/aspect-lift.
	SnapshotIndexWeight   float64
	SnapshotHygieneWeight float64
	SnapshotAspectWeight  float64
	SnapshotHygieneFloor  float64
}

// HTTPProfile is the canonical weight set used by the scoring endpoint.
var HTTPProfile = Profile{
	Name:                    "http",
	NSSOverallWeight:        0.7,
	NSSFairnessWeight:       0.3,
	CompositeNSSWeight:      0.55,
	CompositeABSAWeight:     0.30,
	CompositeRichnessWeight: 0.15,
	LowEffortPenalty:        0.05,
	RichnessCap:             200,
	AspectRichness:          20,
	SuccessAt:               0.75,
	CautionAt:               0.55,
}

// SnapshotProfile is the demo-mode variant used by the embedded snapshot
// builder. Its NSS is driven by text sentiment rather than ratings.
var SnapshotProfile = Profile{
	Name:                  "snapshot",
	SuccessAt:             0.75,
	CautionAt:             0.55,
	SnapshotSummaryWeight: 0.55,
	SnapshotWellWeight:    0.30,
	SnapshotBetterWeight:  0.15,
	SnapshotIndexWeight:   0.65,
	SnapshotHygieneWeight: 0.20,
	SnapshotAspectWeight:  0.15,
	SnapshotHygieneFloor:  0.55,
}

// Result is the score response returned to the caller. It is ephemeral:
// computed per request and never re-derived from stored data.
type Result struct {
	CandidateToken    string            `json:"candidate_token"`
	Stage             string            `json:"stage"`
	RoleFamily        string            `json:"role_family"`
	NSS               float64           `json:"nss"`
	CompositeIndex    float64           `json:"composite_index"`
	Bands             map[string]string `json:"bands"`
	ABSA              absa.Aspects      `json:"absa"`
	Richness          float64           `json:"richness"`
	Summary           string            `json:"summary"`
	CoachingCue       string            `json:"coaching_cue"`
	Quality           quality.Metrics   `json:"quality"`
	QualityFlags      []string          `json:"quality_flags"`
	QualityScore      float64           `json:"quality_score"`
	IncentiveEligible bool              `json:"incentive_eligible"`
}

// Composer scores submissions with a fixed profile. It holds no mutable
// state and is safe for concurrent use.
type Composer struct {
	profile Profile
}

// NewComposer returns a Composer using the given weight profile.
func NewComposer(profile Profile) *Composer {
	return &Composer{profile: profile}
}

// Score validates and scores a submission with the composer's profile.
// Invalid submissions are rejected wholesale with a *ValidationError; valid
// submissions always produce a complete result, with degenerate text
// degrading toward neutral/low scores rather than erroring.
func (c *Composer) Score(sub *types.Submission) (*Result, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	wellBlock := textBlockFor(sub.Well)
	betterBlock := textBlockFor(sub.Better)
	textScore := (wellBlock.score + betterBlock.score) / 2

	assessment := quality.AssessQuality([]string{sub.Well, sub.Better, sub.Rant})
	lowEffort := quality.IsLikelyLowEffort(assessment)

	aspects := sub.UniqueAspects()
	extracted := absa.Extract(sub.Well, sub.Better, sub.Rant)
	balance := extracted.Balance()

	nss := clamp(c.profile.NSSOverallWeight*normalizeRating(sub.Overall)+
		c.profile.NSSFairnessWeight*normalizeRating(sub.Fairness), -1, 1)

	richness := float64(types.WordCount(sub.Well)+types.WordCount(sub.Better)) +
		c.profile.AspectRichness*float64(len(aspects))

	composite := c.profile.CompositeNSSWeight*((nss+1)/2) +
		c.profile.CompositeABSAWeight*((balance+1)/2) +
		c.profile.CompositeRichnessWeight*(math.Min(c.profile.RichnessCap, richness)/c.profile.RichnessCap)
	if lowEffort {
		composite -= c.profile.LowEffortPenalty
	}
	composite = clamp(composite, 0, 1)

	trust := 0.0
	if sub.Consent {
		trust = 1.0
	}
	bands := map[string]string{
		"overall":   c.bandFor(composite),
		"fairness":  c.bandFor(float64(sub.Fairness) / 5),
		"sentiment": c.bandFor(textScore),
		"rigor":     c.bandFor(1 - math.Max(wellBlock.rep, betterBlock.rep)),
		"speed":     c.bandFor(float64(sub.Attention) / 5),
		"clarity":   c.bandFor((wellBlock.div + betterBlock.div) / 2),
		"trust":     c.bandFor(trust),
	}

	return &Result{
		CandidateToken:    sub.CandidateToken,
		Stage:             sub.Stage,
		RoleFamily:        sub.RoleFamily,
		NSS:               round3(nss),
		CompositeIndex:    round3(composite),
		Bands:             bands,
		ABSA:              extracted,
		Richness:          richness,
		Summary:           buildSummary(sub.Stage, nss, extracted),
		CoachingCue:       buildCoachingCue(sub.Stage, extracted),
		Quality:           assessment.Metrics,
		QualityFlags:      flagsOrEmpty(assessment.Flags),
		QualityScore:      assessment.Score,
		IncentiveEligible: !lowEffort,
	}, nil
}

// validateSubmission enforces the pre-scoring gates: consent, minimum word
// counts, and rating ranges.
func validateSubmission(sub *types.Submission) error {
	if !sub.Consent {
		return &ValidationError{Field: "consent", Message: "consent is required for scoring"}
	}
	if types.WordCount(sub.Well) < minFieldWords {
		return &ValidationError{Field: "well", Message: "must contain at least 15 words"}
	}
	if types.WordCount(sub.Better) < minFieldWords {
		return &ValidationError{Field: "better", Message: "must contain at least 15 words"}
	}
	ratings := []struct {
		field string
		value int
	}{
		{"overall", sub.Overall},
		{"fairness", sub.Fairness},
		{"attention", sub.Attention},
	}
	for _, r := range ratings {
		if r.value < 1 || r.value > 5 {
			return &ValidationError{Field: r.field, Message: "rating must be between 1 and 5"}
		}
	}
	return nil
}

// normalizeRating maps a 1-5 rating onto [-1, 1] with 3 as the midpoint.
func normalizeRating(rating int) float64 {
	return (float64(rating) - 3) / 2
}

func (c *Composer) bandFor(v float64) string {
	switch {
	case v >= c.profile.SuccessAt:
		return BandSuccess
	case v >= c.profile.CautionAt:
		return BandCaution
	default:
		return BandRisk
	}
}

// textBlock holds the per-field diversity/repetition mini-metrics that feed
// the band dimensions. Only the first 15 words of a field count, so padding
// an answer does not move these bands.
type textBlock struct {
	score float64
	div   float64
	rep   float64
}

var blockTokenStrip = regexp.MustCompile(`[^a-z0-9']`)

func textBlockFor(text string) textBlock {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) > minFieldWords {
		fields = fields[:minFieldWords]
	}
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := blockTokenStrip.ReplaceAllString(strings.ToLower(f), "")
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return textBlock{}
	}

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	maxFreq := 0
	for _, n := range freq {
		if n > maxFreq {
			maxFreq = n
		}
	}

	div := float64(len(freq)) / float64(len(words))
	rep := math.Max(0, float64(maxFreq-1)/float64(len(words)))
	return textBlock{
		score: math.Max(0, div-rep),
		div:   div,
		rep:   rep,
	}
}

func flagsOrEmpty(flags []string) []string {
	if flags == nil {
		return []string{}
	}
	return flags
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
