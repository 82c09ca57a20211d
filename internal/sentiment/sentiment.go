// Package sentiment provides deterministic lexicon-based sentiment scoring
// for free-text survey answers.
//
// Scoring is rule-based: tokens are matched against a fixed valence lexicon
// with negation and intensity handling, then averaged and normalized to a
// bounded compound score. All functions are pure and safe for concurrent use;
// the lexicon tables are read-only after package initialization.
package sentiment

import (
	"math"
	"strings"
)

// scaleMax is the lexicon's empirical max magnitude; the averaged valence is
// divided by it so typical text lands inside [-1, 1] before clamping.
const scaleMax = 3.2

// negationDampen is applied when a lexicon hit follows a negator: the valence
// flips sign but is dampened rather than fully inverted ("not great" is mildly
// negative, not the mirror of "great").
const negationDampen = 0.6

// Tone labels derived from the compound score.
const (
	TonePositive = "positive"
	ToneNeutral  = "neutral"
	ToneNegative = "negative"
)

// Contribution records a single lexicon hit after negation/booster adjustment.
// Adjusted hits carry a trailing "*" on the token for the audit trail.
type Contribution struct {
	Token string  `json:"token"`
	Score float64 `json:"score"`
}

// Result is the sentiment analysis output for one text field.
type Result struct {
	Compound      float64        `json:"compound"`  // overall polarity in [-1, 1]
	Magnitude     float64        `json:"magnitude"` // total absolute contribution
	Tone          string         `json:"tone"`
	Contributions []Contribution `json:"contributions"`
}

// ToneFromScore maps a compound score to a tone label using fixed thresholds.
func ToneFromScore(score float64) string {
	switch {
	case score > 0.15:
		return TonePositive
	case score < -0.15:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// normalizeToken lowercases and strips characters outside [a-z+'-].
func normalizeToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || r == '+' || r == '\'' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokenize splits on whitespace and normalizes each token, dropping empties.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := normalizeToken(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ComputeSentiment scores free text against the valence lexicon.
//
// The scan prefers two-token phrase matches over single tokens, carries a
// pending negation flag and intensity delta across modifier tokens, and
// clears both carries on any other non-matching token. Text with no lexicon
// hits yields a neutral zero result.
func ComputeSentiment(text string) Result {
	tokens := tokenize(text)

	var (
		total         float64
		magnitude     float64
		prevNegation  bool
		intensity     float64
		contributions []Contribution
	)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		score := 0.0
		original := token

		if i+1 < len(tokens) {
			bigram := token + " " + tokens[i+1]
			if v, ok := lexicon[bigram]; ok && v != 0 {
				score = v
				original = bigram
				i++ // consume the second token of the bigram
			}
		}
		if score == 0 {
			if v, ok := lexicon[token]; ok && v != 0 {
				score = v
			}
		}

		if score == 0 {
			if negators[token] {
				prevNegation = true
				intensity = 0
				continue
			}
			if v, ok := boosters[token]; ok {
				intensity = math.Max(intensity, v)
				continue
			}
			if v, ok := dampeners[token]; ok {
				intensity = math.Min(intensity, v)
				continue
			}
			prevNegation = false
			intensity = 0
			continue
		}

		adjusted := score
		if prevNegation {
			adjusted = -score * negationDampen
		}
		if intensity != 0 {
			adjusted *= 1 + intensity
		}

		total += adjusted
		magnitude += math.Abs(adjusted)
		label := original
		if adjusted != score {
			label += "*"
		}
		contributions = append(contributions, Contribution{Token: label, Score: adjusted})
		prevNegation = false
		intensity = 0
	}

	divisor := float64(len(contributions))
	if divisor == 0 {
		divisor = 1
	}
	compound := clamp(total/divisor/scaleMax, -1, 1)

	return Result{
		Compound:      round3(compound),
		Magnitude:     round3(magnitude),
		Tone:          ToneFromScore(compound),
		Contributions: contributions,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
