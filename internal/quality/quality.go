// Package quality provides anti-gaming heuristics over free-text survey
// answers: lexical diversity, repetition, gibberish detection, common-word
// coverage, and character entropy. The resulting flags and score feed the
// incentive-eligibility gate.
package quality

import (
	"math"
	"regexp"
	"strings"
)

// Quality flags, each triggered independently by its own threshold.
const (
	FlagLowDiversity       = "low_diversity"
	FlagRepetition         = "repetition"
	FlagGibberishTokens    = "gibberish_tokens"
	FlagNonLexicalExcess   = "non_lexical_excess"
	FlagLowCommonWordRatio = "low_common_word_ratio"
	FlagLowEntropy         = "low_entropy"
)

// Flag thresholds. Diversity, common-word, and entropy flags only apply at
// minFlagWords or more total words so short legitimate answers are not
// penalized.
const (
	minFlagWords         = 20
	lowDiversityBelow    = 0.45
	repetitionRunAtLeast = 3
	gibberishRatioOver   = 0.15
	nonLexicalRatioOver  = 0.20
	commonRatioBelow     = 0.20
	entropyBelow         = 3.2

	flagPenalty      = 0.12
	diversityPenalty = 0.4

	lowEffortScoreBelow     = 0.55
	lowEffortManyFlags      = 3
	lowEffortManyFlagsScore = 0.7
)

// wordPattern matches "word-like" tokens: 2+ characters starting with a
// letter, containing only letters, apostrophe, or hyphen.
var wordPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z'-]+$`)

// consonantRun matches 4+ consecutive non-vowel characters.
var consonantRun = regexp.MustCompile(`[^aeiou]{4,}`)

var anyVowel = regexp.MustCompile(`[aeiou]`)

// commonEnglish is a fixed set of high-frequency English words used for
// coverage measurement.
var commonEnglish = buildCommonEnglish()

func buildCommonEnglish() map[string]bool {
	words := []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
		"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
		"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
		"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
		"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
		"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
		"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
		"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Metrics holds the raw text measurements behind the quality flags.
type Metrics struct {
	TotalWords      int     `json:"total_words"`
	UniqueWords     int     `json:"unique_words"`
	TypeTokenRatio  float64 `json:"type_token_ratio"`
	LongestRun      int     `json:"longest_run"`
	NonLexicalCount int     `json:"non_lexical_count"`
	GibberishCount  int     `json:"gibberish_count"`
	ShortCount      int     `json:"short_count"`
	CommonWordRatio float64 `json:"common_word_ratio"`
	Entropy         float64 `json:"entropy"`
}

// Assessment is the quality verdict for one submission.
type Assessment struct {
	Flags   []string `json:"flags"`
	Score   float64  `json:"score"` // 1.0 good .. 0.0 bad
	Metrics Metrics  `json:"metrics"`
}

// HasFlag reports whether the assessment raised the given flag.
func (a Assessment) HasFlag(flag string) bool {
	for _, f := range a.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AssessQuality computes quality heuristics over the concatenation of the
// given text parts. Empty parts are skipped; empty input yields a zero-word
// assessment with no flags.
func AssessQuality(parts []string) Assessment {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	lowered := strings.ToLower(strings.TrimSpace(strings.Join(nonEmpty, " ")))
	tokens := strings.Fields(lowered)

	totalWords := len(tokens)
	unique := make(map[string]bool, totalWords)
	for _, tok := range tokens {
		unique[tok] = true
	}
	typeTokenRatio := 0.0
	if totalWords > 0 {
		typeTokenRatio = float64(len(unique)) / float64(totalWords)
	}

	longestRun := 1
	currentRun := 1
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
		} else {
			currentRun = 1
		}
	}

	var nonLexical, shortCount, gibberishCount, commonHits int
	for _, tok := range tokens {
		if len(tok) <= 2 {
			shortCount++
		}
		if !wordPattern.MatchString(tok) {
			nonLexical++
		}
		if consonantRun.MatchString(tok) || !anyVowel.MatchString(tok) {
			gibberishCount++
		}
		if commonEnglish[tok] {
			commonHits++
		}
	}

	commonRatio := 0.0
	if totalWords > 0 {
		commonRatio = float64(commonHits) / float64(totalWords)
	}

	entropy := letterEntropy(lowered)

	var flags []string
	if typeTokenRatio < lowDiversityBelow && totalWords >= minFlagWords {
		flags = append(flags, FlagLowDiversity)
	}
	if longestRun >= repetitionRunAtLeast {
		flags = append(flags, FlagRepetition)
	}
	if ratio(gibberishCount, totalWords) > gibberishRatioOver {
		flags = append(flags, FlagGibberishTokens)
	}
	if ratio(nonLexical, totalWords) > nonLexicalRatioOver {
		flags = append(flags, FlagNonLexicalExcess)
	}
	if commonRatio < commonRatioBelow && totalWords >= minFlagWords {
		flags = append(flags, FlagLowCommonWordRatio)
	}
	if entropy < entropyBelow && totalWords >= minFlagWords {
		flags = append(flags, FlagLowEntropy)
	}

	penalty := float64(len(flags))*flagPenalty + math.Max(0, 0.5-typeTokenRatio)*diversityPenalty
	score := math.Max(0, 1-penalty)

	return Assessment{
		Flags: flags,
		Score: round3(score),
		Metrics: Metrics{
			TotalWords:      totalWords,
			UniqueWords:     len(unique),
			TypeTokenRatio:  round3(typeTokenRatio),
			LongestRun:      longestRun,
			NonLexicalCount: nonLexical,
			GibberishCount:  gibberishCount,
			ShortCount:      shortCount,
			CommonWordRatio: round3(commonRatio),
			Entropy:         round3(entropy),
		},
	}
}

// IsLikelyLowEffort is the incentive gate: a low composite score, any severe
// flag, or an accumulation of flags marks the submission as low effort.
func IsLikelyLowEffort(a Assessment) bool {
	if a.Score < lowEffortScoreBelow {
		return true
	}
	if a.HasFlag(FlagGibberishTokens) || a.HasFlag(FlagNonLexicalExcess) {
		return true
	}
	if len(a.Flags) >= lowEffortManyFlags && a.Score < lowEffortManyFlagsScore {
		return true
	}
	return false
}

// letterEntropy computes Shannon entropy (base 2) over the frequency
// distribution of lowercase letters; non-letters are excluded.
func letterEntropy(lowered string) float64 {
	freq := make(map[rune]int)
	total := 0
	for _, r := range lowered {
		if r >= 'a' && r <= 'z' {
			freq[r]++
			total++
		}
	}
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func ratio(n, total int) float64 {
	if total < 1 {
		total = 1
	}
	return float64(n) / float64(total)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
