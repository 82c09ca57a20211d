package scoring

import (
	"strings"
	"testing"

	"github.com/jonathan/candidate-pulse/internal/quality"
	"github.com/jonathan/candidate-pulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodWell = "panel was engaging transparent respectful thoughtful inclusive " +
		"collaborative pacing strong role clarity genuine context depth"
	goodBetter = "faster compensation transparency and earlier interview timeline " +
		"updates would help candidates plan around busy weeks"
)

func goodSubmission() *types.Submission {
	return &types.Submission{
		CandidateToken: "tok_good",
		Stage:          types.StagePanel,
		RoleFamily:     "engineering",
		Overall:        5,
		Fairness:       5,
		Attention:      5,
		Aspects:        []string{"clarity", "communication"},
		Well:           goodWell,
		Better:         goodBetter,
		Consent:        true,
	}
}

func TestScore_GoodSubmissionEligible(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	result, err := composer.Score(goodSubmission())
	require.NoError(t, err)

	assert.True(t, result.IncentiveEligible)
	assert.Greater(t, result.QualityScore, 0.6)
	assert.Equal(t, 1.0, result.NSS, "5/5 ratings map to full positive NSS")
	assert.Empty(t, result.ABSA.Negative)
	assert.NotEmpty(t, result.ABSA.Positive)
}

func TestScore_CompositeFormula(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	result, err := composer.Score(goodSubmission())
	require.NoError(t, err)

	// nss 1.0, balance 1.0, richness 30 words + 2 aspects * 20 = 70.
	assert.Equal(t, 70.0, result.Richness)
	expected := 0.55*1.0 + 0.30*1.0 + 0.15*(70.0/200.0)
	assert.InDelta(t, expected, result.CompositeIndex, 0.001)
	assert.Equal(t, BandSuccess, result.Bands["overall"])
	assert.Equal(t, BandSuccess, result.Bands["trust"])
	assert.Equal(t, BandSuccess, result.Bands["clarity"])
}

func TestScore_RepeatedWordIneligible(t *testing.T) {
	composer := NewComposer(HTTPProfile)
	sub := goodSubmission()
	sub.Aspects = nil
	sub.Well = strings.TrimSpace(strings.Repeat("good ", 15))
	sub.Better = strings.TrimSpace(strings.Repeat("good ", 15))

	result, err := composer.Score(sub)
	require.NoError(t, err)

	assert.False(t, result.IncentiveEligible)
	assert.Contains(t, result.QualityFlags, quality.FlagRepetition)
	assert.Contains(t, result.QualityFlags, quality.FlagLowDiversity)
	assert.Equal(t, BandRisk, result.Bands["rigor"])
}

func TestScore_LowRatingsDriveNegativeNSS(t *testing.T) {
	composer := NewComposer(HTTPProfile)
	sub := goodSubmission()
	sub.Overall = 1
	sub.Fairness = 1

	result, err := composer.Score(sub)
	require.NoError(t, err)

	assert.Equal(t, -1.0, result.NSS)
	assert.Contains(t, result.Summary, "risk")
	assert.Equal(t, BandRisk, result.Bands["fairness"])
}

func TestScore_ConsentRequired(t *testing.T) {
	composer := NewComposer(HTTPProfile)
	sub := goodSubmission()
	sub.Consent = false

	result, err := composer.Score(sub)

	assert.Nil(t, result, "no partial result on validation failure")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "consent", verr.Field)
}

func TestScore_WordCountMinimums(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	short := goodSubmission()
	short.Well = "too short"
	_, err := composer.Score(short)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "well", verr.Field)

	short = goodSubmission()
	short.Better = "still too short"
	_, err = composer.Score(short)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "better", verr.Field)
}

func TestScore_RatingRange(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	for _, bad := range []int{0, 6, -1} {
		sub := goodSubmission()
		sub.Overall = bad
		_, err := composer.Score(sub)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "overall", verr.Field)
	}
}

func TestScore_Idempotent(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	first, err := composer.Score(goodSubmission())
	require.NoError(t, err)
	second, err := composer.Score(goodSubmission())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_DuplicateAspectsCollapse(t *testing.T) {
	composer := NewComposer(HTTPProfile)
	sub := goodSubmission()
	sub.Aspects = []string{"clarity", "Clarity", " clarity ", "communication"}

	result, err := composer.Score(sub)
	require.NoError(t, err)

	// Same richness as two distinct aspects.
	assert.Equal(t, 70.0, result.Richness)
}

func TestScore_AllBandDimensionsPresent(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	result, err := composer.Score(goodSubmission())
	require.NoError(t, err)

	for _, dim := range []string{"overall", "fairness", "sentiment", "rigor", "speed", "clarity", "trust"} {
		assert.Contains(t, result.Bands, dim)
	}
}

func TestScore_CompositeBounded(t *testing.T) {
	composer := NewComposer(HTTPProfile)

	subs := []*types.Submission{
		goodSubmission(),
		func() *types.Submission {
			s := goodSubmission()
			s.Overall, s.Fairness, s.Attention = 1, 1, 1
			s.Well = strings.TrimSpace(strings.Repeat("zxcv ", 15))
			s.Better = strings.TrimSpace(strings.Repeat("qwrt ", 15))
			s.Aspects = nil
			return s
		}(),
	}
	for _, sub := range subs {
		result, err := composer.Score(sub)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.CompositeIndex, 0.0)
		assert.LessOrEqual(t, result.CompositeIndex, 1.0)
		assert.GreaterOrEqual(t, result.QualityScore, 0.0)
		assert.LessOrEqual(t, result.QualityScore, 1.0)
	}
}

func TestNormalizeRating(t *testing.T) {
	assert.Equal(t, -1.0, normalizeRating(1))
	assert.Equal(t, 0.0, normalizeRating(3))
	assert.Equal(t, 1.0, normalizeRating(5))
}

func TestTextBlockFor_PaddingDoesNotInflate(t *testing.T) {
	base := textBlockFor("clear concise answers with helpful context from every panelist")
	padded := textBlockFor("clear concise answers with helpful context from every panelist " +
		strings.TrimSpace(strings.Repeat("padding ", 40)))

	// Only the first 15 words count.
	assert.InDelta(t, base.div, 1.0, 0.01)
	assert.LessOrEqual(t, padded.rep, 1.0)
	assert.Equal(t, textBlockFor(""), textBlock{})
}
