package absa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_PositiveCues(t *testing.T) {
	got := Extract("the panel communicated smoothly and scheduling was handled fast", "", "")

	assert.ElementsMatch(t, []string{Communication, Scheduling}, got.Positive)
	assert.Empty(t, got.Negative)
}

func TestExtract_NegativeCues(t *testing.T) {
	got := Extract("", "feedback was late and the recruiter felt rude", "")

	assert.Contains(t, got.Negative, FeedbackTimeliness)
	assert.Contains(t, got.Negative, Respect)
	assert.Empty(t, got.Positive)
}

func TestExtract_NegativeCueTakesPrecedence(t *testing.T) {
	// Both cue patterns match the full text; negative wins for every aspect.
	got := Extract("scheduling was great", "but feedback arrived late", "")

	assert.Contains(t, got.Negative, Scheduling)
	assert.Contains(t, got.Negative, FeedbackTimeliness)
	assert.Empty(t, got.Positive)
}

func TestExtract_FieldFallbackWellImpliesPositive(t *testing.T) {
	got := Extract("they walked me through the compensation approach", "", "")

	assert.Equal(t, []string{Compensation}, got.Positive)
	assert.Empty(t, got.Negative)
}

func TestExtract_FieldFallbackBetterImpliesNegative(t *testing.T) {
	got := Extract("", "please share the compensation range earlier in the process", "")

	assert.Equal(t, []string{Compensation}, got.Negative)
	assert.Empty(t, got.Positive)
}

func TestExtract_FieldFallbackRantImpliesNegative(t *testing.T) {
	got := Extract("", "", "three reschedules of the same calendar slot")

	assert.Contains(t, got.Negative, Scheduling)
	assert.Empty(t, got.Positive)
}

func TestExtract_EmptyText(t *testing.T) {
	got := Extract("", "", "")

	assert.Empty(t, got.Positive)
	assert.Empty(t, got.Negative)
}

func TestExtract_AspectAppearsOnce(t *testing.T) {
	got := Extract("communication was great", "communication could improve", "")

	seen := map[string]int{}
	for _, a := range got.Positive {
		seen[a]++
	}
	for _, a := range got.Negative {
		seen[a]++
	}
	assert.Equal(t, 1, seen[Communication])
}

func TestExtract_TableOrderIsStable(t *testing.T) {
	got := Extract(
		"communication was outstanding and scheduling felt smooth with clear compensation details",
		"", "")

	assert.Equal(t, []string{Communication, Scheduling, Clarity, Compensation}, got.Positive)
}

func TestBalance(t *testing.T) {
	assert.Equal(t, 0.0, Aspects{}.Balance())
	assert.Equal(t, 1.0, Aspects{Positive: []string{Communication}}.Balance())
	assert.Equal(t, -1.0, Aspects{Negative: []string{Respect}}.Balance())
	assert.InDelta(t, 1.0/3.0, Aspects{
		Positive: []string{Communication, Clarity},
		Negative: []string{Scheduling},
	}.Balance(), 0.001)
}
