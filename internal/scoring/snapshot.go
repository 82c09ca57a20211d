package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/candidate-pulse/internal/sentiment"
	"github.com/jonathan/candidate-pulse/internal/types"
)

// Snapshot validity gates. The demo survey asks for a 90-120 character
// summary and two 15-word answers, and only a "strongly-agree" attention
// check passes.
const (
	snapshotSummaryMinChars = 90
	snapshotSummaryMaxChars = 120
	snapshotAttentionPass   = "strongly-agree"
	snapshotAspectCount     = 7 // selectable aspects in the demo survey
)

// SnapshotInput is the demo-mode submission shape: a summary plus the two
// standard free-text answers, straight from the embedded survey form.
type SnapshotInput struct {
	Summary       string   `json:"summary"`
	WentWell      string   `json:"went_well"`
	CouldBeBetter string   `json:"could_be_better"`
	Aspects       []string `json:"aspects"`
	Attention     string   `json:"attention"`
	Consent       bool     `json:"consent"`
	Stage         string   `json:"stage"`
	Seed          string   `json:"seed,omitempty"`
}

// Snapshot is the full demo-mode response snapshot, assembled directly from
// sentiment output without going through the scoring endpoint.
type Snapshot struct {
	Stage           string                      `json:"stage"`
	Summary         string                      `json:"summary"`
	WentWell        string                      `json:"went_well"`
	CouldBeBetter   string                      `json:"could_be_better"`
	Aspects         []string                    `json:"aspects"`
	Sentiments      map[string]sentiment.Result `json:"sentiments"`
	Seed            string                      `json:"seed,omitempty"`
	NSS             float64                     `json:"nss"`
	Tone            string                      `json:"tone"`
	Index           int                         `json:"index"`
	Composite       int                         `json:"composite"`
	Eligible        bool                        `json:"eligible"`
	AttentionPassed bool                        `json:"attention_passed"`
	SummaryLength   int                         `json:"summary_length"`
	Words           SnapshotWords               `json:"words"`
	Consent         bool                        `json:"consent"`
	SubmittedAt     time.Time                   `json:"submitted_at"`
}

// SnapshotWords reports the word counts of the two free-text answers.
type SnapshotWords struct {
	Well   int `json:"well"`
	Better int `json:"better"`
}

// BuildSnapshot assembles a response snapshot using the SnapshotProfile
// weight set: a text-sentiment NSS blend, a 0-100 index, and a composite
// discounted by a hygiene factor when any form gate fails.
func BuildSnapshot(in SnapshotInput) Snapshot {
	profile := SnapshotProfile

	stage := in.Stage
	if stage == "" {
		stage = "Final round"
	}

	sentiments := map[string]sentiment.Result{
		"summary":       sentiment.ComputeSentiment(in.Summary),
		"wentWell":      sentiment.ComputeSentiment(in.WentWell),
		"couldBeBetter": sentiment.ComputeSentiment(in.CouldBeBetter),
	}

	wcWell := types.WordCount(in.WentWell)
	wcBetter := types.WordCount(in.CouldBeBetter)
	summaryLength := len([]rune(strings.TrimSpace(in.Summary)))

	attentionPassed := in.Attention == snapshotAttentionPass
	summaryValid := summaryLength >= snapshotSummaryMinChars && summaryLength <= snapshotSummaryMaxChars
	wellValid := wcWell >= minFieldWords
	betterValid := wcBetter >= minFieldWords

	nssRaw := profile.SnapshotSummaryWeight*sentiments["summary"].Compound +
		profile.SnapshotWellWeight*sentiments["wentWell"].Compound +
		profile.SnapshotBetterWeight*sentiments["couldBeBetter"].Compound
	nss := round3(clamp(nssRaw, -1, 1))
	index := int(math.Round(clamp((nss+1)/2, 0, 1) * 100))

	hygiene := profile.SnapshotHygieneFloor
	if attentionPassed && in.Consent && summaryValid && wellValid && betterValid {
		hygiene = 1
	}
	aspectLift := float64(len(in.Aspects)) / snapshotAspectCount
	composite := int(math.Round(clamp(
		profile.SnapshotIndexWeight*float64(index)+
			profile.SnapshotHygieneWeight*hygiene*100+
			profile.SnapshotAspectWeight*aspectLift*100,
		0, 100)))

	return Snapshot{
		Stage:           stage,
		Summary:         in.Summary,
		WentWell:        in.WentWell,
		CouldBeBetter:   in.CouldBeBetter,
		Aspects:         in.Aspects,
		Sentiments:      sentiments,
		Seed:            in.Seed,
		NSS:             nss,
		Tone:            summaryTone(nss),
		Index:           index,
		Composite:       composite,
		Eligible:        hygiene == 1,
		AttentionPassed: attentionPassed,
		SummaryLength:   summaryLength,
		Words:           SnapshotWords{Well: wcWell, Better: wcBetter},
		Consent:         in.Consent,
		SubmittedAt:     time.Now().UTC(),
	}
}

// DescribeBand labels a 0-100 composite for the demo results view.
func DescribeBand(score int) string {
	switch {
	case score >= 80:
		return "Green: meeting expectations"
	case score >= 60:
		return "Amber: coach for momentum"
	default:
		return "Red: prioritize follow-up"
	}
}
