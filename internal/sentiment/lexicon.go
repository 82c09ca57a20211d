package sentiment

// valence lexicon tuned for interview-experience vocabulary. Scores are on
// roughly a -3.4..3.4 scale; scaleMax below matches the largest magnitude.
var lexicon = map[string]float64{
	"amazing":       3.2,
	"attentive":     2.4,
	"awkward":       -1.8,
	"balanced":      1.6,
	"blocked":       -2.4,
	"brilliant":     2.8,
	"chaotic":       -2.6,
	"clear":         1.8,
	"confident":     1.7,
	"confused":      -2.1,
	"considerate":   1.8,
	"courteous":     1.4,
	"delighted":     2.6,
	"disengaged":    -2.2,
	"energizing":    2.2,
	"fair":          1.7,
	"fairness":      1.4,
	"fast":          1.5,
	"flexible":      1.6,
	"frictionless":  2.2,
	"frustrated":    -2.8,
	"generous":      1.4,
	"helpful":       2.1,
	"hostile":       -3.2,
	"impatient":     -2.2,
	"inclusive":     2.4,
	"late":          -1.6,
	"messy":         -2.1,
	"neutral":       0,
	"outstanding":   3.4,
	"professional":  1.8,
	"respectful":    2.1,
	"rushed":        -1.8,
	"slow":          -1.6,
	"smooth":        1.9,
	"stressful":     -2.4,
	"supportive":    2.5,
	"terrible":      -3.4,
	"thorough":      1.8,
	"thoughtful":    2.2,
	"transparent":   2.0,
	"unclear":       -2.1,
	"waiting":       -1.4,
	"warm":          1.6,
	"well-prepared": 2.3,
	"wonderful":     3.1,
	// classic valence shifter, matched as a bigram before single tokens
	"not bad": 1.8,
}

// negators flip and dampen the next lexicon hit.
var negators = map[string]bool{
	"not":     true,
	"hardly":  true,
	"never":   true,
	"no":      true,
	"without": true,
	"rarely":  true,
}

// boosters widen the intensity of the next lexicon hit.
var boosters = map[string]float64{
	"very":          0.6,
	"extremely":     0.8,
	"incredibly":    0.8,
	"slightly":      -0.2,
	"somewhat":      -0.15,
	"really":        0.4,
	"super":         0.5,
	"exceptionally": 0.9,
}

// dampeners narrow the intensity of the next lexicon hit. Note "slightly" and
// "somewhat" sit in the booster map above: the max-merge there means they
// cannot lower a pending boost, and alone they leave the intensity at zero.
var dampeners = map[string]float64{
	"barely":   -0.4,
	"somewhat": -0.15,
	"mildly":   -0.2,
}
