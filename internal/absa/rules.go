package absa

import "regexp"

// Aspect categories.
const (
	Communication      = "communication"
	Scheduling         = "scheduling"
	Clarity            = "clarity"
	Respect            = "respect"
	FeedbackTimeliness = "feedback_timeliness"
	Conduct            = "conduct"
	Logistics          = "logistics"
	Difficulty         = "difficulty"
	DEI                = "dei"
	Compensation       = "compensation"
)

// rule maps an aspect category to its trigger pattern. Rules are evaluated
// in table order, so the output lists have a stable category ordering.
type rule struct {
	category string
	match    *regexp.Regexp
}

var rules = []rule{
	{Communication, regexp.MustCompile(`communicat|responsive|reached out|follow[ -]?up|kept me (posted|informed)|email`)},
	{Scheduling, regexp.MustCompile(`schedul|reschedul|calendar|time ?slot|availability|booking`)},
	{Clarity, regexp.MustCompile(`clarity|\bclear\b|unclear|confus|ambigu|expectation`)},
	{Respect, regexp.MustCompile(`respect|courte|polite|\brude\b|dismissive|condescend`)},
	{FeedbackTimeliness, regexp.MustCompile(`feedback|turnaround|heard back|no response|waiting|timeline`)},
	{Conduct, regexp.MustCompile(`conduct|professional|behavio|hostile|inappropriate`)},
	{Logistics, regexp.MustCompile(`logistic|location|commute|parking|video link|onsite|\bzoom\b|tech(nical)? (issue|setup)`)},
	{Difficulty, regexp.MustCompile(`difficult|challeng|whiteboard|brain ?teaser|too (hard|easy)`)},
	{DEI, regexp.MustCompile(`divers|inclusi|\bbias(ed)?\b|equit|belong`)},
	{Compensation, regexp.MustCompile(`compensation|salary|\bpay\b|equity|benefits|offer details`)},
}

// negativeCue and positiveCue are shared polarity classifiers applied to the
// full text once an aspect trigger matches. Negative cues take precedence.
var negativeCue = regexp.MustCompile(`\b(never|lacked?|lacking|missing|missed|late|slower?|delay(ed)?|poor(ly)?|bad|frustrat\w*|confus\w*|unclear|rude(ly)?|dismissive|condescending|ghost(ed)?|unprofessional|hostile|worse|wish|should have|needs? to)\b`)

var positiveCue = regexp.MustCompile(`\b(great|good|excellent|smooth(ly)?|helpful|thoughtful|respectful(ly)?|kind|prompt(ly)?|fast|quick(ly)?|on time|appreciated|loved|enjoyed|fantastic|wonderful|outstanding|clear(ly)?)\b`)
