package types

import "time"

// ATSEventSchemaVersion is the wire schema version stamped on every event.
const ATSEventSchemaVersion = "v1"

// DefaultATSEventName is used when the upstream payload omits the event name.
const DefaultATSEventName = "candidate_feedback_invite"

// ATSEvent is a normalized downstream ATS event. Events are idempotent on
// IdempotencyKey; unknown stage and role values pass through as "unknown".
type ATSEvent struct {
	SchemaVersion  string    `json:"schema_version"`
	Event          string    `json:"event"`
	Stage          string    `json:"stage"`
	RoleFamily     string    `json:"role_family"`
	CandidateToken string    `json:"candidate_token"`
	SentAt         string    `json:"sent_at"`
	Source         string    `json:"source,omitempty"`
	EventID        string    `json:"event_id"`
	IdempotencyKey string    `json:"idempotency_key"`
	ReceivedAt     time.Time `json:"received_at"`
}

// DayKey returns the date-based partition key used for DLQ grouping.
func (e ATSEvent) DayKey() string {
	return e.ReceivedAt.UTC().Format("2006-01-02")
}
