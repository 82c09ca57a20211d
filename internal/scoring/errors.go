package scoring

import "fmt"

// ValidationError indicates a submission that must be rejected before any
// scoring occurs. It is never retried and never produces a partial result.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
