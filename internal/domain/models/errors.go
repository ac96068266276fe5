package models

import "fmt"

// ValidationError reports a caller-supplied value that violates an entity
// invariant. It is raised at the boundary so impossible values (a 100%
// wastage rate, a non-positive yield) never reach the costing math.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
