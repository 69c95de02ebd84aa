package production

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors surfaced by engine operations. All operations either fully
// apply or fully reject; none leaves a partial write behind.
var (
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to a machine")
	ErrMachineBusy          = errors.New("machine is busy with another order")
	ErrOrderNotPending      = errors.New("order is not pending")
	ErrNoAssignedMachine    = errors.New("order has no assigned machine")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field errors for a rejected
// entity, so the dashboard can annotate every offending form field at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
