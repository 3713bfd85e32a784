// Package validate runs declarative per-field rule chains over request input.
//
// Each rule is an ordered chain of sanitizers (Trim, NormalizeEmail) and
// checks (NotEmpty, MinLen, OneOf, ...). Sanitized values are written back
// to the target. Rules.Validate runs every rule and returns all failures at
// once; within one field only the first failing check is reported.
package validate

import (
	"strings"
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the set of failures from one validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Rule validates one field.
type Rule interface {
	check() *FieldError
}

// Rules is a rule set for one request shape.
type Rules []Rule

// Validate runs every rule and returns Errors when any failed, nil otherwise.
func (rs Rules) Validate() error {
	var errs Errors
	for _, r := range rs {
		if fe := r.check(); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
