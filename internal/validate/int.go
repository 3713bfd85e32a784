package validate

import "strconv"

// IntRule coerces a raw string (typically a query parameter) to an int.
type IntRule struct {
	field   string
	raw     string
	target  *int
	message string
	min     *int
	max     *int
}

// Int parses raw into target. An empty raw value is treated as absent and
// leaves target at its default. message is reported for any failure.
func Int(field, raw string, target *int, message string) *IntRule {
	return &IntRule{field: field, raw: raw, target: target, message: message}
}

// Min sets the smallest accepted value.
func (r *IntRule) Min(n int) *IntRule {
	r.min = &n
	return r
}

// Max sets the largest accepted value.
func (r *IntRule) Max(n int) *IntRule {
	r.max = &n
	return r
}

func (r *IntRule) check() *FieldError {
	if r.raw == "" {
		return nil
	}
	n, err := strconv.Atoi(r.raw)
	if err != nil || (r.min != nil && n < *r.min) || (r.max != nil && n > *r.max) {
		return &FieldError{Field: r.field, Message: r.message}
	}
	*r.target = n
	return nil
}
