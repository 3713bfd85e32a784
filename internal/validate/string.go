package validate

import (
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

type stringStep struct {
	sanitize func(string) string
	ok       func(string) bool
	message  string
}

// StringRule is a chain of steps applied to one string field.
type StringRule struct {
	field   string
	present func() bool
	get     func() string
	set     func(string)
	steps   []stringStep
}

// String validates a field that is always checked. An absent field is
// checked as the empty string.
func String(field string, target *string) *StringRule {
	return &StringRule{
		field:   field,
		present: func() bool { return true },
		get:     func() string { return *target },
		set:     func(v string) { *target = v },
	}
}

// Optional validates a field only when it was supplied (target non-nil).
func Optional(field string, target **string) *StringRule {
	return &StringRule{
		field:   field,
		present: func() bool { return *target != nil },
		get:     func() string { return **target },
		set:     func(v string) { *target = &v },
	}
}

// Trim removes leading and trailing whitespace.
func (r *StringRule) Trim() *StringRule {
	return r.sanitize(strings.TrimSpace)
}

// NormalizeEmail canonicalizes an email address. See NormalizeEmail.
func (r *StringRule) NormalizeEmail() *StringRule {
	return r.sanitize(NormalizeEmail)
}

// NotEmpty fails on the empty string.
func (r *StringRule) NotEmpty(message string) *StringRule {
	return r.require(func(v string) bool { return v != "" }, message)
}

// MinLen fails when the value has fewer than n characters.
func (r *StringRule) MinLen(n int, message string) *StringRule {
	return r.require(func(v string) bool { return utf8.RuneCountInString(v) >= n }, message)
}

// MaxLen fails when the value has more than n characters.
func (r *StringRule) MaxLen(n int, message string) *StringRule {
	return r.require(func(v string) bool { return utf8.RuneCountInString(v) <= n }, message)
}

// Email fails unless the value is a bare address such as "a@b.com".
func (r *StringRule) Email(message string) *StringRule {
	return r.require(IsEmail, message)
}

// OneOf fails unless the value is in allowed.
func (r *StringRule) OneOf(allowed []string, message string) *StringRule {
	return r.require(func(v string) bool { return slices.Contains(allowed, v) }, message)
}

func (r *StringRule) sanitize(fn func(string) string) *StringRule {
	r.steps = append(r.steps, stringStep{sanitize: fn})
	return r
}

func (r *StringRule) require(fn func(string) bool, message string) *StringRule {
	r.steps = append(r.steps, stringStep{ok: fn, message: message})
	return r
}

func (r *StringRule) check() *FieldError {
	if !r.present() {
		return nil
	}
	v := r.get()
	for _, s := range r.steps {
		if s.sanitize != nil {
			v = s.sanitize(v)
			continue
		}
		if !s.ok(v) {
			return &FieldError{Field: r.field, Message: s.message}
		}
	}
	r.set(v)
	return nil
}

// IsEmail reports whether s is a plain email address with a dotted domain.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// NormalizeEmail lowercases an address and, for Gmail, drops dots and any
// "+tag" from the local part and folds googlemail.com into gmail.com.
func NormalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return s
	}
	local, domain := s[:at], s[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		if plus := strings.IndexByte(local, '+'); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}
	return local + "@" + domain
}
