package teams

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinNameLength is the minimum trimmed length of a team name.
const MinNameLength = 3

// Field-level validation messages, shown inline next to the offending input.
const (
	MsgNameRequired    = "Team name is required"
	MsgNameTooShort    = "Team name must be at least 3 characters"
	MsgRegionRequired  = "Region is required"
	MsgCountryRequired = "Country is required"
)

// ErrInvalidForm is matched by every *ValidationError.
var ErrInvalidForm = errors.New("invalid team form")

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid team form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidForm
}

// Validate checks required fields and the name length.
func (f FormData) Validate() error {
	fields := make(map[string]string)

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		fields["name"] = MsgNameRequired
	case utf8.RuneCountInString(name) < MinNameLength:
		fields["name"] = MsgNameTooShort
	}
	if strings.TrimSpace(f.Region) == "" {
		fields["region"] = MsgRegionRequired
	}
	if strings.TrimSpace(f.Country) == "" {
		fields["country"] = MsgCountryRequired
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// SameName compares names the way uniqueness is enforced: trimmed and case-insensitive.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// AsValidationError unwraps a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
