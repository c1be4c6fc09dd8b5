package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000

	// TimestampLayout is the ISO-8601 form used at the primitives boundary.
	// Millisecond precision in UTC keeps stored values lexicographically sortable.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// now is swapped in tests that need a deterministic clock.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewID generates a random UUID string for new aggregates.
func NewID() string {
	return uuid.NewString()
}

// parseID validates that value is a UUID and returns its canonical form.
func parseID(label, value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", NewInvalidArgumentError("Invalid %s id: %s", label, value)
	}
	return id.String(), nil
}

func parseOptionalID(label string, value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := parseID(label, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseName trims value and checks it is non-empty and at most 100 characters.
func parseName(label, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewInvalidArgumentError("%s cannot be empty", label)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", NewInvalidArgumentError("%s is too long (max %d characters)", label, maxNameLength)
	}
	return trimmed, nil
}

// parseDescription treats nil and blank input as "no description".
func parseDescription(label string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return nil, NewInvalidArgumentError("%s is too long (max %d characters)", label, maxDescriptionLength)
	}
	return &trimmed, nil
}

// ValidateUserName applies the shared name rules to a user's display name.
func ValidateUserName(name string) (string, error) {
	return parseName("User name", name)
}

// parseEnum checks value against a closed set.
func parseEnum[T ~string](label, plural, value string, valid []T) (T, error) {
	if slices.Contains(valid, T(value)) {
		return T(value), nil
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	var zero T
	return zero, NewInvalidArgumentError("Invalid %s: %s. Valid %s: %s", label, value, plural, strings.Join(names, ", "))
}

// --- Timestamps ---

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, NewInvalidArgumentError("Invalid date: %s", value)
	}
	return t.UTC(), nil
}

func formatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

func parseOptionalTimestamp(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
