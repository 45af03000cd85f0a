package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidStatus is returned when a value does not belong to the status enumeration.
var ErrInvalidStatus = errors.New("domain: invalid status")

// Status represents the publication state of FAQ records. Codes are stable and
// persisted as integers.
type Status int

const (
	// StatusDrafted marks a record still under preparation.
	StatusDrafted Status = 1
	// StatusPublished marks a record visible to readers.
	StatusPublished Status = 2
	// StatusRemoved marks a record withdrawn from the public site.
	StatusRemoved Status = 3
)

// Choice pairs a status code with its display label.
type Choice struct {
	Status Status
	Label  string
}

var choices = []Choice{
	{Status: StatusDrafted, Label: "drafted"},
	{Status: StatusPublished, Label: "published"},
	{Status: StatusRemoved, Label: "removed"},
}

// Choices returns the ordered status enumeration.
func Choices() []Choice {
	out := make([]Choice, len(choices))
	copy(out, choices)
	return out
}

// Label returns the display label, which is also the verb used in summaries.
// Unknown values render as an empty string.
func (s Status) Label() string {
	for _, choice := range choices {
		if choice.Status == s {
			return choice.Label
		}
	}
	return ""
}

// Valid reports whether the status is part of the enumeration.
func (s Status) Valid() bool {
	return s.Label() != ""
}

func (s Status) String() string {
	if label := s.Label(); label != "" {
		return label
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// ParseStatus accepts either the numeric code or the label.
func ParseStatus(input string) (Status, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidStatus)
	}
	if code, err := strconv.Atoi(trimmed); err == nil {
		status := Status(code)
		if !status.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, code)
		}
		return status, nil
	}
	for _, choice := range choices {
		if choice.Label == trimmed {
			return choice.Status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, input)
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return int64(s), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var code int64
	switch v := src.(type) {
	case int64:
		code = v
	case int:
		code = int64(v)
	case []byte:
		parsed, err := ParseStatus(string(v))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case string:
		parsed, err := ParseStatus(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, src)
	}
	status := Status(code)
	if !status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	*s = status
	return nil
}
