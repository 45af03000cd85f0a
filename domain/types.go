package domain

import internaldomain "github.com/goliatone/go-faqs/internal/domain"

// Status represents the publication state of FAQ records.
type Status = internaldomain.Status

// Choice pairs a status code with its display label.
type Choice = internaldomain.Choice

const (
	// StatusDrafted marks a record still under preparation.
	StatusDrafted = internaldomain.StatusDrafted
	// StatusPublished marks a record visible to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusRemoved marks a record withdrawn from the public site.
	StatusRemoved = internaldomain.StatusRemoved
)

// ErrInvalidStatus is returned for values outside the enumeration.
var ErrInvalidStatus = internaldomain.ErrInvalidStatus

// Choices returns the ordered status enumeration.
func Choices() []Choice { return internaldomain.Choices() }

// ParseStatus accepts either the numeric code or the label.
func ParseStatus(input string) (Status, error) { return internaldomain.ParseStatus(input) }
