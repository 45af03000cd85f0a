package faqs

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired = errors.New("faqs: title is required")
	ErrSlugInvalid   = errors.New("faqs: slug is invalid")
	ErrTopicRequired = errors.New("faqs: topic id is required")
	ErrSlugExists    = errors.New("faqs: slug already exists")
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
