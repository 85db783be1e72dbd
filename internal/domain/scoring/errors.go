package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package.
var (
	ErrIncompleteAnswers = errors.New("incomplete answers")
	ErrUnknownStrategy   = errors.New("unknown scoring strategy")
)

// ValidationError lists the answers that prevented scoring.
type ValidationError struct {
	Missing    []string
	OutOfRange []string
	Unknown    []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ","))
	}
	if len(e.OutOfRange) > 0 {
		parts = append(parts, "out of range "+strings.Join(e.OutOfRange, ","))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ","))
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteAnswers, strings.Join(parts, "; "))
}

// Unwrap lets callers match ErrIncompleteAnswers with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrIncompleteAnswers }

// Fields returns every offending question ID.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Missing)+len(e.OutOfRange)+len(e.Unknown))
	out = append(out, e.Missing...)
	out = append(out, e.OutOfRange...)
	return append(out, e.Unknown...)
}
