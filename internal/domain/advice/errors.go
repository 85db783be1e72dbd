package advice

import "errors"

var (
	// ErrInvalidTable is returned when a suggestion table fails validation.
	ErrInvalidTable = errors.New("invalid advice table")
)
