package coach

import "errors"

// Sentinel kinds for coaching errors.
var (
	ErrNotConfigured = errors.New("coach endpoint not configured")
	ErrStatus        = errors.New("coach endpoint returned an error status")
	ErrDecode        = errors.New("coach response is not valid JSON")
)
