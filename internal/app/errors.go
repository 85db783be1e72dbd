package service

import "errors"

// Sentinel errors returned by Service operations.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrNoHistory     = errors.New("no scans recorded yet")
	ErrFutureDate    = errors.New("date is in the future")
	ErrEmptyQuestion = errors.New("question is empty")
)
