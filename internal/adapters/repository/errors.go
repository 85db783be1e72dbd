package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("key not found")
	ErrClosed        = errors.New("store closed")
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrBackend       = errors.New("invalid store backend configuration")
)
