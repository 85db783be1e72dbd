package demoscans

import "errors"

var (
	// ErrUnexpectedStatus is returned for any non-2xx API reply.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrVerification is returned when the service's derived view disagrees
	// with a local recomputation.
	ErrVerification = errors.New("verification failed")
)
