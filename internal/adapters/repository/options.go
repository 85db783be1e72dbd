package repository

import "github.com/okian/mindscan/pkg/logger"

// DefaultPrefix is prepended to every key unless overridden.
const DefaultPrefix = ""

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithPrefix namespaces every key, e.g. "device1:".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger used for corrupt-value warnings.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}
