package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithMaxSize caps the number of remembered submission IDs; the oldest is
// evicted first. maxSize <= 0 keeps every ID.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}

// WithOnEvict registers fn to be called with each evicted submission ID and
// the entry bound to it (empty if none). fn runs under the deduper lock and
// must not call back into the deduper.
func WithOnEvict(fn func(id, entryID string)) Option {
	return func(d *inMemoryDeduper) {
		d.onEvict = fn
	}
}
