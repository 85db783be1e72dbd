package repository

import (
	"context"
	"errors"
	"time"

	"github.com/okian/mindscan/pkg/metrics"
)

type instrumented struct {
	next   KV
	driver string
}

// Instrument records operation counts, latency and errors for kv. A missing
// key is not counted as an error.
func Instrument(kv KV, driver string) KV {
	return &instrumented{next: kv, driver: driver}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	failed := err != nil && !errors.Is(err, ErrNotFound)
	metrics.RecordStoreOperation(i.driver, op, float64(time.Since(start).Microseconds())/1000, failed)
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	i.observe("delete", start, err)
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
