// Package repository persists device state in a key-value store. Backends
// speak raw bytes; Store layers typed JSON records with defaults on top.
package repository

import (
	"context"
	"fmt"
	"strings"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// KV is the byte-level storage contract every backend implements.
type KV interface {
	// Get returns ErrNotFound when key has no value.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend selects and configures a KV implementation.
type Backend struct {
	Driver        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the configured backend wrapped with metrics.
func Open(ctx context.Context, b Backend) (KV, error) {
	driver := strings.ToLower(strings.TrimSpace(b.Driver))
	var (
		kv  KV
		err error
	)
	switch driver {
	case "", DriverMemory:
		driver, kv = DriverMemory, NewMemoryKV()
	case DriverSQLite:
		kv, err = OpenSQLite(ctx, b.SQLitePath)
	case DriverRedis:
		kv, err = OpenRedis(ctx, b.RedisAddr, b.RedisPassword, b.RedisDB)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, b.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(kv, driver), nil
}
