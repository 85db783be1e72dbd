package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeRedis answers commands from a map using real go-redis command types.
type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	err    error
	closed bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx, "set", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewIntCmd(ctx, "del")
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func backends(t *testing.T) map[string]func() KV {
	return map[string]func() KV{
		DriverMemory: func() KV { return NewMemoryKV() },
		DriverSQLite: func() KV {
			kv, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "kv.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return kv
		},
		DriverRedis: func() KV { return NewRedisKV(newFakeRedis()) },
	}
}

func TestKVContract(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		Convey("Given the "+name+" backend", t, func() {
			kv := Instrument(open(), name)
			defer kv.Close()

			Convey("When a key is missing", func() {
				_, err := kv.Get(ctx, "absent")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("When a value is set, overwritten and deleted", func() {
				So(kv.Set(ctx, "k", []byte("one")), ShouldBeNil)
				v, err := kv.Get(ctx, "k")
				So(err, ShouldBeNil)
				So(string(v), ShouldEqual, "one")

				So(kv.Set(ctx, "k", []byte("two")), ShouldBeNil)
				v, _ = kv.Get(ctx, "k")
				So(string(v), ShouldEqual, "two")

				So(kv.Delete(ctx, "k"), ShouldBeNil)
				_, err = kv.Get(ctx, "k")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("When deleting a missing key", func() {
				So(kv.Delete(ctx, "never"), ShouldBeNil)
			})
		})
	}
}

func TestSQLitePersistence(t *testing.T) {
	Convey("Given a SQLite file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "mindscan.db")

		kv, err := OpenSQLite(ctx, path)
		So(err, ShouldBeNil)
		So(kv.Path(), ShouldEqual, path)
		So(kv.Set(ctx, "mindscan_theme", []byte("light")), ShouldBeNil)
		So(kv.Close(), ShouldBeNil)

		Convey("When it is reopened", func() {
			again, err := OpenSQLite(ctx, path)
			So(err, ShouldBeNil)
			defer again.Close()

			Convey("Then values survive", func() {
				v, err := again.Get(ctx, "mindscan_theme")
				So(err, ShouldBeNil)
				So(string(v), ShouldEqual, "light")
			})
		})
	})
}

func TestMemoryKV(t *testing.T) {
	Convey("Given a memory store", t, func() {
		ctx := context.Background()
		kv := NewMemoryKV()

		Convey("When the caller mutates buffers", func() {
			buf := []byte("abc")
			So(kv.Set(ctx, "k", buf), ShouldBeNil)
			buf[0] = 'x'
			got, _ := kv.Get(ctx, "k")
			got[1] = 'y'

			Convey("Then the stored value is unaffected", func() {
				v, _ := kv.Get(ctx, "k")
				So(string(v), ShouldEqual, "abc")
			})
		})

		Convey("When it is closed", func() {
			So(kv.Close(), ShouldBeNil)
			_, err := kv.Get(ctx, "k")
			So(errors.Is(err, ErrClosed), ShouldBeTrue)
			So(errors.Is(kv.Set(ctx, "k", nil), ErrClosed), ShouldBeTrue)
			So(errors.Is(kv.Delete(ctx, "k"), ErrClosed), ShouldBeTrue)
		})
	})
}

func TestRedisKVErrors(t *testing.T) {
	Convey("Given a failing redis client", t, func() {
		ctx := context.Background()
		fake := newFakeRedis()
		fake.err = errors.New("connection refused")
		kv := NewRedisKV(fake)

		Convey("Then errors are wrapped and not reported as missing", func() {
			_, err := kv.Get(ctx, "k")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNotFound), ShouldBeFalse)
			So(err.Error(), ShouldContainSubstring, "connection refused")
			So(kv.Set(ctx, "k", []byte("v")), ShouldNotBeNil)
			So(kv.Delete(ctx, "k"), ShouldNotBeNil)
		})

		Convey("Then Close reaches the client", func() {
			So(kv.Close(), ShouldBeNil)
			So(fake.closed, ShouldBeTrue)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given backend configurations", t, func() {
		ctx := context.Background()

		Convey("When the driver is empty", func() {
			kv, err := Open(ctx, Backend{})
			So(err, ShouldBeNil)
			So(kv.Set(ctx, "k", []byte("v")), ShouldBeNil)
			So(kv.Close(), ShouldBeNil)
		})

		Convey("When the driver is sqlite", func() {
			kv, err := Open(ctx, Backend{Driver: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "a.db")})
			So(err, ShouldBeNil)
			So(kv.Close(), ShouldBeNil)
		})

		Convey("When the driver is unknown", func() {
			_, err := Open(ctx, Backend{Driver: "etcd"})
			So(errors.Is(err, ErrUnknownDriver), ShouldBeTrue)
		})

		Convey("When redis has no address", func() {
			_, err := Open(ctx, Backend{Driver: DriverRedis})
			So(errors.Is(err, ErrBackend), ShouldBeTrue)
		})
	})
}
