package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeRedis is an in-memory stand-in for the Redis client used by repo and
// limiter tests.
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	counts  map[string]int64
	expires map[string]time.Duration
	getErr  error
	setErr  error
	incrErr error
}

var _ RedisClient = (*fakeRedis)(nil)

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data:    map[string]string{},
		counts:  map[string]int64{},
		expires: map[string]time.Duration{},
	}
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		f.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = expiration
	return nil
}

func (f *fakeRedis) Close() error { return nil }
