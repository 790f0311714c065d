package middleware

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const replayTTL = 24 * time.Hour

var (
	_ ReplayCacher = (*ReplayMap)(nil)
	_ ReplayCacher = ReplayRedis{}
)

// A ReplayCacher can store responses paired to idempotency keys.
//
// Reserve pairs rp to key only if key holds nothing yet, reporting whether it did.
// When it does not, it returns what key already holds.
// Checking and pairing happen atomically, so of concurrent requests sharing a key only one is let through.
type ReplayCacher interface {
	Get(ctx context.Context, key string) (Replay, bool)
	Reserve(ctx context.Context, key string, rp Replay) (Replay, bool, error)
	Set(ctx context.Context, key string, rp Replay)
}

// A ReplayMap stores idempotency key, Replay value pairs in a map.
//
// Server restarts reset this map.
// ReplayMap ought not be used for production environments.
type ReplayMap struct {
	mu  sync.Mutex
	val map[string]replayMapVal
}

type replayMapVal struct {
	Replay

	at time.Time
}

// NewReplayMap constructs an empty *ReplayMap
// for use in an Idempotent middleware as a cache.
func NewReplayMap() *ReplayMap { return &ReplayMap{val: make(map[string]replayMapVal)} }

// Get retrieves the Replay matching the idempotency key
// much like a regular map.
func (m *ReplayMap) Get(ctx context.Context, key string) (Replay, bool) {
	if key == "" || ctx.Err() != nil {
		return Replay{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.val[key]
	if ok && time.Since(v.at) > replayTTL {
		return Replay{}, false
	}

	return v.Replay, ok
}

// Reserve pairs rp to key unless an unexpired Replay is paired to it already,
// in which case that Replay is returned.
func (m *ReplayMap) Reserve(ctx context.Context, key string, rp Replay) (Replay, bool, error) {
	if err := ctx.Err(); err != nil {
		return Replay{}, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.val[key]; ok && time.Since(v.at) <= replayTTL {
		return v.Replay, false, nil
	}

	m.set(key, rp)
	return Replay{}, true, nil
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than 24 hours are evicted.
func (m *ReplayMap) Set(ctx context.Context, key string, rp Replay) {
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, rp)
}

func (m *ReplayMap) set(key string, rp Replay) {
	for k, v := range m.val {
		if time.Since(v.at) > replayTTL {
			delete(m.val, k)
		}
	}

	m.val[key] = replayMapVal{Replay: rp, at: time.Now()}
}

// A ReplayRedis connects to a Redis backend
// for the purposes of caching idempotent responses.
type ReplayRedis struct {
	client *redis.Client
}

// NewRedisCache constructs a ReplayRedis with the options passed in.
func NewRedisCache(opts *redis.Options) ReplayRedis {
	return ReplayRedis{client: redis.NewClient(opts)}
}

// Get retrieves the Replay paired to key from the connected Redis backend.
func (c ReplayRedis) Get(ctx context.Context, key string) (Replay, bool) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return Replay{}, false
	}

	var rp Replay
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&rp); err != nil {
		return Replay{}, false
	}

	return rp, true
}

// Reserve saves rp under key with SETNX, returning the Replay already saved when key is taken.
func (c ReplayRedis) Reserve(ctx context.Context, key string, rp Replay) (Replay, bool, error) {
	b, err := encodeReplay(rp)
	if err != nil {
		return Replay{}, false, err
	}

	ok, err := c.client.SetNX(ctx, key, b, replayTTL).Result()
	if err != nil {
		return Replay{}, false, err
	}

	if ok {
		return Replay{}, true, nil
	}

	prior, _ := c.Get(ctx, key)
	return prior, false, nil
}

// Set saves the Replay by pairing it to the key in the Redis backend for 24 hours.
func (c ReplayRedis) Set(ctx context.Context, key string, rp Replay) {
	b, err := encodeReplay(rp)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, b, replayTTL)
}

func encodeReplay(rp Replay) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(rp); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
