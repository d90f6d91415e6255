package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces breaker snapshots in the Redis keyspace.
const keyPrefix = "gss:breaker:"

// Redis is a Store backed by a Redis hash per resource key. Snapshots are
// written with HSET; concurrent writers race last-write-wins (see the
// package comment).
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithTTL expires snapshots after d of inactivity. A stale snapshot for a
// long-idle resource then simply reads as absent, which seeds a fresh
// closed breaker. Zero (the default) keeps snapshots forever.
func WithTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = d
	}
}

// NewRedis creates a Redis-backed store.
func NewRedis(addr, password string, db int, opts ...RedisOption) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	r := &Redis{rdb: rdb}
	for _, o := range opts {
		o(r)
	}
	return r
}

// GetState returns the snapshot for resourceKey. A missing hash reads as
// absent.
func (r *Redis) GetState(ctx context.Context, resourceKey string) (Snapshot, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, keyPrefix+resourceKey).Result()
	if err != nil {
		return Snapshot{}, false, err
	}
	if len(fields) == 0 {
		return Snapshot{}, false, nil
	}

	snap := Snapshot{State: fields["state"]}
	if v, ok := fields["failure_count"]; ok {
		snap.FailureCount, _ = strconv.Atoi(v)
	}
	if v, ok := fields["open_until"]; ok {
		if ms, perr := strconv.ParseInt(v, 10, 64); perr == nil && ms > 0 {
			snap.OpenUntil = time.UnixMilli(ms)
		}
	}
	return snap, true, nil
}

// SetState stores the snapshot for resourceKey.
func (r *Redis) SetState(ctx context.Context, resourceKey string, snap Snapshot) error {
	var openUntil int64
	if !snap.OpenUntil.IsZero() {
		openUntil = snap.OpenUntil.UnixMilli()
	}

	key := keyPrefix + resourceKey
	if err := r.rdb.HSet(ctx, key,
		"state", snap.State,
		"failure_count", snap.FailureCount,
		"open_until", openUntil,
	).Err(); err != nil {
		return err
	}

	if r.ttl > 0 {
		return r.rdb.Expire(ctx, key, r.ttl).Err()
	}
	return nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
