// Package cache holds the short-lived JSON caches used in front of the
// dashboard rollups and the Redis client they share with the token blacklist.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Store caches JSON-encodable values under string keys
type Store interface {
	// Get decodes the value stored under key into dest or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NoopStore never stores anything. Used when caching is disabled.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string, any) error { return ErrCacheMiss }

func (NoopStore) Set(context.Context, string, any, time.Duration) error { return nil }

func (NoopStore) Delete(context.Context, ...string) error { return nil }

var _ Store = NoopStore{}
