package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache combines a fast local tier with a shared remote tier.
// Reads try local first and backfill it on a remote hit; writes go
// through to both.
type LayeredCache struct {
	local    Service
	remote   Service
	localTTL time.Duration
}

// NewLayeredCache creates a two-tier cache. localTTL caps how long the
// local tier may serve a value before re-reading the remote tier.
func NewLayeredCache(local, remote Service, localTTL time.Duration) *LayeredCache {
	return &LayeredCache{local: local, remote: remote, localTTL: localTTL}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.remote.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	ttl := expiration
	if lc.localTTL > 0 && (ttl == 0 || ttl > lc.localTTL) {
		ttl = lc.localTTL
	}
	return lc.local.Set(ctx, key, value, ttl)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.local.Get(ctx, key, dest); err == nil {
		return nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	if err := lc.remote.Get(ctx, key, dest); err != nil {
		return err
	}
	_ = lc.local.Set(ctx, key, dest, lc.localTTL)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	if err := lc.local.Delete(ctx, keys...); err != nil {
		return err
	}
	return lc.remote.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	if ok, err := lc.local.Exists(ctx, keys...); err == nil && ok {
		return true, nil
	}
	return lc.remote.Exists(ctx, keys...)
}

func (lc *LayeredCache) Close() error {
	lerr := lc.local.Close()
	rerr := lc.remote.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
