// Package cache provides pluggable caching for fetched hypermedia documents
// and derived srcset payloads.
//
// The picset pipeline caches at two levels:
//
//   - Entity documents: the raw JSON/HTML bodies of image resources, so
//     repeated derivations for the same resource skip the network.
//   - Derived payloads: the srcset strings and picture sources computed for
//     an (entity, image class) pair. Cache-busted output is never cached,
//     since its whole point is per-request freshness.
//
// Backends implement the [Cache] interface:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: for multi-instance serve deployments
//   - [MongoCache]: document-store backend with TTL reaping
//   - [NullCache]: disables caching
//
// Cache keys are produced by a [Keyer]; use [ScopedKeyer] to isolate
// namespaces (e.g. per origin host) sharing one backend.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// expired entries count as misses. A zero ttl on Set means the entry never
// expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
