// Package cache memoizes rendered HTTP request descriptions behind a Redis
// client (SPEC_FULL.md §4.11), keyed on the source SQL plus the rendering
// options that affect output. It is a pure optimization around repeated
// translation of the same query text — a nil *Cache is always a valid,
// uncached client configuration.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pgrest-dev/pgrest/engine/render"
)

// Cache wraps a *redis.Client storing JSON-encoded render.HTTPRequest values
// (SPEC_FULL.md §6 on why JSON, not protobuf, is the wire format here).
type Cache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// New wraps rdb. logger defaults to slog.Default() when nil, following the
// teacher's WrapRedis constructor style: an explicit connection, no hidden
// environment-variable reads.
func New(rdb *redis.Client, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{rdb: rdb, logger: logger}
}

// Get looks up the cached rendering of sql/opts. The bool return is false on
// both a cache miss and an error; callers fall back to re-rendering in
// either case.
func (c *Cache) Get(ctx context.Context, sql string, opts render.Options) (*render.HTTPRequest, bool, error) {
	key := cacheKey(sql, opts)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Info("cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache get failed", "key", key, "error", err)
		return nil, false, err
	}

	var req render.HTTPRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.logger.Error("cache decode failed", "key", key, "error", err)
		return nil, false, err
	}
	c.logger.Info("cache hit", "key", key)
	return &req, true, nil
}

// Put stores req under the key for sql/opts. Entries never expire on their
// own; eviction is left to Redis's own maxmemory policy.
func (c *Cache) Put(ctx context.Context, sql string, opts render.Options, req *render.HTTPRequest) error {
	key := cacheKey(sql, opts)
	raw, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		c.logger.Error("cache put failed", "key", key, "error", err)
		return err
	}
	return nil
}

func cacheKey(sql string, opts render.Options) string {
	h := sha256.New()
	h.Write([]byte(sql))
	h.Write([]byte{0})
	h.Write([]byte(canonicalOptions(opts)))
	return "pgrest:" + hex.EncodeToString(h.Sum(nil))
}

func canonicalOptions(opts render.Options) string {
	return fmt.Sprintf("urlSafe=%t", opts.URLSafe)
}
