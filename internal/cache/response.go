// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public API responses.
// Entries are keyed by request path and dropped when the content writes
// report the site routes they affected.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached API responses.
	responseKeyPrefix = "api:"

	// DefaultResponseTTL is how long a response stays cached.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages API response caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body for a request path.
func (rc *ResponseCache) Get(ctx context.Context, path string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, responseKeyPrefix+path).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "path", path, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "path", path)
	return val, true
}

// Set stores a response body for a request path with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, path string, body []byte) {
	if err := rc.client.Set(ctx, responseKeyPrefix+path, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "path", path, "error", err)
	}
}

// InvalidatePaths drops every cached response that renders one of the given
// site routes.
func (rc *ResponseCache) InvalidatePaths(ctx context.Context, routes ...string) {
	var keys, patterns []string
	for _, route := range routes {
		for _, p := range APIPathsForRoute(route) {
			if strings.HasSuffix(p, "*") {
				patterns = append(patterns, responseKeyPrefix+p)
				continue
			}
			keys = append(keys, responseKeyPrefix+p)
		}
	}
	for _, pattern := range patterns {
		rc.deleteMatching(ctx, pattern)
	}
	if len(keys) == 0 {
		return
	}
	if err := rc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("response cache invalidate error", "routes", routes, "error", err)
		return
	}
	slog.Debug("response cache invalidated", "routes", routes, "keys", len(keys))
}

// InvalidateAll removes all cached responses by scanning for the prefix.
// Used after diagnostics repairs, since any entity may have changed.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	if deleted := rc.deleteMatching(ctx, responseKeyPrefix+"*"); deleted > 0 {
		slog.Info("response cache fully cleared", "deleted", deleted)
	}
}

// deleteMatching scans for keys matching pattern and deletes them in
// batches, returning how many were found.
func (rc *ResponseCache) deleteMatching(ctx context.Context, pattern string) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "pattern", pattern, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			return deleted
		}
	}
}

// APIPathsForRoute maps a site route to the API paths whose responses render
// it. The home route covers the listings and the homepage. Page responses
// embed the casinos they list, so a casino route also matches every page.
// Admin routes are never cached. A trailing "*" marks a key pattern.
func APIPathsForRoute(route string) []string {
	switch {
	case route == "/":
		return []string{"/api/home", "/api/casinos", "/api/pages"}
	case strings.HasPrefix(route, "/casinos/") && len(route) > len("/casinos/"):
		return []string{"/api" + route, "/api/pages/*"}
	case strings.HasPrefix(route, "/pages/") && len(route) > len("/pages/"):
		return []string{"/api" + route}
	default:
		return nil
	}
}
