// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// routes.go provides the Valkey-backed routing cache. Public routing for a
// content slug, tag, or author page is cached here; lifecycle post-commit
// hooks invalidate the affected keys so downstream routing recomputes.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes namespacing the routing entries.
	contentKeyPrefix  = "route:content:"
	relationKeyPrefix = "route:" // + relation + ":" + slug

	// DefaultRouteTTL is how long a routing entry stays cached.
	DefaultRouteTTL = 10 * time.Minute
)

// Routes manages routing entries in Valkey. It implements the lifecycle
// engine's Invalidator.
type Routes struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoutes creates a routes cache backed by the given Valkey client.
func NewRoutes(client *redis.Client, ttl time.Duration) *Routes {
	if ttl == 0 {
		ttl = DefaultRouteTTL
	}
	return &Routes{client: client, ttl: ttl}
}

// Get retrieves a cached routing payload for a content slug. Returns false on miss.
func (r *Routes) Get(ctx context.Context, slug string) ([]byte, bool) {
	val, err := r.client.Get(ctx, contentKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("routes cache get error", "slug", slug, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a routing payload for a content slug with the configured TTL.
func (r *Routes) Set(ctx context.Context, slug string, payload []byte) {
	if err := r.client.Set(ctx, contentKeyPrefix+slug, payload, r.ttl).Err(); err != nil {
		slog.Warn("routes cache set error", "slug", slug, "error", err)
	}
}

// InvalidateContent removes the routing entry for a content slug.
func (r *Routes) InvalidateContent(ctx context.Context, slug string) {
	if err := r.client.Del(ctx, contentKeyPrefix+slug).Err(); err != nil {
		slog.Warn("routes cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("routes cache invalidated", "slug", slug)
}

// InvalidateRelation removes the routing entry for a tag or author page so
// listings dependent on the mutated item's visibility recompute.
func (r *Routes) InvalidateRelation(ctx context.Context, relation, slug string) {
	key := relationKeyPrefix + relation + ":" + slug
	if err := r.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("routes cache invalidate error", "relation", relation, "slug", slug, "error", err)
	}
	slog.Debug("routes cache invalidated", "relation", relation, "slug", slug)
}
