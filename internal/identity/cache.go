package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CachedResolver caches exact-username lookups in Redis. Profiles are
// immutable from the catalog's perspective, so a short TTL is the only
// invalidation needed. Redis failures fall through to the inner resolver;
// the cache is never a correctness dependency.
type CachedResolver struct {
	inner Resolver
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedResolver wraps inner with a Redis lookaside cache.
func NewCachedResolver(inner Resolver, rdb *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(username string) string {
	return "profile:" + username
}

// LookupByUsername implements Resolver.
func (c *CachedResolver) LookupByUsername(ctx context.Context, username string) (Profile, error) {
	if raw, err := c.rdb.Get(ctx, cacheKey(username)).Result(); err == nil {
		var profile Profile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			return profile, nil
		}
	}

	profile, err := c.inner.LookupByUsername(ctx, username)
	if err != nil {
		return Profile{}, err
	}

	if raw, err := json.Marshal(profile); err == nil {
		if err := c.rdb.Set(ctx, cacheKey(profile.Username), raw, c.ttl).Err(); err != nil {
			log.Debug().Err(err).Str("username", profile.Username).Msg("profile cache write failed")
		}
	}

	return profile, nil
}

// SearchUsernames implements Resolver. Free-text searches are not cached;
// their result sets are unbounded in shape and cheap to serve from Postgres.
func (c *CachedResolver) SearchUsernames(ctx context.Context, text string) ([]Profile, error) {
	return c.inner.SearchUsernames(ctx, text)
}
