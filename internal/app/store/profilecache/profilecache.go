// Package profilecache is a narrow read-through cache in front of the
// user store. The document store stays the single source of truth: every
// write path invalidates the cached copy, and a cache miss or Redis outage
// just falls through to Mongo. Nothing is ever served from Redis that
// could not be re-read from the store.
package profilecache

import (
	"context"
	"encoding/json"
	"time"

	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultTTL bounds how stale a cached profile can get even if an
// invalidation is lost.
const DefaultTTL = 5 * time.Minute

type Cache struct {
	users *userstore.Store
	rdb   *redis.Client // nil disables caching entirely
	ttl   time.Duration
	log   *zap.Logger
}

// New builds a Cache. rdb may be nil, in which case every read goes
// straight to the store.
func New(users *userstore.Store, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{users: users, rdb: rdb, ttl: ttl, log: logger}
}

func key(id string) string { return "profile:" + id }

// Get returns the profile for id, from Redis when fresh, from the store
// otherwise. Store errors pass through unchanged (including
// userstore.ErrNotFound); Redis errors are logged and ignored.
func (c *Cache) Get(ctx context.Context, id string) (*models.User, error) {
	if c.rdb != nil {
		if b, err := c.rdb.Get(ctx, key(id)).Bytes(); err == nil {
			var u cachedUser
			if err := json.Unmarshal(b, &u); err == nil {
				if decoded, ok := u.decode(); ok {
					return decoded, nil
				}
			}
		} else if err != redis.Nil {
			c.log.Debug("profile cache read failed", zap.Error(err))
		}
	}

	u, err := c.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if b, err := json.Marshal(encode(u)); err == nil {
			if err := c.rdb.Set(ctx, key(id), b, c.ttl).Err(); err != nil {
				c.log.Debug("profile cache write failed", zap.Error(err))
			}
		}
	}
	return u, nil
}

// Invalidate drops the cached copy for id. Called on every profile write.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		c.log.Debug("profile cache invalidate failed", zap.Error(err))
	}
}

// cachedUser is the JSON envelope stored in Redis. The role variant is
// kept as raw JSON and re-decoded against the role on the way out.
type cachedUser struct {
	User  models.User     `json:"user"`
	Attrs json.RawMessage `json:"attrs"`
}

func encode(u *models.User) cachedUser {
	attrs, _ := json.Marshal(u.Attrs)
	flat := *u
	flat.Attrs = nil // interface fields don't round-trip through encoding/json
	return cachedUser{User: flat, Attrs: attrs}
}

func (c cachedUser) decode() (*models.User, bool) {
	u := c.User
	attrs := models.NewRoleAttributes(u.Role)
	if attrs == nil {
		return nil, false
	}
	if len(c.Attrs) > 0 {
		if err := json.Unmarshal(c.Attrs, attrs); err != nil {
			return nil, false
		}
	}
	u.Attrs = attrs
	return &u, true
}
