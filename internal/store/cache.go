package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
)

// Users is the user persistence surface shared by MongoStore and CachedUsers.
type Users interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CachedUsers is a read-through Redis cache in front of a Users store.
// Users are never modified after creation, so entries only expire by TTL.
// Redis failures are logged and the request falls through to the next store.
type CachedUsers struct {
	Users
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewCachedUsers(next Users, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedUsers {
	return &CachedUsers{
		Users: next,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "user_cache").Logger(),
	}
}

func userKey(id string) string {
	return "user:" + id
}

func (c *CachedUsers) CreateUser(ctx context.Context, username string) (*models.User, error) {
	u, err := c.Users.CreateUser(ctx, username)
	if err != nil {
		return nil, err
	}
	c.put(ctx, u)
	return u, nil
}

func (c *CachedUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}

	raw, err := c.rdb.Get(ctx, userKey(id)).Bytes()
	switch {
	case err == nil:
		var u models.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return &u, nil
		}
		c.log.Warn().Str("user_id", id).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("user_id", id).Msg("cache read failed")
	}

	u, err := c.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, u)
	return u, nil
}

func (c *CachedUsers) put(ctx context.Context, u *models.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, userKey(u.ID.Hex()), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", u.ID.Hex()).Msg("cache write failed")
	}
}
