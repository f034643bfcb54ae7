package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
)

type countingUsers struct {
	byID  map[string]models.User
	gets  int
	lists int
}

func (c *countingUsers) CreateUser(_ context.Context, username string) (*models.User, error) {
	u := models.User{ID: primitive.NewObjectID(), Username: username}
	c.byID[u.ID.Hex()] = u
	return &u, nil
}

func (c *countingUsers) ListUsers(context.Context) ([]models.User, error) {
	c.lists++
	return nil, nil
}

func (c *countingUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	c.gets++
	u, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

// unreachableRedis fails every command immediately.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestCachedUsersFallsBackWhenRedisDown(t *testing.T) {
	next := &countingUsers{byID: map[string]models.User{}}
	c := NewCachedUsers(next, unreachableRedis(t), time.Minute, zerolog.Nop())
	ctx := context.Background()

	created, err := c.CreateUser(ctx, "alice")
	require.NoError(t, err)

	got, err := c.GetUserByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, 1, next.gets)
}

func TestCachedUsersPropagatesErrors(t *testing.T) {
	next := &countingUsers{byID: map[string]models.User{}}
	c := NewCachedUsers(next, unreachableRedis(t), time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := c.GetUserByID(ctx, primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.GetUserByID(ctx, "bogus")
	assert.True(t, errors.Is(err, ErrInvalidID))
	assert.Equal(t, 1, next.gets, "invalid ids never reach the store")
}

func TestCachedUsersListPassesThrough(t *testing.T) {
	next := &countingUsers{byID: map[string]models.User{}}
	c := NewCachedUsers(next, unreachableRedis(t), time.Minute, zerolog.Nop())

	_, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, next.lists)
}

func liveRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCachedUsersServesHitsFromRedis(t *testing.T) {
	mr, rdb := liveRedis(t)
	next := &countingUsers{byID: map[string]models.User{}}
	c := NewCachedUsers(next, rdb, 5*time.Minute, zerolog.Nop())
	ctx := context.Background()

	created, err := c.CreateUser(ctx, "alice")
	require.NoError(t, err)

	key := userKey(created.ID.Hex())
	require.True(t, mr.Exists(key), "create writes through")
	assert.Equal(t, 5*time.Minute, mr.TTL(key))

	got, err := c.GetUserByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, 0, next.gets, "hit must not reach the store")
}

func TestCachedUsersFillsOnMiss(t *testing.T) {
	mr, rdb := liveRedis(t)
	next := &countingUsers{byID: map[string]models.User{}}
	u, _ := next.CreateUser(context.Background(), "bob")
	c := NewCachedUsers(next, rdb, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := c.GetUserByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	_, err = c.GetUserByID(ctx, u.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 1, next.gets)
	assert.True(t, mr.Exists(userKey(u.ID.Hex())))
}

func TestCachedUsersDiscardsCorruptEntry(t *testing.T) {
	mr, rdb := liveRedis(t)
	next := &countingUsers{byID: map[string]models.User{}}
	u, _ := next.CreateUser(context.Background(), "carol")
	c := NewCachedUsers(next, rdb, time.Minute, zerolog.Nop())

	key := userKey(u.ID.Hex())
	require.NoError(t, mr.Set(key, "{not json"))

	got, err := c.GetUserByID(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
	assert.Equal(t, 1, next.gets)

	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"username":"carol"`, "entry is rewritten from the store")
}
