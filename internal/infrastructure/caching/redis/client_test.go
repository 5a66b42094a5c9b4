package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return Wrap(rdb), mr
}

type payload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestClient_GetSetDelete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	var got payload
	found, err := c.Get(ctx, "volunteer:event:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "volunteer:event:1", payload{ID: 1, Name: "Food Drive"}, time.Minute))
	found, err = c.Get(ctx, "volunteer:event:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{ID: 1, Name: "Food Drive"}, got)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "volunteer:event:1", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire with ttl")

	require.NoError(t, c.Set(ctx, "volunteer:event:2", payload{ID: 2}, time.Minute))
	require.NoError(t, c.Delete(ctx, "volunteer:event:2"))
	assert.False(t, mr.Exists("volunteer:event:2"))
	assert.NoError(t, c.Delete(ctx))
}

func TestClient_Get_CorruptPayload(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("volunteer:event:3", "{not json"))

	var got payload
	found, err := c.Get(context.Background(), "volunteer:event:3", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestClient_GetTokenVersion(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	v, err := c.GetTokenVersion(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, mr.Set("tokenver:user-1", "4"))
	v, err = c.GetTokenVersion(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	require.NoError(t, mr.Set("tokenver:user-2", "abc"))
	_, err = c.GetTokenVersion(ctx, "user-2")
	assert.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	c, mr := setupTestRedis(t)
	assert.NoError(t, c.Ping(context.Background()))
	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
