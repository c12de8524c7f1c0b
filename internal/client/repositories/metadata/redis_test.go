package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 127.0.0.1:1 is reserved (tcpmux) and refuses connections on test hosts.
const unreachableRedis = "127.0.0.1:1"

func TestConnectRedis_PingFailure(t *testing.T) {
	_, err := ConnectRedis(context.Background(), RedisConfig{Addr: unreachableRedis, Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisRepository_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: unreachableRedis})
	defer client.Close()

	r := NewRedisRepository(client, "")
	assert.Equal(t, "tripcart:token", r.key("token"))

	r = NewRedisRepository(client, "profile-a:")
	assert.Equal(t, "profile-a:token", r.key("token"))
}

func TestRedisRepository_ErrorsAreWrapped(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        unreachableRedis,
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisRepository(client, "")
	defer r.Close()
	ctx := context.Background()

	_, err := r.Get(ctx, "token")
	assert.ErrorContains(t, err, "failed to get metadata[token]")

	err = r.Set(ctx, "token", []byte("abc"))
	assert.ErrorContains(t, err, "failed to set metadata[token]")

	err = r.Delete(ctx, "token")
	assert.ErrorContains(t, err, "failed to delete metadata[token]")

	_, err = r.List(ctx)
	assert.ErrorContains(t, err, "failed to list metadata")

	err = r.Clear(ctx)
	assert.ErrorContains(t, err, "failed to clear metadata")
}

func newMiniRedisRepo(t *testing.T, mr *miniredis.Miniredis, prefix string) *RedisRepository {
	t.Helper()
	r, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: prefix})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRedisRepository_GetMissingKey(t *testing.T) {
	r := newMiniRedisRepo(t, miniredis.RunT(t), "")

	v, err := r.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedisRepository_SetGetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	r := newMiniRedisRepo(t, mr, "")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))
	raw, err := mr.Get("tripcart:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	require.NoError(t, r.Set(ctx, "token", []byte("xyz")))
	v, err = r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), v)

	require.NoError(t, r.Delete(ctx, "token"))
	require.NoError(t, r.Delete(ctx, "token"), "deleting a missing key is fine")
	assert.False(t, mr.Exists("tripcart:token"))
}

func TestRedisRepository_PrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	a := newMiniRedisRepo(t, mr, "profile-a:")
	b := newMiniRedisRepo(t, mr, "profile-b:")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "token", []byte("a-token")))
	require.NoError(t, a.Set(ctx, "userSettings", []byte(`{"theme":"dark"}`)))
	require.NoError(t, b.Set(ctx, "token", []byte("b-token")))
	require.NoError(t, mr.Set("unrelated", "x"))

	got, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"token":        []byte("a-token"),
		"userSettings": []byte(`{"theme":"dark"}`),
	}, got)

	v, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("b-token"), v)

	require.NoError(t, a.Clear(ctx))
	got, err = a.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.True(t, mr.Exists("profile-b:token"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestRedisRepository_ClearEmpty(t *testing.T) {
	r := newMiniRedisRepo(t, miniredis.RunT(t), "")
	require.NoError(t, r.Clear(context.Background()))
}
