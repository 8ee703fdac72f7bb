package session_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucolab/labconsole/internal/session"
)

func newRedisStorage(t *testing.T) (*session.RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStorage(client, "labconsole:"), mr
}

func TestRedisStorage_SaveLoad(t *testing.T) {
	storage, mr := newRedisStorage(t)
	ctx := context.Background()

	want := session.Credentials{Token: "t1", IsLoggedIn: true, Username: "admin"}
	require.NoError(t, storage.Save(ctx, want))

	got, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Keys are namespaced under the configured prefix.
	token, err := mr.Get("labconsole:token")
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
}

func TestRedisStorage_LoadEmpty(t *testing.T) {
	storage, _ := newRedisStorage(t)

	_, err := storage.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoCredentials)
}

func TestRedisStorage_LoadEmptyToken(t *testing.T) {
	storage, _ := newRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, session.Credentials{Token: "", IsLoggedIn: true, Username: "admin"}))

	_, err := storage.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoCredentials)
}

func TestRedisStorage_Clear(t *testing.T) {
	storage, mr := newRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, session.Credentials{Token: "t1", IsLoggedIn: true, Username: "admin"}))
	require.NoError(t, storage.Clear(ctx))

	_, err := storage.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoCredentials)
	assert.False(t, mr.Exists("labconsole:username"))
}
