package cache

import (
	"context"
	"testing"

	appconfig "lavacar_booking/internal/infrastructure/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled without address", func(t *testing.T) {
		assert.Nil(t, NewRedisClient(context.Background(), appconfig.Redis{}))
	})

	t.Run("connects to a live server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := NewRedisClient(context.Background(), appconfig.Redis{Addr: mr.Addr()})
		require.NotNil(t, client)
		defer client.Close()

		require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		assert.Nil(t, NewRedisClient(context.Background(), appconfig.Redis{Addr: addr}))
	})
}
