package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghaggin/tourpal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Repository{
		"memory": func(_ *testing.T) Repository { return NewMemory() },
		"json": func(t *testing.T) Repository {
			return NewJSON(filepath.Join(t.TempDir(), "nested", "session.json"), zap.NewNop())
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)
			ctx := context.Background()
			r := open(t)

			_, err := r.Get(ctx, "k")
			assert.ErrorIs(err, ErrNotFound)

			require.NoError(r.Set(ctx, "k", "v"))
			v, err := r.Get(ctx, "k")
			require.NoError(err)
			assert.Equal("v", v)

			require.NoError(r.Delete(ctx, "k"))
			require.NoError(r.Delete(ctx, "k"))
			_, err = r.Get(ctx, "k")
			assert.ErrorIs(err, ErrNotFound)

			assert.NoError(r.Close())
		})
	}
}

func TestJSON_PersistsAcrossInstances(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	r := NewJSON(path, zap.NewNop())
	require.NoError(r.Set(ctx, "tourpal_token", "abc"))

	r2 := NewJSON(path, zap.NewNop())
	v, err := r2.Get(ctx, "tourpal_token")
	require.NoError(err)
	require.Equal("abc", v)
}

func TestJSON_CorruptFileStartsEmpty(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(os.WriteFile(path, []byte("{not json"), 0o600))

	r := NewJSON(path, zap.NewNop())
	_, err := r.Get(ctx, "tourpal_token")
	require.ErrorIs(err, ErrNotFound)

	require.NoError(r.Set(ctx, "k", "v"))
	r2 := NewJSON(path, zap.NewNop())
	v, err := r2.Get(ctx, "k")
	require.NoError(err)
	require.Equal("v", v)
}

func TestOpen(t *testing.T) {
	r, err := Open(config.Storage{Backend: config.StorageMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &memoryRepo{}, r)

	r, err = Open(config.Storage{Backend: config.StorageRedis, RedisURL: "redis://localhost:6379/0", Prefix: "tp"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "tp:tourpal_user", r.(*redisRepo).key("tourpal_user"))
	assert.NoError(t, r.Close())

	_, err = Open(config.Storage{Backend: config.StorageRedis, RedisURL: "::bad"}, zap.NewNop())
	assert.Error(t, err)
}
