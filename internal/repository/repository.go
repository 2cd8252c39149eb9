package repository

import (
	"context"
	"errors"

	"github.com/ghaggin/tourpal/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("not found")
)

// Repository is a flat string key-value store that outlives the process.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// New opens the configured backend and closes it when the app stops.
func New(p Params) (Repository, error) {
	r, err := Open(p.Config.Storage, p.Log)
	if err != nil {
		return nil, err
	}

	p.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return r.Close()
		},
	})

	return r, nil
}

// Open returns the backend named by s without any lifecycle wiring.
func Open(s config.Storage, log *zap.Logger) (Repository, error) {
	switch s.Backend {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageRedis:
		return NewRedis(s.RedisURL, s.Prefix)
	default:
		return NewJSON(s.Path, log), nil
	}
}
