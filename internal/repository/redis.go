package repository

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedis keeps every key under "<prefix>:" so several front ends of the
// same user can share one session.
func NewRedis(url string, prefix string) (Repository, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse redis url")
	}

	return &redisRepo{
		client: redis.NewClient(opt),
		prefix: prefix,
	}, nil
}

func (r *redisRepo) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", r.prefix, k)
}

func (r *redisRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get %s", key)
	}
	return v, nil
}

func (r *redisRepo) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return pkgerrors.Wrapf(err, "failed to set %s", key)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return pkgerrors.Wrapf(err, "failed to delete %s", key)
	}
	return nil
}

func (r *redisRepo) Close() error {
	return r.client.Close()
}
