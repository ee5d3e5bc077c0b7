package rstore

import (
	"context"
	"errors"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/redis/go-redis/v9"
)

// redisClient adapts a go-redis client to the Client interface.
type redisClient struct {
	rdb redis.UniversalClient
}

// NewRedisClient wraps an already configured go-redis client (single node,
// sentinel or cluster).
func NewRedisClient(rdb redis.UniversalClient) Client {
	return &redisClient{rdb: rdb}
}

// ConnectRedis creates a go-redis client for the given addresses and checks the
// connection with a PING. Unreachable servers yield a connection error.
func ConnectRedis(ctx context.Context, opts *redis.UniversalOptions) (Client, error) {
	rdb := redis.NewUniversalClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, store.WrapError(store.KindConnection, "failed to connect to redis", err)
	}
	return NewRedisClient(rdb), nil
}

func (c *redisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *redisClient) Set(ctx context.Context, key string, payload []byte) (bool, error) {
	res, err := c.rdb.Set(ctx, key, payload, 0).Result()
	if err != nil {
		return false, err
	}
	return res == "OK", nil
}

func (c *redisClient) Del(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisClient) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Quit closes the underlying connection pool.
func (c *redisClient) Quit(_ context.Context) error {
	return c.rdb.Close()
}
