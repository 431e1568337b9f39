package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/cppla/prepmeter/config"
)

const redisConnectTries = 3

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedis returns the shared client, or nil when Redis is disabled. Callers fall back to
// in-process state on nil.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		if cfg.RedisDisabled {
			return
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		if err := pingRedis(redisClient); err != nil {
			// the client is kept: go-redis reconnects on later commands
			Sugar.Warnf("redis unreachable at %s after %d tries: %v", redisClient.Options().Addr, redisConnectTries, err)
		}
	})
	return redisClient
}

func pingRedis(c *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.Ping(ctx).Err()
	}, backoff.WithBackOff(b), backoff.WithMaxTries(redisConnectTries))
	return err
}

// CloseRedis releases the shared client if one was opened.
func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}
