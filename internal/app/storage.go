package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/config"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
	redisstore "github.com/DulithM/disrupt-asia-investor-platform-dev/internal/store/redis"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/store/sqlite"
)

// Backend is the opened favorites storage plus what has to be released
// with it.
type Backend struct {
	Storage kv.Storage
	Redis   *goredis.Client // set for the redis backend only

	close func() error
}

// Close releases the backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the storage selected by cfg.Storage. The redis
// backend connects with retries and fails when redis never answers.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("favorites are kept in memory only and are lost on restart")
		return &Backend{Storage: kv.NewMemory()}, nil

	case config.StorageSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		log.Info("sqlite storage opened", logger.String("path", st.Path()))
		return &Backend{Storage: st, close: st.Close}, nil

	case config.StorageRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("Redis initialized successfully")

		// Keys outlive the longest possible favorite by a day, so abandoned
		// profiles are reclaimed by redis itself.
		st := redisstore.NewStorage(client, domain.ExpirationWindow+domain.Day)
		return &Backend{Storage: st, Redis: client, close: client.Close}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
