package viewstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

// RedisStore shares state between dashboard replicas.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// ConnectRedis dials addr and pings it once.
func ConnectRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Load(ctx context.Context, sid, name string) (view.Memory, error) {
	data, err := s.rdb.Get(ctx, key(sid, name)).Bytes()
	switch {
	case err == nil:
		return decode(data)
	case errors.Is(err, redis.Nil):
		return view.Memory{}, nil
	default:
		return view.Memory{}, fmt.Errorf("load view memory: %w", err)
	}
}

func (s *RedisStore) Save(ctx context.Context, sid, name string, m view.Memory) error {
	b, err := encode(m)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(sid, name), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save view memory: %w", err)
	}
	return nil
}

func (s *RedisStore) Forget(ctx context.Context, sid string) error {
	keys := make([]string, 0, len(Views))
	for _, name := range Views {
		keys = append(keys, key(sid, name))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("forget view memory: %w", err)
	}
	return nil
}
