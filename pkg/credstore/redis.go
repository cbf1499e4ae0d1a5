package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrFailedToParseRedisConnString = errors.New("credstore: failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("credstore: redis did not become ready within the given time period")
)

// RedisConfig holds redis connection settings for the shared credential store.
type RedisConfig struct {
	ConnectionURL  string        `env:"CLIENTKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix      string        `env:"CLIENTKIT_REDIS_KEY_PREFIX" envDefault:"clientkit:"`
	TTL            time.Duration `env:"CLIENTKIT_REDIS_TTL" envDefault:"0"` // 0 disables expiry
	RetryAttempts  int           `env:"CLIENTKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"CLIENTKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"CLIENTKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis establishes a connection to a redis server using the provided
// configuration, retrying up to RetryAttempts times with RetryInterval
// between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	redisConnOpt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		redisClient := redis.NewClient(redisConnOpt)

		if err := redisClient.Ping(ctx).Err(); err == nil {
			return redisClient, nil
		}

		_ = redisClient.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		default:
			time.Sleep(cfg.RetryInterval)
		}
	}

	return nil, ErrRedisNotReady
}

// RedisStore implements Store backed by redis. Intended for kiosk or
// multi-process deployments where the credential outlives a single process.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces all keys, allowing several stores to share one
// redis database.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiry on stored values. Zero keeps values until deleted.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a redis-backed credential store over an established
// client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "clientkit:",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value under key
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	return s.client.Del(ctx, s.prefix+key).Err()
}
