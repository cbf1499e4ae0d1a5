package clientkit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusconnect/clientkit/pkg/config"
	"github.com/campusconnect/clientkit/pkg/credstore"
	"github.com/campusconnect/clientkit/pkg/identity"
	"github.com/campusconnect/clientkit/pkg/logger"
	"github.com/campusconnect/clientkit/pkg/provider"
	"github.com/campusconnect/clientkit/pkg/session"
)

// ErrUnknownStorageDriver is returned when CLIENTKIT_STORAGE_DRIVER names a
// driver this build does not know.
var ErrUnknownStorageDriver = errors.New("clientkit: unknown storage driver")

// StorageDriver selects the credential store backend.
type StorageDriver string

const (
	StorageMemory StorageDriver = "memory"
	StorageFile   StorageDriver = "file"
	StorageRedis  StorageDriver = "redis"
)

// Config aggregates the environment configuration of every component the
// facade wires together. Redis and Google settings are loaded lazily, only
// when the matching driver or flag enables them, so their required variables
// do not burden deployments that never use them.
type Config struct {
	Identity identity.Config
	Logger   logger.Config
	Storage  StorageConfig

	// GoogleAuth enables the Google consent flow. When true the
	// GOOGLE_OAUTH_* variables become required.
	GoogleAuth bool `env:"GOOGLE_AUTH_ENABLED" envDefault:"false"`
}

// StorageConfig selects and parameterizes the credential store.
type StorageConfig struct {
	Driver StorageDriver `env:"CLIENTKIT_STORAGE_DRIVER" envDefault:"memory"`

	// FilePath is the credential file location for the file driver.
	FilePath string `env:"CLIENTKIT_STORAGE_FILE" envDefault:"campusconnect-credentials.json"`

	// SealKey, when set, encrypts stored values with AES-256-GCM. Base64
	// encoded, 32 bytes decoded. Typically sourced from the platform
	// keystore by the embedding application.
	SealKey string `env:"CLIENTKIT_STORAGE_SEAL_KEY"`
}

// New assembles a ready-to-use session manager from the environment: logger,
// identity client, credential store and, when enabled, the Google consent
// flow. It is the single entry point an application embedding this module
// needs to call.
func New(ctx context.Context) (*session.Manager, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	log := logger.NewFromConfig(cfg.Logger, logger.WithAttr(slog.String("component", "clientkit")))

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	svc := identity.New(cfg.Identity, identity.WithLogger(log))

	opts := []session.Option{session.WithLogger(log)}
	if cfg.GoogleAuth {
		var googleCfg provider.GoogleConfig
		if err := config.Load(&googleCfg); err != nil {
			return nil, err
		}
		consent := provider.NewGoogleProvider(googleCfg, provider.WithLogger(log))
		opts = append(opts, session.WithConsentFlow(consent))
	}

	return session.New(svc, store, opts...), nil
}

func openStore(ctx context.Context, cfg StorageConfig) (credstore.Store, error) {
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SealKey == "" {
		return store, nil
	}

	key, err := base64.StdEncoding.DecodeString(cfg.SealKey)
	if err != nil {
		return nil, fmt.Errorf("clientkit: decode seal key: %w", err)
	}
	return credstore.NewSealedStore(store, key)
}

func openBackend(ctx context.Context, cfg StorageConfig) (credstore.Store, error) {
	switch cfg.Driver {
	case StorageMemory:
		return credstore.NewMemoryStore(), nil

	case StorageFile:
		return credstore.NewFileStore(cfg.FilePath)

	case StorageRedis:
		var redisCfg credstore.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := credstore.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return credstore.NewRedisStore(client,
			credstore.WithKeyPrefix(redisCfg.KeyPrefix),
			credstore.WithTTL(redisCfg.TTL),
		), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Driver)
	}
}
