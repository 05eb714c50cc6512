package bootstrap

import (
	"crypto/rand"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/adapters/devauth"
	"github.com/workvortex/vortex-api/internal/adapters/oidc"
	redisadapter "github.com/workvortex/vortex-api/internal/adapters/redis"
	"github.com/workvortex/vortex-api/internal/adapters/sessiontoken"
	"github.com/workvortex/vortex-api/internal/ports"
	"github.com/workvortex/vortex-api/internal/service"
)

const minSigningKeyLen = 32

// AuthConfig contains configuration for the session service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildSessionService creates a session service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildSessionService(cfg AuthConfig) *service.SessionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RedisClient == nil {
		logger.Warn("session service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		return nil
	}

	provider := buildAuthProvider(cfg.Auth, logger)
	if provider == nil {
		return nil
	}
	tokens := buildTokenCodec(cfg.Auth, logger)
	if tokens == nil {
		return nil
	}

	store := redisadapter.NewSessionStoreWithOptions(cfg.RedisClient, redisadapter.SessionStoreOptions{
		Prefix: cfg.Auth.Session.KeyPrefix,
	})
	bus := redisadapter.NewEventBus(cfg.RedisClient, redisadapter.EventBusOptions{
		Channel: cfg.Auth.Session.EventChannel,
		Logger:  logger,
	})

	return service.NewSessionService(service.SessionServiceOptions{
		Deps: service.SessionDeps{
			Provider: provider,
			Store:    store,
			Tokens:   tokens,
			Bus:      bus,
		},
		Policy: service.SessionPolicy{TTL: cfg.Auth.Session.TTL},
		Logger: logger,
	})
}

//nolint:ireturn // the provider is chosen at runtime from the auth mode.
func buildAuthProvider(cfg config.AuthConfig, logger *slog.Logger) ports.AuthProvider {
	switch cfg.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			Subject:         cfg.DevAuth.Subject,
			Email:           cfg.DevAuth.Email,
			Name:            cfg.DevAuth.Name,
			Phone:           cfg.DevAuth.Phone,
			SessionDuration: cfg.Session.TTL,
		})
		if err != nil {
			logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
			return nil
		}
		return prov

	case config.AuthModeOAuth:
		// Only enable when fully configured
		oauth := cfg.OAuth
		if !oauth.IsComplete() {
			logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
			return nil
		}
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
		})
		if err != nil {
			logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
			return nil
		}
		return prov

	default:
		return nil
	}
}

// buildTokenCodec signs session tokens with the configured key. In mock mode a
// missing key is replaced by a random one, so tokens do not survive a restart.
func buildTokenCodec(cfg config.AuthConfig, logger *slog.Logger) *sessiontoken.Codec {
	key := []byte(cfg.Session.SigningKey)
	if len(key) < minSigningKeyLen && cfg.Mode == config.AuthModeMock {
		key = make([]byte, minSigningKeyLen)
		if _, err := rand.Read(key); err != nil {
			logger.Warn("generate session signing key failed, auth disabled", "error", err)
			return nil
		}
		logger.Warn("SESSION_SIGNING_KEY not set; using an ephemeral key for dev auth")
	}
	codec, err := sessiontoken.NewCodec(key)
	if err != nil {
		logger.Warn("session token codec unavailable, auth disabled", "error", err)
		return nil
	}
	return codec
}
