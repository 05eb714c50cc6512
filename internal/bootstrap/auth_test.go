package bootstrap

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/workvortex/vortex-api/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildSessionServiceReturnsNilWithoutRedis(t *testing.T) {
	logger := discardLogger()

	tests := []struct {
		name string
		auth config.AuthConfig
	}{
		{
			name: "dev auth mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeMock,
				DevAuth: config.DevAuthConfig{
					Subject: "dev",
					Email:   "dev@example.com",
				},
			},
		},
		{
			name: "oauth mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeOAuth,
				OAuth: config.OAuthConfig{
					ClientID:     "client-id",
					ClientSecret: "client-secret",
					DiscoveryURL: "https://issuer.example.com",
					RedirectURL:  "https://app.example.com/auth/callback",
					Scope:        "openid",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AuthConfig{
				Auth:        tt.auth,
				RedisClient: nil,
				Logger:      logger,
			}

			if svc := BuildSessionService(cfg); svc != nil {
				t.Fatalf("BuildSessionService() = %v, want nil", svc)
			}
		})
	}
}

func TestBuildAuthProvider(t *testing.T) {
	logger := discardLogger()

	mock := config.AuthConfig{
		Mode:    config.AuthModeMock,
		DevAuth: config.DevAuthConfig{Subject: "dev", Email: "dev@example.com", Phone: "555-0100"},
		Session: config.SessionConfig{TTL: time.Hour},
	}
	if prov := buildAuthProvider(mock, logger); prov == nil {
		t.Fatal("expected a dev auth provider")
	}

	missingSubject := mock
	missingSubject.DevAuth.Subject = ""
	if prov := buildAuthProvider(missingSubject, logger); prov != nil {
		t.Fatal("expected dev auth without a subject to be disabled")
	}

	incomplete := config.AuthConfig{Mode: config.AuthModeOAuth, OAuth: config.OAuthConfig{ClientID: "client-id"}}
	if prov := buildAuthProvider(incomplete, logger); prov != nil {
		t.Fatal("expected incomplete oauth config to disable auth")
	}
}

func TestBuildTokenCodec(t *testing.T) {
	logger := discardLogger()

	if codec := buildTokenCodec(config.AuthConfig{Mode: config.AuthModeMock}, logger); codec == nil {
		t.Fatal("expected dev auth to fall back to an ephemeral key")
	}
	if codec := buildTokenCodec(config.AuthConfig{Mode: config.AuthModeOAuth}, logger); codec != nil {
		t.Fatal("expected oauth without a signing key to be rejected")
	}

	keyed := config.AuthConfig{
		Mode:    config.AuthModeOAuth,
		Session: config.SessionConfig{SigningKey: "0123456789abcdef0123456789abcdef"},
	}
	if codec := buildTokenCodec(keyed, logger); codec == nil {
		t.Fatal("expected a codec for a 32-byte key")
	}
}
