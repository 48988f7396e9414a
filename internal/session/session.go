package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
)

// Bootstrap creates a new backend session and persists the access
// token and session id. Callers invoking it concurrently share one
// in-flight bootstrap.
func Bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*api.SessionResponse, error) {
	client := api.NewClient(cfg, log)
	return client.BootstrapSession(ctx)
}

// EnsureFresh bootstraps a session when none is stored or the stored
// one expires within the hour. Expired tokens left in place would just
// trigger the 401 path anyway; this avoids the wasted round trip.
func EnsureFresh(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.HasSession() && !expiringSoon(cfg.ExpiresAt) {
		return nil
	}
	_, err := Bootstrap(ctx, cfg, log)
	return err
}

func expiringSoon(expiresAt string) bool {
	if expiresAt == "" {
		return false
	}
	expires, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return false
	}
	return time.Until(expires) < time.Hour
}

// Validate checks the stored token against the backend.
func Validate(ctx context.Context, cfg *config.Config, log *zap.Logger) (*api.TokenValidationResponse, error) {
	client := api.NewClient(cfg, log)
	return client.ValidateToken(ctx)
}
