package app

import (
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/services"
)

type Services struct {
	Tokens *services.TokenService
	Hasher services.PasswordHasher
}

func wireServices(log *logger.Logger, cfg Config) Services {
	log.Info("Wiring services...")
	return Services{
		Tokens: services.NewTokenService(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Hasher: services.NewBcryptHasher(),
	}
}
