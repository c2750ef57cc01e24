package app

import (
	"time"

	"github.com/yungbote/conduit-backend/internal/platform/envutil"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Port            string

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := envutil.GetEnv("PORT", "8080", log)
	rateLimitRequests := envutil.GetEnvAsInt("RATE_LIMIT_REQUESTS", 60, log)
	rateLimitWindowSeconds := envutil.GetEnvAsInt("RATE_LIMIT_WINDOW", 60, log)
	return Config{
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:   time.Duration(refreshTokenTTLSeconds) * time.Second,
		Port:              port,
		RateLimitRequests: rateLimitRequests,
		RateLimitWindow:   time.Duration(rateLimitWindowSeconds) * time.Second,
	}
}
