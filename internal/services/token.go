package services

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/conduit-backend/internal/domain"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims are the claims carried by both access and refresh tokens.
// TokenType distinguishes the two; Permissions feed the authorization
// stage.
type TokenClaims struct {
	TokenType   string   `json:"type"`
	Permissions []string `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// TokenService creates and verifies JWT access and refresh tokens.
// Long-lived singleton: it holds the signing secret, never request state.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (ts *TokenService) AccessTTL() time.Duration {
	return ts.accessTTL
}

// CreateAccessToken issues a short-lived HS256 access token for the user.
func (ts *TokenService) CreateAccessToken(userID string, permissions []string) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		TokenType:   TokenTypeAccess,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", domain.Wrap(domain.CodeInternal, "token.access", err)
	}
	return signed, nil
}

// CreateRefreshToken issues a refresh token and returns its record ID and
// expiry so the caller can persist the hashed form.
func (ts *TokenService) CreateRefreshToken(userID string) (token string, tokenID uuid.UUID, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	tokenID = uuid.New()
	expiresAt = now.Add(ts.refreshTTL)
	claims := TokenClaims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        tokenID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", uuid.Nil, time.Time{}, domain.Wrap(domain.CodeInternal, "token.refresh", err)
	}
	return token, tokenID, expiresAt, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func (ts *TokenService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewError(domain.CodeUnauthenticated, "token.parse", "unexpected signing method", nil)
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, domain.Wrap(domain.CodeUnauthenticated, "token.parse", err)
	}
	if !parsed.Valid {
		return nil, domain.NewError(domain.CodeUnauthenticated, "token.parse", "invalid token", nil)
	}
	return claims, nil
}

// HashToken returns the hex SHA-256 of a raw token. Only the hash is ever
// persisted.
func (ts *TokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
