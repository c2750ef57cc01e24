package stages

import (
	"context"
	"net/http"
	"strings"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/services"
)

// Context state keys written by the stages in this package. They are part
// of each stage's contract with downstream stages and handlers.
const (
	StateUserID      = "user_id"
	StatePermissions = "permissions"
)

// AuthenticationStage validates the bearer access token and records the
// authenticated user in context state. On failure it aborts with 401; it
// never returns an error for bad credentials.
type AuthenticationStage struct {
	tokens *services.TokenService
}

func NewAuthenticationStage(tokens *services.TokenService) *AuthenticationStage {
	return &AuthenticationStage{tokens: tokens}
}

func (s *AuthenticationStage) Category() pipeline.Category {
	return pipeline.CategoryAuthentication
}

func (s *AuthenticationStage) Resolve(_ context.Context, rc *pipeline.RequestContext) error {
	tokenString := bearerToken(rc.Request())
	if tokenString == "" {
		rc.Abort(pipeline.AbortResult{
			Status:  http.StatusUnauthorized,
			Code:    "unauthenticated",
			Message: "missing or invalid token",
		})
		return nil
	}
	claims, err := s.tokens.ParseToken(tokenString)
	if err != nil || claims.TokenType != services.TokenTypeAccess {
		rc.Abort(pipeline.AbortResult{
			Status:  http.StatusUnauthorized,
			Code:    "unauthenticated",
			Message: "invalid token",
		})
		return nil
	}
	rc.Set(StateUserID, claims.Subject)
	rc.Set(StatePermissions, claims.Permissions)
	return nil
}

func bearerToken(req pipeline.Request) string {
	authHeader := req.Header("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
