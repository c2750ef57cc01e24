package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/conduit-backend/internal/domain"
)

// HandleGetUser serves the read side: it fetches through the plain repo
// with no transactional scope.
func HandleGetUser(ctx context.Context, intent any, d Deps) (any, error) {
	q, ok := intent.(GetUserQuery)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "user.get", "unexpected intent type", nil)
	}
	userID, err := uuid.Parse(q.UserID)
	if err != nil {
		return nil, domain.WithDetails(domain.CodeValidation, "user.get", "malformed user id", map[string]string{"field": "user_id"})
	}

	user, err := d.Users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, domain.MapError("user.get", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.CodeNotFound, "user.get", "user not found", nil)
	}
	return UserReadModel{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}
