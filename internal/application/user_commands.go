package application

import (
	"context"
	"time"

	"github.com/yungbote/conduit-backend/internal/domain"
	"github.com/yungbote/conduit-backend/internal/uow"
)

// HandleCreateUser creates a user without credentials. The caller is
// already authenticated; password setup happens out of band.
func HandleCreateUser(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(CreateUserCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "user.create", "unexpected intent type", nil)
	}

	var created *domain.User
	err := uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		exists, err := u.Users().EmailExists(ctx, cmd.Email)
		if err != nil {
			return domain.MapError("user.create", err)
		}
		if exists {
			return domain.NewError(domain.CodeConflict, "user.create", "a user with this email already exists", nil)
		}
		created, err = domain.NewUser(cmd.Name, cmd.Email, "")
		if err != nil {
			return err
		}
		if err := u.Users().Create(ctx, created); err != nil {
			return domain.MapError("user.create", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return UserReadModel{
		ID:        created.ID.String(),
		Name:      created.Name,
		Email:     created.Email,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}
