package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/conduit-backend/internal/domain"
	"github.com/yungbote/conduit-backend/internal/services"
	"github.com/yungbote/conduit-backend/internal/uow"
)

// issueTokens creates an access/refresh pair for the user and persists
// the hashed refresh token inside the caller's open scope.
func issueTokens(ctx context.Context, u uow.UnitOfWork, d Deps, userID string, permissions []string) (AuthTokens, error) {
	accessToken, err := d.Tokens.CreateAccessToken(userID, permissions)
	if err != nil {
		return AuthTokens{}, err
	}
	refreshToken, tokenID, expiresAt, err := d.Tokens.CreateRefreshToken(userID)
	if err != nil {
		return AuthTokens{}, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return AuthTokens{}, domain.Wrap(domain.CodeInternal, "auth.issue", err)
	}
	record := &domain.RefreshToken{
		ID:        tokenID,
		UserID:    uid,
		TokenHash: d.Tokens.HashToken(refreshToken),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.RefreshTokens().Create(ctx, record); err != nil {
		return AuthTokens{}, domain.MapError("auth.issue", err)
	}
	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(d.Tokens.AccessTTL().Seconds()),
	}, nil
}

// HandleRegisterUser hashes the password, enforces email uniqueness,
// creates the user and signs them in, all in one scope.
func HandleRegisterUser(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(RegisterUserCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "auth.register", "unexpected intent type", nil)
	}
	if cmd.Password == "" {
		return nil, domain.WithDetails(domain.CodeValidation, "auth.register", "password must be non-empty", map[string]string{"field": "password"})
	}

	var tokens AuthTokens
	err := uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		exists, err := u.Users().EmailExists(ctx, cmd.Email)
		if err != nil {
			return domain.MapError("auth.register", err)
		}
		if exists {
			return domain.NewError(domain.CodeConflict, "auth.register", "a user with this email already exists", nil)
		}

		hash, err := d.Hasher.Hash(cmd.Password)
		if err != nil {
			return err
		}
		user, err := domain.NewUser(cmd.Name, cmd.Email, hash)
		if err != nil {
			return err
		}
		if err := u.Users().Create(ctx, user); err != nil {
			return domain.MapError("auth.register", err)
		}

		tokens, err = issueTokens(ctx, u, d, user.ID.String(), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// HandleLoginUser verifies credentials and issues a token pair.
func HandleLoginUser(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(LoginUserCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "auth.login", "unexpected intent type", nil)
	}

	var tokens AuthTokens
	err := uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		user, err := u.Users().GetByEmail(ctx, cmd.Email)
		if err != nil {
			return domain.MapError("auth.login", err)
		}
		if user == nil || !d.Hasher.Verify(cmd.Password, user.PasswordHash) {
			return domain.NewError(domain.CodeUnauthenticated, "auth.login", "invalid email or password", nil)
		}
		tokens, err = issueTokens(ctx, u, d, user.ID.String(), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// HandleRefreshToken validates the presented refresh token, revokes it
// and issues a fresh pair. Revoked, expired and non-refresh tokens are
// all rejected as unauthenticated.
func HandleRefreshToken(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(RefreshTokenCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "auth.refresh", "unexpected intent type", nil)
	}

	claims, err := d.Tokens.ParseToken(cmd.RefreshToken)
	if err != nil {
		return nil, domain.NewError(domain.CodeUnauthenticated, "auth.refresh", "invalid or expired refresh token", nil)
	}
	if claims.TokenType != services.TokenTypeRefresh {
		return nil, domain.NewError(domain.CodeUnauthenticated, "auth.refresh", "token is not a refresh token", nil)
	}
	tokenHash := d.Tokens.HashToken(cmd.RefreshToken)

	var tokens AuthTokens
	err = uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		record, err := u.RefreshTokens().GetByTokenHash(ctx, tokenHash)
		if err != nil {
			return domain.MapError("auth.refresh", err)
		}
		now := time.Now().UTC()
		if record == nil || record.RevokedAt != nil {
			return domain.NewError(domain.CodeUnauthenticated, "auth.refresh", "refresh token has been revoked", nil)
		}
		if record.ExpiresAt.Before(now) {
			return domain.NewError(domain.CodeUnauthenticated, "auth.refresh", "refresh token has expired", nil)
		}
		if err := u.RefreshTokens().Revoke(ctx, record.ID, now); err != nil {
			return domain.MapError("auth.refresh", err)
		}
		tokens, err = issueTokens(ctx, u, d, claims.Subject, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// HandleLogoutUser revokes the presented refresh token. Unknown tokens
// log out successfully; logout is idempotent from the client's view.
func HandleLogoutUser(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(LogoutUserCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "auth.logout", "unexpected intent type", nil)
	}

	tokenHash := d.Tokens.HashToken(cmd.RefreshToken)
	err := uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		record, err := u.RefreshTokens().GetByTokenHash(ctx, tokenHash)
		if err != nil {
			return domain.MapError("auth.logout", err)
		}
		if record == nil || record.RevokedAt != nil {
			return nil
		}
		if err := u.RefreshTokens().Revoke(ctx, record.ID, time.Now().UTC()); err != nil {
			return domain.MapError("auth.logout", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleChangePassword verifies the current password, stores the new
// hash and revokes every outstanding refresh token for the user.
func HandleChangePassword(ctx context.Context, intent any, d Deps) (any, error) {
	cmd, ok := intent.(ChangePasswordCommand)
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, "auth.change_password", "unexpected intent type", nil)
	}
	userID, err := uuid.Parse(cmd.UserID)
	if err != nil {
		return nil, domain.WithDetails(domain.CodeValidation, "auth.change_password", "malformed user id", map[string]string{"field": "user_id"})
	}
	if cmd.NewPassword == "" {
		return nil, domain.WithDetails(domain.CodeValidation, "auth.change_password", "new password must be non-empty", map[string]string{"field": "new_password"})
	}

	err = uow.Within(ctx, d.UoW, func(u uow.UnitOfWork) error {
		user, err := u.Users().GetByID(ctx, userID)
		if err != nil {
			return domain.MapError("auth.change_password", err)
		}
		if user == nil {
			return domain.NewError(domain.CodeNotFound, "auth.change_password", "user not found", nil)
		}
		if !d.Hasher.Verify(cmd.OldPassword, user.PasswordHash) {
			return domain.NewError(domain.CodeUnauthenticated, "auth.change_password", "current password is incorrect", nil)
		}
		hash, err := d.Hasher.Hash(cmd.NewPassword)
		if err != nil {
			return err
		}
		user.SetPasswordHash(hash)
		if err := u.Users().Update(ctx, user); err != nil {
			return domain.MapError("auth.change_password", err)
		}
		if err := u.RefreshTokens().RevokeAllForUser(ctx, userID, time.Now().UTC()); err != nil {
			return domain.MapError("auth.change_password", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}
