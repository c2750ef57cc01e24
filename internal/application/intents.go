// Package application holds the intent types and handlers dispatched
// through the command and query buses. Intents are immutable data bags;
// all behavior lives in the handlers.
package application

// RegisterUserCommand creates a user with credentials and signs them in.
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// LoginUserCommand authenticates by email/password and issues tokens.
type LoginUserCommand struct {
	Email    string
	Password string
}

// RefreshTokenCommand rotates a refresh token: the old one is revoked and
// a new pair is issued.
type RefreshTokenCommand struct {
	RefreshToken string
}

// LogoutUserCommand revokes the presented refresh token.
type LogoutUserCommand struct {
	RefreshToken string
}

// ChangePasswordCommand replaces a user's password after verifying the
// current one, revoking all outstanding refresh tokens.
type ChangePasswordCommand struct {
	UserID      string
	OldPassword string
	NewPassword string
}

// CreateUserCommand creates a user without credentials (admin-style).
type CreateUserCommand struct {
	Name  string
	Email string
}

// GetUserQuery fetches a single user by ID for the read side.
type GetUserQuery struct {
	UserID string
}
