package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"not null;column:name" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string     `gorm:"not null;column:password_hash" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// NewUser builds a user with invariants enforced. The password hash may be
// empty for users created through the admin-style CreateUser path.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, WithDetails(CodeValidation, "user.new", "name must be non-empty", map[string]string{"field": "name"})
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, WithDetails(CodeValidation, "user.new", "email must contain @", map[string]string{"field": "email"})
	}
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// SetPasswordHash replaces the stored hash and bumps the update timestamp.
func (u *User) SetPasswordHash(hash string) {
	now := time.Now().UTC()
	u.PasswordHash = hash
	u.UpdatedAt = &now
}
