package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/conduit-backend/internal/domain"
)

// PasswordHasher hashes and verifies user passwords. Tests substitute a
// cheap implementation; production wires bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type bcryptHasher struct {
	cost int
}

func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.Wrap(domain.CodeInternal, "hasher.hash", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
