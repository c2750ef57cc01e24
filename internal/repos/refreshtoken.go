package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/conduit-backend/internal/domain"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type RefreshTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tx *gorm.DB, tokenID uuid.UUID, at time.Time) error
	RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error)
}

type refreshTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRefreshTokenRepo(db *gorm.DB, baseLog *logger.Logger) RefreshTokenRepo {
	repoLog := baseLog.With("repo", "RefreshTokenRepo")
	return &refreshTokenRepo{db: db, log: repoLog}
}

func (rr *refreshTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *domain.RefreshToken) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(token).Error
}

func (rr *refreshTokenRepo) GetByTokenHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*domain.RefreshToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result domain.RefreshToken
	err := transaction.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *refreshTokenRepo) Revoke(ctx context.Context, tx *gorm.DB, tokenID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", at).Error
}

func (rr *refreshTokenRepo) RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
}

func (rr *refreshTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	res := transaction.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
