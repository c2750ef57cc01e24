// Package uow provides the scoped transactional unit of work command
// handlers enter to mutate persisted state. A unit of work moves through
// UNOPENED -> OPEN -> {COMMITTED, ROLLED_BACK}; the terminal states are
// final and a second exit attempt is a configuration error.
package uow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/conduit-backend/internal/domain"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/repos"
)

// UserStore is the user capability surface a unit of work hands out. All
// operations run on the scope's single transaction.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

// RefreshTokenStore is the refresh-token capability surface bound to the
// scope's transaction.
type RefreshTokenStore interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// UnitOfWork is an explicit transactional scope. Repositories obtained
// from it are valid only between Begin and the single Commit or Rollback;
// everything done through them commits or rolls back atomically. Scopes
// must not be nested and a unit of work is never reused after exit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	Users() UserStore
	RefreshTokens() RefreshTokenStore
}

// Factory builds one unit of work per logical operation.
type Factory interface {
	New() UnitOfWork
}

type state int

const (
	stateUnopened state = iota
	stateOpen
	stateCommitted
	stateRolledBack
)

func (s state) String() string {
	switch s {
	case stateUnopened:
		return "unopened"
	case stateOpen:
		return "open"
	case stateCommitted:
		return "committed"
	case stateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

type gormFactory struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewGormFactory returns a factory producing units of work over GORM
// transactions on db.
func NewGormFactory(db *gorm.DB, baseLog *logger.Logger) Factory {
	return &gormFactory{db: db, log: baseLog.With("component", "UnitOfWork")}
}

func (f *gormFactory) New() UnitOfWork {
	return &gormUnitOfWork{db: f.db, log: f.log}
}

type gormUnitOfWork struct {
	db     *gorm.DB
	log    *logger.Logger
	tx     *gorm.DB
	st     state
	users  UserStore
	tokens RefreshTokenStore
}

func (u *gormUnitOfWork) Begin(ctx context.Context) error {
	if u.st != stateUnopened {
		return domain.NewError(domain.CodeConfig, "uow.begin", "unit of work already "+u.st.String(), nil)
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return domain.MapError("uow.begin", tx.Error)
	}
	u.tx = tx
	u.st = stateOpen
	u.users = &boundUserStore{repo: repos.NewUserRepo(u.db, u.log), tx: tx}
	u.tokens = &boundRefreshTokenStore{repo: repos.NewRefreshTokenRepo(u.db, u.log), tx: tx}
	return nil
}

func (u *gormUnitOfWork) Commit() error {
	if u.st != stateOpen {
		return domain.NewError(domain.CodeConfig, "uow.commit", "unit of work is "+u.st.String()+", not open", nil)
	}
	if err := u.tx.Commit().Error; err != nil {
		// A failed commit leaves nothing applied; the scope is spent
		// either way.
		u.st = stateRolledBack
		u.close()
		return domain.MapError("uow.commit", err)
	}
	u.st = stateCommitted
	u.close()
	return nil
}

func (u *gormUnitOfWork) Rollback() error {
	if u.st != stateOpen {
		return domain.NewError(domain.CodeConfig, "uow.rollback", "unit of work is "+u.st.String()+", not open", nil)
	}
	err := u.tx.Rollback().Error
	u.st = stateRolledBack
	u.close()
	if err != nil {
		return domain.MapError("uow.rollback", err)
	}
	return nil
}

func (u *gormUnitOfWork) close() {
	u.users = nil
	u.tokens = nil
	u.tx = nil
}

// Users returns the user store, or nil outside an open scope.
func (u *gormUnitOfWork) Users() UserStore {
	return u.users
}

// RefreshTokens returns the refresh-token store, or nil outside an open
// scope.
func (u *gormUnitOfWork) RefreshTokens() RefreshTokenStore {
	return u.tokens
}

// Within runs fn inside a fresh unit of work: commit on a nil return,
// rollback on error or on cancellation of ctx. The error fn returned (or
// the commit failure) propagates to the caller; rollback failures are
// secondary and dropped in favor of the original error.
func Within(ctx context.Context, factory Factory, fn func(u UnitOfWork) error) error {
	u := factory.New()
	if err := u.Begin(ctx); err != nil {
		return err
	}
	if err := fn(u); err != nil {
		_ = u.Rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = u.Rollback()
		return domain.MapError("uow", err)
	}
	return u.Commit()
}

type boundUserStore struct {
	repo repos.UserRepo
	tx   *gorm.DB
}

func (s *boundUserStore) Create(ctx context.Context, user *domain.User) error {
	return s.repo.Create(ctx, s.tx, user)
}
func (s *boundUserStore) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, s.tx, userID)
}
func (s *boundUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, s.tx, email)
}
func (s *boundUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, s.tx, email)
}
func (s *boundUserStore) Update(ctx context.Context, user *domain.User) error {
	return s.repo.Update(ctx, s.tx, user)
}

type boundRefreshTokenStore struct {
	repo repos.RefreshTokenRepo
	tx   *gorm.DB
}

func (s *boundRefreshTokenStore) Create(ctx context.Context, token *domain.RefreshToken) error {
	return s.repo.Create(ctx, s.tx, token)
}
func (s *boundRefreshTokenStore) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return s.repo.GetByTokenHash(ctx, s.tx, tokenHash)
}
func (s *boundRefreshTokenStore) Revoke(ctx context.Context, tokenID uuid.UUID, at time.Time) error {
	return s.repo.Revoke(ctx, s.tx, tokenID, at)
}
func (s *boundRefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return s.repo.RevokeAllForUser(ctx, s.tx, userID, at)
}
