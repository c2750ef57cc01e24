package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/conduit-backend/internal/domain"
	"github.com/yungbote/conduit-backend/internal/repos"
	"github.com/yungbote/conduit-backend/internal/repos/testutil"
)

func newUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Test",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUnitOfWorkCommitMakesWritesVisible(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))
	ctx := context.Background()

	u := factory.New()
	if err := u.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	user := newUser("commit@example.com")
	if err := u.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := u.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	outside := repos.NewUserRepo(db, testutil.Logger(t))
	got, err := outside.GetByID(ctx, nil, user.ID)
	if err != nil || got == nil {
		t.Fatalf("committed write not visible: got=%+v err=%v", got, err)
	}
}

func TestUnitOfWorkAtomicRollback(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))
	ctx := context.Background()

	userA := newUser("a@example.com")
	errBoom := errors.New("second write failed")

	err := Within(ctx, factory, func(u UnitOfWork) error {
		if err := u.Users().Create(ctx, userA); err != nil {
			return err
		}
		// Duplicate primary key forces the second write to fail.
		dup := newUser("b@example.com")
		dup.ID = userA.ID
		if err := u.Users().Create(ctx, dup); err != nil {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected handler error, got %v", err)
	}

	// Neither write may be visible to a fresh read outside the scope.
	outside := repos.NewUserRepo(db, testutil.Logger(t))
	got, err := outside.GetByID(ctx, nil, userA.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("write A leaked out of rolled-back scope: %+v", got)
	}
}

func TestUnitOfWorkDoubleBegin(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))
	ctx := context.Background()

	u := factory.New()
	if err := u.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := u.Begin(ctx); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("second Begin must be a config error, got %v", err)
	}
	if err := u.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
}

func TestUnitOfWorkIdempotentExitIsError(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))
	ctx := context.Background()

	u := factory.New()
	if err := u.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := u.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := u.Commit(); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("second Commit must be a config error, got %v", err)
	}
	if err := u.Rollback(); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("Rollback after Commit must be a config error, got %v", err)
	}

	v := factory.New()
	if err := v.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := v.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if err := v.Rollback(); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("second Rollback must be a config error, got %v", err)
	}
}

func TestUnitOfWorkExitBeforeBegin(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))

	u := factory.New()
	if err := u.Commit(); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("Commit before Begin must be a config error, got %v", err)
	}
	if u.Users() != nil || u.RefreshTokens() != nil {
		t.Fatal("stores must be nil outside an open scope")
	}
}

func TestWithinCancellationRollsBack(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))

	ctx, cancel := context.WithCancel(context.Background())
	user := newUser("cancelled@example.com")

	err := Within(ctx, factory, func(u UnitOfWork) error {
		if err := u.Users().Create(context.Background(), user); err != nil {
			return err
		}
		// Transport cancels mid-scope.
		cancel()
		return nil
	})
	if !domain.IsCode(err, domain.CodeRetryable) {
		t.Fatalf("cancellation must surface as retryable, got %v", err)
	}

	outside := repos.NewUserRepo(db, testutil.Logger(t))
	got, gerr := outside.GetByID(context.Background(), nil, user.ID)
	if gerr != nil {
		t.Fatalf("GetByID: %v", gerr)
	}
	if got != nil {
		t.Fatal("cancelled scope must never commit partial work")
	}
}

func TestWithinCommitsOnSuccess(t *testing.T) {
	db := testutil.DB(t)
	factory := NewGormFactory(db, testutil.Logger(t))
	ctx := context.Background()

	user := newUser("within@example.com")
	token := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: "hash-within",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}
	err := Within(ctx, factory, func(u UnitOfWork) error {
		if err := u.Users().Create(ctx, user); err != nil {
			return err
		}
		return u.RefreshTokens().Create(ctx, token)
	})
	if err != nil {
		t.Fatalf("Within: %v", err)
	}

	tokens := repos.NewRefreshTokenRepo(db, testutil.Logger(t))
	got, err := tokens.GetByTokenHash(ctx, nil, "hash-within")
	if err != nil || got == nil {
		t.Fatalf("cross-repository writes must commit together: got=%+v err=%v", got, err)
	}
}
