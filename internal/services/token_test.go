package services

import (
	"testing"
	"time"

	"github.com/yungbote/conduit-backend/internal/domain"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", time.Minute, time.Hour)

	access, err := ts.CreateAccessToken("u-123", []string{"users:read"})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	claims, err := ts.ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "u-123" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("type = %q", claims.TokenType)
	}
	if len(claims.Permissions) != 1 || claims.Permissions[0] != "users:read" {
		t.Fatalf("permissions = %v", claims.Permissions)
	}
}

func TestTokenServiceRefreshCarriesTokenID(t *testing.T) {
	ts := NewTokenService("test-secret", time.Minute, time.Hour)

	refresh, tokenID, expiresAt, err := ts.CreateRefreshToken("u-123")
	if err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}
	if expiresAt.Before(time.Now().Add(30 * time.Minute)) {
		t.Fatalf("expiry too close: %v", expiresAt)
	}
	claims, err := ts.ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Fatalf("type = %q", claims.TokenType)
	}
	if claims.ID != tokenID.String() {
		t.Fatalf("jti = %q, want %q", claims.ID, tokenID)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenService("secret-a", time.Minute, time.Hour).CreateAccessToken("u-123", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	_, err = NewTokenService("secret-b", time.Minute, time.Hour).ParseToken(issued)
	if !domain.IsCode(err, domain.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	ts := NewTokenService("test-secret", -time.Minute, time.Hour)
	issued, err := ts.CreateAccessToken("u-123", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, err := ts.ParseToken(issued); !domain.IsCode(err, domain.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestHashTokenStable(t *testing.T) {
	ts := NewTokenService("test-secret", time.Minute, time.Hour)
	if ts.HashToken("abc") != ts.HashToken("abc") {
		t.Fatal("hash must be deterministic")
	}
	if ts.HashToken("abc") == ts.HashToken("abd") {
		t.Fatal("distinct tokens must hash differently")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher()
	hash, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Verify("hunter2", hash) {
		t.Fatal("expected verify to succeed")
	}
	if h.Verify("hunter3", hash) {
		t.Fatal("expected verify to fail for wrong password")
	}
}
