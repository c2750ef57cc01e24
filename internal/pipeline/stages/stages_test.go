package stages

import (
	"context"
	"net/http"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/services"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

func requestWithToken(token string) *pipeline.RequestContext {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return pipeline.NewRequestContext(pipeline.NewRequest(http.MethodGet, "/api/v1/users/u-123", header))
}

func TestAuthenticatedFlowWithValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour)
	access, err := tokens.CreateAccessToken("u-123", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	flow := pipeline.NewFlow(
		NewAuthenticationStage(tokens),
		NewLoggingStage(testLogger(t)),
	)

	rc := requestWithToken(access)
	if err := flow.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rc.Aborted() {
		t.Fatalf("expected non-aborted context, abort=%+v", rc.AbortResult())
	}
	if got := rc.GetString(StateUserID); got != "u-123" {
		t.Fatalf("state[user_id] = %q, want u-123", got)
	}
}

func TestAuthenticationStageAbortsOnInvalidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour)
	var afterRan bool
	after := NewValidationStage(func(*pipeline.RequestContext) string {
		afterRan = true
		return ""
	})

	flow := pipeline.NewFlow(NewAuthenticationStage(tokens), after)
	rc := requestWithToken("not-a-jwt")
	if err := flow.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rc.Aborted() {
		t.Fatal("expected aborted context")
	}
	res := rc.AbortResult()
	if res.Status != http.StatusUnauthorized || res.Message != "invalid token" {
		t.Fatalf("unexpected abort result: %+v", res)
	}
	if afterRan {
		t.Fatal("stage after abort must not run")
	}
}

func TestAuthenticationStageRejectsRefreshTokenAsAccess(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour)
	refresh, _, _, err := tokens.CreateRefreshToken("u-123")
	if err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}
	rc := requestWithToken(refresh)
	stage := NewAuthenticationStage(tokens)
	if err := stage.Resolve(context.Background(), rc); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rc.Aborted() {
		t.Fatal("refresh token must not authenticate a request")
	}
}

func TestPermissionStage(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		granted  []string
		aborted  bool
	}{
		{name: "no requirements", required: nil, granted: nil, aborted: false},
		{name: "granted", required: []string{"users:read"}, granted: []string{"users:read"}, aborted: false},
		{name: "missing", required: []string{"users:write"}, granted: []string{"users:read"}, aborted: true},
		{name: "no grants at all", required: []string{"users:read"}, granted: nil, aborted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := requestWithToken("")
			if tt.granted != nil {
				rc.Set(StatePermissions, tt.granted)
			}
			stage := NewPermissionStage(tt.required...)
			if err := stage.Resolve(context.Background(), rc); err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if rc.Aborted() != tt.aborted {
				t.Fatalf("aborted = %v, want %v", rc.Aborted(), tt.aborted)
			}
			if tt.aborted && rc.AbortResult().Status != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rc.AbortResult().Status)
			}
		})
	}
}

func TestValidationStageAbortsWithReason(t *testing.T) {
	stage := NewValidationStage(func(rc *pipeline.RequestContext) string {
		if rc.Request().Header("Content-Type") != "application/json" {
			return "content type must be application/json"
		}
		return ""
	})
	rc := requestWithToken("")
	if err := stage.Resolve(context.Background(), rc); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rc.Aborted() || rc.AbortResult().Status != http.StatusBadRequest {
		t.Fatalf("expected 400 abort, got %+v", rc.AbortResult())
	}
}

func TestRateLimitStageFailsOpenWithoutRedis(t *testing.T) {
	// Client pointed at a closed port: every command errors and the stage
	// must let the request through.
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })

	stage := NewRateLimitStage(testLogger(t), rdb, 1, time.Minute)
	rc := requestWithToken("")
	if err := stage.Resolve(context.Background(), rc); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rc.Aborted() {
		t.Fatal("rate limit must fail open when redis is unavailable")
	}
}

func TestStageCategories(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour)
	tests := []struct {
		stage pipeline.Stage
		want  pipeline.Category
	}{
		{NewAuthenticationStage(tokens), pipeline.CategoryAuthentication},
		{NewPermissionStage(), pipeline.CategoryAuthorization},
		{NewLoggingStage(testLogger(t)), pipeline.CategoryLogging},
		{NewValidationStage(func(*pipeline.RequestContext) string { return "" }), pipeline.CategoryValidation},
		{NewRateLimitStage(testLogger(t), nil, 1, time.Minute), pipeline.CategoryCustom},
	}
	for _, tt := range tests {
		if got := tt.stage.Category(); got != tt.want {
			t.Fatalf("%T category = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
