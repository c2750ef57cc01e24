package bus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/conduit-backend/internal/domain"
)

type testDeps struct {
	calls *[]string
}

type pingCommand struct{ Message string }
type unroutedCommand struct{}

func TestBusDispatchesToRegisteredHandler(t *testing.T) {
	b := New[testDeps]("commands")
	err := b.Register(pingCommand{}, func(_ context.Context, intent any, deps testDeps) (any, error) {
		cmd := intent.(pingCommand)
		*deps.calls = append(*deps.calls, cmd.Message)
		return "pong:" + cmd.Message, nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var calls []string
	result, err := b.Dispatch(context.Background(), pingCommand{Message: "hello"}, testDeps{calls: &calls})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result != "pong:hello" {
		t.Fatalf("result = %v", result)
	}
	if len(calls) != 1 || calls[0] != "hello" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestBusRejectsDuplicateRegistration(t *testing.T) {
	b := New[testDeps]("commands")
	noop := func(context.Context, any, testDeps) (any, error) { return nil, nil }

	if err := b.Register(pingCommand{}, noop); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := b.Register(pingCommand{}, noop)
	if !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if b.Registered() != 1 {
		t.Fatalf("registered = %d, want 1", b.Registered())
	}
}

func TestBusDispatchMiss(t *testing.T) {
	b := New[testDeps]("queries")
	var calls []string
	_, err := b.Dispatch(context.Background(), unroutedCommand{}, testDeps{calls: &calls})
	if !domain.IsCode(err, domain.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no handler registered") {
		t.Fatalf("unexpected message: %v", err)
	}
	if len(calls) != 0 {
		t.Fatal("dispatch miss must have no side effects")
	}
}

func TestBusPropagatesHandlerErrorUnchanged(t *testing.T) {
	b := New[testDeps]("commands")
	boom := errors.New("handler failed")
	if err := b.Register(pingCommand{}, func(context.Context, any, testDeps) (any, error) {
		return nil, boom
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := b.Dispatch(context.Background(), pingCommand{}, testDeps{})
	if err != boom {
		t.Fatalf("expected the handler's own error, got %v", err)
	}
}

func TestBusRejectsNilHandler(t *testing.T) {
	b := New[testDeps]("commands")
	if err := b.Register(pingCommand{}, nil); !domain.IsCode(err, domain.CodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
