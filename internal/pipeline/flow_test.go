package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type recordingStage struct {
	name     string
	calls    *[]string
	category Category
	resolve  func(rc *RequestContext) error
}

func (s *recordingStage) Category() Category {
	if s.category == "" {
		return CategoryCustom
	}
	return s.category
}

func (s *recordingStage) Resolve(_ context.Context, rc *RequestContext) error {
	*s.calls = append(*s.calls, s.name)
	if s.resolve != nil {
		return s.resolve(rc)
	}
	return nil
}

func newContext() *RequestContext {
	return NewRequestContext(NewRequest(http.MethodGet, "/things", http.Header{}))
}

func TestFlowRunsStagesInOrder(t *testing.T) {
	var calls []string
	flow := NewFlow(
		&recordingStage{name: "A", calls: &calls},
		&recordingStage{name: "B", calls: &calls},
		&recordingStage{name: "C", calls: &calls},
	)

	rc := newContext()
	if err := flow.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 3 || calls[0] != "A" || calls[1] != "B" || calls[2] != "C" {
		t.Fatalf("expected [A B C], got %v", calls)
	}
	if rc.Aborted() {
		t.Fatal("flow should not be aborted")
	}
}

func TestFlowShortCircuitsOnAbort(t *testing.T) {
	var calls []string
	flow := NewFlow(
		&recordingStage{name: "A", calls: &calls, resolve: func(rc *RequestContext) error {
			rc.Set("from_a", "kept")
			return nil
		}},
		&recordingStage{name: "B", calls: &calls, resolve: func(rc *RequestContext) error {
			rc.Set("from_b", "kept")
			rc.Abort(AbortResult{Status: 401, Code: "unauthenticated", Message: "invalid token"})
			return nil
		}},
		&recordingStage{name: "C", calls: &calls, resolve: func(rc *RequestContext) error {
			rc.Set("from_c", "should never happen")
			return nil
		}},
	)

	rc := newContext()
	if err := flow.Run(context.Background(), rc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 2 || calls[1] != "B" {
		t.Fatalf("expected [A B], got %v", calls)
	}
	if !rc.Aborted() {
		t.Fatal("expected aborted context")
	}
	res := rc.AbortResult()
	if res == nil || res.Status != 401 || res.Message != "invalid token" {
		t.Fatalf("unexpected abort result: %+v", res)
	}
	// B's mutations survive the abort, C's never happen.
	if rc.GetString("from_b") != "kept" {
		t.Fatal("abort must preserve mutations made before it")
	}
	if _, ok := rc.Get("from_c"); ok {
		t.Fatal("stage after abort must not run")
	}
}

func TestFlowFailsFastOnStageError(t *testing.T) {
	var calls []string
	boom := errors.New("stage B exploded")
	flow := NewFlow(
		&recordingStage{name: "A", calls: &calls},
		&recordingStage{name: "B", calls: &calls, resolve: func(*RequestContext) error {
			return boom
		}},
		&recordingStage{name: "C", calls: &calls},
	)

	rc := newContext()
	err := flow.Run(context.Background(), rc)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the stage's own error, got %v", err)
	}
	if err != boom {
		t.Fatalf("error must propagate unwrapped, got %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected [A B], got %v", calls)
	}
}

func TestFlowErrorTakesPrecedenceOverAbort(t *testing.T) {
	var calls []string
	boom := errors.New("abort and fail")
	flow := NewFlow(
		&recordingStage{name: "A", calls: &calls, resolve: func(rc *RequestContext) error {
			rc.Abort(AbortResult{Status: 403, Code: "permission_denied"})
			return boom
		}},
	)

	rc := newContext()
	if err := flow.Run(context.Background(), rc); err != boom {
		t.Fatalf("error must win over abort, got %v", err)
	}
}

func TestFlowIgnoresCallerSliceMutation(t *testing.T) {
	var calls []string
	stages := []Stage{&recordingStage{name: "A", calls: &calls}}
	flow := NewFlow(stages...)
	stages[0] = &recordingStage{name: "Z", calls: &calls}

	if err := flow.Run(context.Background(), newContext()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 1 || calls[0] != "A" {
		t.Fatalf("flow composition must be fixed at construction, got %v", calls)
	}
}

func TestFlowReusableAcrossRequests(t *testing.T) {
	var calls []string
	flow := NewFlow(&recordingStage{name: "A", calls: &calls})

	first := newContext()
	first.Abort(AbortResult{Status: 429})
	if err := flow.Run(context.Background(), first); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 0 {
		t.Fatal("pre-aborted context must not execute any stage")
	}

	second := newContext()
	if err := flow.Run(context.Background(), second); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 1 {
		t.Fatal("fresh context must execute stages; abort state must not leak between requests")
	}
}
