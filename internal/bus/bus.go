// Package bus routes typed intents (commands and queries) to exactly one
// registered handler. Registration runs in an explicit bootstrap pass
// before the server accepts traffic; after that the registry is read-only
// and safe for unsynchronized concurrent dispatch.
package bus

import (
	"context"
	"reflect"

	"github.com/yungbote/conduit-backend/internal/domain"
)

// Handler processes one intent with the per-dispatch dependencies D the
// caller supplies. The bus is agnostic to what D contains.
type Handler[D any] func(ctx context.Context, intent any, deps D) (any, error)

// Bus maps an intent's dynamic type to a single handler. One instance
// exists per kind (commands, queries); the separation of reads from
// writes is a convention between handlers, not enforced here.
type Bus[D any] struct {
	name     string
	handlers map[reflect.Type]Handler[D]
}

func New[D any](name string) *Bus[D] {
	return &Bus[D]{
		name:     name,
		handlers: map[reflect.Type]Handler[D]{},
	}
}

// Register binds a handler to the dynamic type of intent. Registering a
// second handler for the same type is a configuration error. Must only be
// called during startup, before any Dispatch.
func (b *Bus[D]) Register(intent any, h Handler[D]) error {
	if intent == nil {
		return domain.NewError(domain.CodeConfig, b.name+".register", "nil intent type", nil)
	}
	if h == nil {
		return domain.NewError(domain.CodeConfig, b.name+".register", "nil handler for "+reflect.TypeOf(intent).String(), nil)
	}
	t := reflect.TypeOf(intent)
	if _, exists := b.handlers[t]; exists {
		return domain.NewError(domain.CodeConfig, b.name+".register", "handler already registered for "+t.String(), nil)
	}
	b.handlers[t] = h
	return nil
}

// Dispatch resolves the handler for the intent's dynamic type and invokes
// it. A missing handler is a programmer error surfaced as internal; a
// found handler's result and error pass through unchanged. The bus never
// retries, queues or times out.
func (b *Bus[D]) Dispatch(ctx context.Context, intent any, deps D) (any, error) {
	h, ok := b.handlers[reflect.TypeOf(intent)]
	if !ok {
		return nil, domain.NewError(domain.CodeInternal, b.name+".dispatch", "no handler registered for "+reflect.TypeOf(intent).String(), nil)
	}
	return h(ctx, intent, deps)
}

// Registered returns the number of bound intent types.
func (b *Bus[D]) Registered() int {
	return len(b.handlers)
}
