package requestdata

import (
	"context"

	"github.com/yungbote/conduit-backend/internal/pipeline"
)

type contextKey struct{}

var requestContextKey contextKey

// WithRequestContext attaches the pipeline state to the request-scoped
// context so handlers downstream of the flow can read it.
func WithRequestContext(ctx context.Context, rc *pipeline.RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// GetRequestContext returns the pipeline state attached by the flow
// middleware, or nil when the route ran no flow.
func GetRequestContext(ctx context.Context) *pipeline.RequestContext {
	val := ctx.Value(requestContextKey)
	if rc, ok := val.(*pipeline.RequestContext); ok {
		return rc
	}
	return nil
}
