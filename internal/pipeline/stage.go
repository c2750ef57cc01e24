package pipeline

import "context"

// Category tags a stage for diagnostics and ordering conventions. It has
// no effect on execution.
type Category string

const (
	CategoryAuthentication Category = "authentication"
	CategoryAuthorization  Category = "authorization"
	CategoryLogging        Category = "logging"
	CategoryValidation     Category = "validation"
	CategoryCustom         Category = "custom"
)

// Stage is a single unit of pre-handler work. Implementations receive
// static configuration at construction time only; per-request data belongs
// in the RequestContext, never in stage fields. A stage signals
// short-circuit by calling rc.Abort; a returned error halts the flow and
// propagates to the caller unchanged.
type Stage interface {
	Category() Category
	Resolve(ctx context.Context, rc *RequestContext) error
}
