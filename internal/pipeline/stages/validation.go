package stages

import (
	"context"
	"net/http"

	"github.com/yungbote/conduit-backend/internal/pipeline"
)

// CheckFunc inspects the request context and returns a human-readable
// reason when the request should be rejected, or "" to let it through.
type CheckFunc func(rc *pipeline.RequestContext) string

// ValidationStage runs a configured request check beyond schema binding.
// A non-empty rejection reason aborts with 400.
type ValidationStage struct {
	check CheckFunc
}

func NewValidationStage(check CheckFunc) *ValidationStage {
	return &ValidationStage{check: check}
}

func (s *ValidationStage) Category() pipeline.Category {
	return pipeline.CategoryValidation
}

func (s *ValidationStage) Resolve(_ context.Context, rc *pipeline.RequestContext) error {
	if s.check == nil {
		return nil
	}
	if reason := s.check(rc); reason != "" {
		rc.Abort(pipeline.AbortResult{
			Status:  http.StatusBadRequest,
			Code:    "validation",
			Message: reason,
		})
	}
	return nil
}
