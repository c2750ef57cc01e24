package stages

import (
	"context"
	"net/http"

	"github.com/yungbote/conduit-backend/internal/pipeline"
)

// PermissionStage checks that every statically-required permission is
// present in context state (written by the authentication stage). With no
// required permissions it always passes.
type PermissionStage struct {
	required []string
}

func NewPermissionStage(required ...string) *PermissionStage {
	owned := make([]string, len(required))
	copy(owned, required)
	return &PermissionStage{required: owned}
}

func (s *PermissionStage) Category() pipeline.Category {
	return pipeline.CategoryAuthorization
}

func (s *PermissionStage) Resolve(_ context.Context, rc *pipeline.RequestContext) error {
	if len(s.required) == 0 {
		return nil
	}
	granted := map[string]bool{}
	if v, ok := rc.Get(StatePermissions); ok {
		if perms, ok := v.([]string); ok {
			for _, p := range perms {
				granted[p] = true
			}
		}
	}
	for _, need := range s.required {
		if !granted[need] {
			rc.Abort(pipeline.AbortResult{
				Status:  http.StatusForbidden,
				Code:    "permission_denied",
				Message: "missing permission: " + need,
			})
			return nil
		}
	}
	return nil
}
