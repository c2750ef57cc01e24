package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/pipeline/stages"
	"github.com/yungbote/conduit-backend/internal/requestdata"
)

// AuthenticatedUserID returns the user id the authentication stage placed
// in the pipeline state, or "" on routes without an authenticated flow.
func AuthenticatedUserID(c *gin.Context) string {
	rc := requestdata.GetRequestContext(c.Request.Context())
	if rc == nil {
		return ""
	}
	return rc.GetString(stages.StateUserID)
}
