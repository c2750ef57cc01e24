package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/requestdata"
)

// FlowMiddleware adapts flows to gin. Each route names the flow it runs;
// the middleware translates a stage abort into the HTTP response and a
// stage error into an opaque 500.
type FlowMiddleware struct {
	log *logger.Logger
}

func NewFlowMiddleware(baseLog *logger.Logger) *FlowMiddleware {
	return &FlowMiddleware{log: baseLog.With("middleware", "flow")}
}

func (fm *FlowMiddleware) Run(flow *pipeline.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := pipeline.NewRequestContext(pipeline.NewRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Request.Header,
		))

		if err := flow.Run(c.Request.Context(), rc); err != nil {
			fm.log.Error("flow stage failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "internal", "message": "internal error"},
			})
			return
		}

		if rc.Aborted() {
			res := rc.AbortResult()
			c.AbortWithStatusJSON(res.Status, gin.H{
				"error": gin.H{"code": res.Code, "message": res.Message},
			})
			return
		}

		c.Request = c.Request.WithContext(requestdata.WithRequestContext(c.Request.Context(), rc))
		c.Next()
	}
}
