package stages

import (
	"context"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

// LoggingStage logs request method, path and the authenticated user when
// one is present. It never aborts.
type LoggingStage struct {
	log *logger.Logger
}

func NewLoggingStage(log *logger.Logger) *LoggingStage {
	return &LoggingStage{log: log.With("stage", "LoggingStage")}
}

func (s *LoggingStage) Category() pipeline.Category {
	return pipeline.CategoryLogging
}

func (s *LoggingStage) Resolve(_ context.Context, rc *pipeline.RequestContext) error {
	req := rc.Request()
	userID := rc.GetString(StateUserID)
	if userID == "" {
		userID = "anonymous"
	}
	s.log.Info("Request", "method", req.Method, "path", req.Path, "user", userID)
	return nil
}
