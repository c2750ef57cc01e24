package app

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/pipeline/stages"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type Flows struct {
	Public *pipeline.Flow
	Auth   *pipeline.Flow
}

// wireFlows builds the per-route stage pipelines. When a redis client is
// available a rate limit stage runs first on every flow; without one the
// flows carry no limiter.
func wireFlows(log *logger.Logger, cfg Config, serviceset Services, rdb *goredis.Client) Flows {
	log.Info("Wiring flows...")

	var prefix []pipeline.Stage
	if rdb != nil {
		prefix = append(prefix, stages.NewRateLimitStage(log, rdb, cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	public := append(append([]pipeline.Stage{}, prefix...),
		stages.NewLoggingStage(log),
	)
	authed := append(append([]pipeline.Stage{}, prefix...),
		stages.NewAuthenticationStage(serviceset.Tokens),
		stages.NewPermissionStage(),
		stages.NewLoggingStage(log),
	)

	return Flows{
		Public: pipeline.NewFlow(public...),
		Auth:   pipeline.NewFlow(authed...),
	}
}
