package stages

import (
	"context"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/conduit-backend/internal/pipeline"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

// RateLimitStage enforces a fixed-window request limit per client via a
// redis counter. When redis is unreachable the stage fails open: the
// request proceeds and the failure is logged.
type RateLimitStage struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	window time.Duration
	keyFn  func(rc *pipeline.RequestContext) string
}

func NewRateLimitStage(log *logger.Logger, rdb *goredis.Client, limit int, window time.Duration) *RateLimitStage {
	return &RateLimitStage{
		log:    log.With("stage", "RateLimitStage"),
		rdb:    rdb,
		limit:  limit,
		window: window,
		keyFn:  defaultKey,
	}
}

func defaultKey(rc *pipeline.RequestContext) string {
	req := rc.Request()
	client := rc.GetString(StateUserID)
	if client == "" {
		client = req.Header("X-Forwarded-For")
	}
	if client == "" {
		client = "anonymous"
	}
	return "ratelimit:" + req.Path + ":" + client
}

func (s *RateLimitStage) Category() pipeline.Category {
	return pipeline.CategoryCustom
}

func (s *RateLimitStage) Resolve(ctx context.Context, rc *pipeline.RequestContext) error {
	key := s.keyFn(rc)

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn("Rate limit check failed, allowing request", "key", key, "error", err)
		return nil
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, s.window).Err(); err != nil {
			s.log.Warn("Rate limit window expire failed", "key", key, "error", err)
		}
	}
	if int(count) > s.limit {
		rc.Abort(pipeline.AbortResult{
			Status:  http.StatusTooManyRequests,
			Code:    "rate_limited",
			Message: "too many requests",
		})
	}
	return nil
}
