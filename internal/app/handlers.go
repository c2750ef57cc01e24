package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/handlers"
	"github.com/yungbote/conduit-backend/internal/middleware"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/server"
)

type Handlers struct {
	Auth *handlers.AuthHandler
	User *handlers.UserHandler
}

type Middleware struct {
	Flow *middleware.FlowMiddleware
}

func wireHandlers(log *logger.Logger, buses Buses) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth: handlers.NewAuthHandler(log, buses.Commands, buses.Deps),
		User: handlers.NewUserHandler(log, buses.Commands, buses.Queries, buses.Deps),
	}
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Flow: middleware.NewFlowMiddleware(log),
	}
}

func wireRouter(handlerset Handlers, middlewareset Middleware, flows Flows) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler: handlerset.Auth,
		UserHandler: handlerset.User,
		Flow:        middlewareset.Flow,
		PublicFlow:  flows.Public,
		AuthFlow:    flows.Auth,
	})
}
