package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/conduit-backend/internal/handlers"
	"github.com/yungbote/conduit-backend/internal/middleware"
	"github.com/yungbote/conduit-backend/internal/pipeline"
)

type RouterConfig struct {
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	Flow        *middleware.FlowMiddleware

	// PublicFlow runs on unauthenticated routes, AuthFlow on routes that
	// require a valid access token.
	PublicFlow *pipeline.Flow
	AuthFlow   *pipeline.Flow

	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("conduit-backend"))

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:80", "http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")

	// ===============
	// || Public    ||
	// ===============
	public := api.Group("")
	public.Use(cfg.Flow.Run(cfg.PublicFlow))
	{
		public.POST("/auth/register", cfg.AuthHandler.Register)
		public.POST("/auth/login", cfg.AuthHandler.Login)
		public.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		public.POST("/auth/logout", cfg.AuthHandler.Logout)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("")
	protected.Use(cfg.Flow.Run(cfg.AuthFlow))
	{
		protected.POST("/auth/change-password", cfg.AuthHandler.ChangePassword)
		protected.GET("/users/:id", cfg.UserHandler.GetUser)
		protected.POST("/users", cfg.UserHandler.CreateUser)
	}

	return router
}
