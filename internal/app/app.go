package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/conduit-backend/internal/clients/redis"
	"github.com/yungbote/conduit-backend/internal/db"
	"github.com/yungbote/conduit-backend/internal/observability"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Buses    Buses

	rdb          *goredis.Client
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "conduit-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	// Redis is optional; without it the flows skip rate limiting.
	var rdb *goredis.Client
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		rdb, err = redis.NewClient(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init redis: %w", err)
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg)

	buses, err := wireBuses(theDB, log, reposet, serviceset)
	if err != nil {
		log.Sync()
		return nil, err
	}

	flows := wireFlows(log, cfg, serviceset, rdb)
	handlerset := wireHandlers(log, buses)
	middlewareset := wireMiddleware(log)
	router := wireRouter(handlerset, middlewareset, flows)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Buses:        buses,
		rdb:          rdb,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
		a.rdb = nil
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
