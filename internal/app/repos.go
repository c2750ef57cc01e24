package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	RefreshToken repos.RefreshTokenRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		RefreshToken: repos.NewRefreshTokenRepo(db, log),
	}
}
