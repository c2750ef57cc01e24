package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/conduit-backend/internal/application"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/uow"
)

type Buses struct {
	Commands *application.CommandBus
	Queries  *application.QueryBus
	Deps     application.Deps
}

// wireBuses runs the startup registration pass. A registration error is a
// wiring bug and aborts the boot.
func wireBuses(db *gorm.DB, log *logger.Logger, reposet Repos, serviceset Services) (Buses, error) {
	log.Info("Wiring buses...")
	commands := application.NewCommandBus()
	queries := application.NewQueryBus()
	if err := application.RegisterHandlers(commands, queries); err != nil {
		return Buses{}, fmt.Errorf("register handlers: %w", err)
	}
	return Buses{
		Commands: commands,
		Queries:  queries,
		Deps: application.Deps{
			Log:    log,
			UoW:    uow.NewGormFactory(db, log),
			Users:  reposet.User,
			Hasher: serviceset.Hasher,
			Tokens: serviceset.Tokens,
		},
	}, nil
}
