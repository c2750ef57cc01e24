package application

import (
	"github.com/yungbote/conduit-backend/internal/bus"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
	"github.com/yungbote/conduit-backend/internal/repos"
	"github.com/yungbote/conduit-backend/internal/services"
	"github.com/yungbote/conduit-backend/internal/uow"
)

// Deps are the per-dispatch collaborators the transport layer hands to
// the buses. Command handlers open transactional scopes through UoW;
// query handlers read through Users directly, outside any scope.
type Deps struct {
	Log    *logger.Logger
	UoW    uow.Factory
	Users  repos.UserRepo
	Hasher services.PasswordHasher
	Tokens *services.TokenService
}

// CommandBus routes command intents; QueryBus routes query intents. Two
// independent instances keep the write and read sides apart.
type (
	CommandBus = bus.Bus[Deps]
	QueryBus   = bus.Bus[Deps]
)

// NewCommandBus returns an empty command bus.
func NewCommandBus() *CommandBus {
	return bus.New[Deps]("commands")
}

// NewQueryBus returns an empty query bus.
func NewQueryBus() *QueryBus {
	return bus.New[Deps]("queries")
}

// RegisterHandlers is the startup registration pass: it binds every
// intent type to its handler before the server begins accepting traffic.
// Any error is a wiring bug and should abort boot.
func RegisterHandlers(commands *CommandBus, queries *QueryBus) error {
	commandPairs := []struct {
		intent  any
		handler bus.Handler[Deps]
	}{
		{RegisterUserCommand{}, HandleRegisterUser},
		{LoginUserCommand{}, HandleLoginUser},
		{RefreshTokenCommand{}, HandleRefreshToken},
		{LogoutUserCommand{}, HandleLogoutUser},
		{ChangePasswordCommand{}, HandleChangePassword},
		{CreateUserCommand{}, HandleCreateUser},
	}
	for _, p := range commandPairs {
		if err := commands.Register(p.intent, p.handler); err != nil {
			return err
		}
	}

	queryPairs := []struct {
		intent  any
		handler bus.Handler[Deps]
	}{
		{GetUserQuery{}, HandleGetUser},
	}
	for _, p := range queryPairs {
		if err := queries.Register(p.intent, p.handler); err != nil {
			return err
		}
	}
	return nil
}
