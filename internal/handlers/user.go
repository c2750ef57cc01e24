package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/application"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type UserHandler struct {
	log      *logger.Logger
	commands *application.CommandBus
	queries  *application.QueryBus
	deps     application.Deps
}

func NewUserHandler(baseLog *logger.Logger, commands *application.CommandBus, queries *application.QueryBus, deps application.Deps) *UserHandler {
	return &UserHandler{
		log:      baseLog.With("handler", "user"),
		commands: commands,
		queries:  queries,
		deps:     deps,
	}
}

func (uh *UserHandler) GetUser(c *gin.Context) {
	result, err := uh.queries.Dispatch(c.Request.Context(), application.GetUserQuery{
		UserID: c.Param("id"),
	}, uh.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := uh.commands.Dispatch(c.Request.Context(), application.CreateUserCommand{
		Name:  req.Name,
		Email: req.Email,
	}, uh.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, result)
}
