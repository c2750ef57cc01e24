package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/application"
	"github.com/yungbote/conduit-backend/internal/platform/logger"
)

type AuthHandler struct {
	log      *logger.Logger
	commands *application.CommandBus
	deps     application.Deps
}

func NewAuthHandler(baseLog *logger.Logger, commands *application.CommandBus, deps application.Deps) *AuthHandler {
	return &AuthHandler{
		log:      baseLog.With("handler", "auth"),
		commands: commands,
		deps:     deps,
	}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := ah.commands.Dispatch(c.Request.Context(), application.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, ah.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := ah.commands.Dispatch(c.Request.Context(), application.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}, ah.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := ah.commands.Dispatch(c.Request.Context(), application.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	}, ah.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	_, err := ah.commands.Dispatch(c.Request.Context(), application.LogoutUserCommand{
		RefreshToken: req.RefreshToken,
	}, ah.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": "true"})
}

// ChangePassword acts on the authenticated user. The id comes from the
// pipeline state, never from the request body.
func (ah *AuthHandler) ChangePassword(c *gin.Context) {
	userID := AuthenticatedUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	_, err := ah.commands.Dispatch(c.Request.Context(), application.ChangePasswordCommand{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}, ah.deps)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": "true"})
}
