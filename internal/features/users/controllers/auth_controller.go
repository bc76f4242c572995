package users_controllers

import (
	"net/http"

	"creativeflow/internal/config"
	user_dto "creativeflow/internal/features/users/dto"
	users_identity "creativeflow/internal/features/users/identity"
	user_middleware "creativeflow/internal/features/users/middleware"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/util/app_errors"
	"creativeflow/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userService     *users_services.UserService
	sessionVerifier *users_identity.SessionVerifier
}

// RegisterRoutes mounts the login flow. /login exists only in mock auth mode.
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	if config.GetEnv().IsMockAuth() {
		router.GET("/login", c.Login)
	}
	router.GET("/logout", c.Logout)
}

func (c *AuthController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/user", c.GetCurrentUser)
}

// Login
// @Summary Development login
// @Description Signs in the configured development user and redirects to the app root
// @Tags auth
// @Success 302
// @Router /login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	user, err := c.userService.EnsureDevUser()
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	if err := c.sessionVerifier.Login(ctx.Writer, ctx.Request, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	logger.GetLogger().Info("development user signed in", "email", user.Email)
	ctx.Redirect(http.StatusFound, "/")
}

// Logout
// @Summary Logout
// @Description Clears the session and redirects to the app root
// @Tags auth
// @Success 302
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.sessionVerifier.Logout(ctx.Writer, ctx.Request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// GetCurrentUser
// @Summary Get current user
// @Description Returns the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /auth/user [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	user, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx.JSON(http.StatusOK, user_dto.NewUserProfileResponseDTO(user))
}
