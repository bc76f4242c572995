package users_controllers

import (
	"net/http"

	user_dto "creativeflow/internal/features/users/dto"
	user_enums "creativeflow/internal/features/users/enums"
	user_middleware "creativeflow/internal/features/users/middleware"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/util/app_errors"
	"creativeflow/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.UserManagementService
}

func (c *ManagementController) RegisterRoutes(router *gin.RouterGroup) {
	adminRoutes := router.Group("/admin/users")
	adminRoutes.Use(user_middleware.RequireRole(user_enums.UserRoleAdmin))

	adminRoutes.GET("", c.GetUsers)
	adminRoutes.GET("/:id", c.GetUserProfile)
	adminRoutes.PUT("/:id", c.UpdateUser)
	adminRoutes.PUT("/:id/role", c.ChangeUserRole)
	adminRoutes.DELETE("/:id", c.DeleteUser)
}

// GetUsers
// @Summary List users
// @Description Get list of users, newest first (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of items per page" default(50)
// @Param offset query int false "Page offset" default(0)
// @Param beforeDate query string false "Filter users created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /admin/users [get]
func (c *ManagementController) GetUsers(ctx *gin.Context) {
	user, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request := &user_dto.ListUsersRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if request.Limit <= 0 || request.Limit > 200 {
		request.Limit = 50
	}
	if request.Offset < 0 {
		request.Offset = 0
	}

	users, total, err := c.managementService.GetUsers(user, request.Limit, request.Offset, request.BeforeDate)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	userProfiles := make([]user_dto.UserProfileResponseDTO, len(users))
	for i, u := range users {
		userProfiles[i] = user_dto.NewUserProfileResponseDTO(u)
	}

	ctx.JSON(http.StatusOK, user_dto.ListUsersResponseDTO{
		Users: userProfiles,
		Total: total,
	})
}

// GetUserProfile
// @Summary Get user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/users/{id} [get]
func (c *ManagementController) GetUserProfile(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := c.managementService.GetUserProfile(userID, currentUser)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user_dto.NewUserProfileResponseDTO(user))
}

// UpdateUser
// @Summary Update user profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body users_dto.UpdateUserRequestDTO true "Profile fields"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/users/{id} [put]
func (c *ManagementController) UpdateUser(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request user_dto.UpdateUserRequestDTO
	if err := validation.BindStrictJSON(ctx, &request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	user, err := c.managementService.UpdateUser(userID, &request, currentUser)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user_dto.NewUserProfileResponseDTO(user))
}

// ChangeUserRole
// @Summary Change user role
// @Description Change a user's role (admin only, not your own)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body users_dto.ChangeUserRoleRequestDTO true "Role change data"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/users/{id}/role [put]
func (c *ManagementController) ChangeUserRole(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request user_dto.ChangeUserRoleRequestDTO
	if err := validation.BindStrictJSON(ctx, &request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	user, err := c.managementService.ChangeUserRole(userID, request.Role, currentUser)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user_dto.NewUserProfileResponseDTO(user))
}

// DeleteUser
// @Summary Delete user
// @Description Delete a user and its memberships (admin only, not yourself)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/users/{id} [delete]
func (c *ManagementController) DeleteUser(ctx *gin.Context) {
	currentUser, ok := user_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.managementService.DeleteUser(userID, currentUser); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
