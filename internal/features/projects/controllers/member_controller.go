package projects_controllers

import (
	"net/http"

	projects_dto "creativeflow/internal/features/projects/dto"
	projects_services "creativeflow/internal/features/projects/services"
	users_middleware "creativeflow/internal/features/users/middleware"
	"creativeflow/internal/util/app_errors"
	"creativeflow/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberController struct {
	memberService *projects_services.MemberService
}

func (c *MemberController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/projects/:id/members")

	memberRoutes.GET("", c.GetMembers)
	memberRoutes.POST("", c.AddMember)
	memberRoutes.DELETE("/:userId", c.RemoveMember)
}

// GetMembers
// @Summary List project members
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/members [get]
func (c *MemberController) GetMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.memberService.GetMembers(projectID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add project member
// @Description Adds an existing user by email as admin or member
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 201 {object} projects_dto.ProjectMemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{id}/members [post]
func (c *MemberController) AddMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.AddMemberRequestDTO
	if err := validation.BindStrictJSON(ctx, &request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	member, err := c.memberService.AddMember(projectID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// RemoveMember
// @Summary Remove project member
// @Description The project owner cannot be removed
// @Tags project-members
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/members/{userId} [delete]
func (c *MemberController) RemoveMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.memberService.RemoveMember(projectID, memberUserID, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
