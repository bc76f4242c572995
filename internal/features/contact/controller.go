package contact

import (
	"net/http"
	"strconv"

	users_enums "creativeflow/internal/features/users/enums"
	users_middleware "creativeflow/internal/features/users/middleware"
	"creativeflow/internal/util/app_errors"
	"creativeflow/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactController struct {
	contactService *ContactService
}

// RegisterRoutes mounts the public contact form.
func (c *ContactController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", c.CreateSubmission)
}

func (c *ContactController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	contactRoutes := router.Group("/contact")
	contactRoutes.Use(users_middleware.RequireRole(users_enums.UserRoleAdmin))

	contactRoutes.GET("", c.GetSubmissions)
	contactRoutes.PUT("/:id/status", c.UpdateStatus)
}

// CreateSubmission
// @Summary Submit the contact form
// @Description Public endpoint, rate limited per client IP
// @Tags contact
// @Accept json
// @Produce json
// @Param request body CreateSubmissionRequest true "Contact form"
// @Success 201 {object} ContactSubmission
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /contact [post]
func (c *ContactController) CreateSubmission(ctx *gin.Context) {
	result, err := c.contactService.CheckRateLimit(ctx.ClientIP())
	if err != nil {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		app_errors.RespondWithError(ctx, err)
		return
	}

	var request CreateSubmissionRequest
	if err := validation.BindStrictJSON(ctx, &request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	submission, err := c.contactService.CreateSubmission(&request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// GetSubmissions
// @Summary List contact submissions (ADMIN only)
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Param status query string false "Filter by status" Enums(new, replied, closed)
// @Success 200 {object} GetSubmissionsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /contact [get]
func (c *ContactController) GetSubmissions(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request := &GetSubmissionsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.contactService.GetSubmissions(user, request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateStatus
// @Summary Set contact submission status (ADMIN only)
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} ContactSubmission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contact/{id}/status [put]
func (c *ContactController) UpdateStatus(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var request UpdateStatusRequest
	if err := validation.BindStrictJSON(ctx, &request); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	submission, err := c.contactService.UpdateStatus(id, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, submission)
}
