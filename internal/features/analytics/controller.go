package analytics

import (
	"net/http"
	"strconv"

	users_middleware "creativeflow/internal/features/users/middleware"
	"creativeflow/internal/util/app_errors"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService *AnalyticsService
}

func (c *AnalyticsController) RegisterRoutes(router *gin.RouterGroup) {
	analyticsRoutes := router.Group("/analytics")

	analyticsRoutes.GET("/stats", c.GetStats)
	analyticsRoutes.GET("/events", c.GetEvents)
	analyticsRoutes.GET("/timeline", c.GetTimeline)
}

// GetStats
// @Summary Get project statistics
// @Description Counts projects the caller is a member of. Admins get system-wide numbers
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProjectStats
// @Failure 401 {object} map[string]string
// @Router /analytics/stats [get]
func (c *AnalyticsController) GetStats(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := c.analyticsService.GetStatsForUser(user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetEvents
// @Summary List analytics events
// @Description Lists events newest first. Non-admins only see their own events
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Param userId query string false "Filter by user (admins only for other users)"
// @Param projectId query string false "Filter by project"
// @Param eventType query string false "Filter by event type"
// @Success 200 {object} GetEventsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /analytics/events [get]
func (c *AnalyticsController) GetEvents(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request := &GetEventsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.analyticsService.GetEvents(user, request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTimeline
// @Summary Get project timeline
// @Description Monthly counts of created and completed projects
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Range in days: 30, 90 or 365" default(30)
// @Success 200 {object} TimelineResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /analytics/timeline [get]
func (c *AnalyticsController) GetTimeline(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	days := TimelineRanges[0]
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			app_errors.RespondWithError(ctx, app_errors.NewFieldError("days", "Days must be one of 30, 90, 365"))
			return
		}
		days = parsed
	}

	response, err := c.analyticsService.GetTimeline(user, days)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
