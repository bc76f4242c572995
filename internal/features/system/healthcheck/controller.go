package system_healthcheck

import (
	"net/http"

	"creativeflow/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Checks the database, the cache when configured and the asset storage disk
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponse
// @Failure 503 {object} HealthcheckResponse
// @Router /health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	response, err := c.healthcheckService.IsHealthy(ctx.Request.Context())
	if err != nil {
		logger.GetLogger().Warn("healthcheck failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
