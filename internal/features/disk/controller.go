package disk

import (
	"net/http"

	users_enums "creativeflow/internal/features/users/enums"
	users_middleware "creativeflow/internal/features/users/middleware"
	"creativeflow/internal/util/app_errors"

	"github.com/gin-gonic/gin"
)

type DiskController struct {
	diskService *DiskService
}

func (c *DiskController) RegisterRoutes(router *gin.RouterGroup) {
	diskRoutes := router.Group("/disk")
	diskRoutes.Use(users_middleware.RequireRole(users_enums.UserRoleAdmin))

	diskRoutes.GET("/usage", c.GetDiskUsage)
}

// GetDiskUsage
// @Summary Get asset storage usage
// @Description Usage of the filesystem that stores uploaded assets (admin only)
// @Tags disk
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DiskUsage
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /disk/usage [get]
func (c *DiskController) GetDiskUsage(ctx *gin.Context) {
	usage, err := c.diskService.GetDiskUsage()
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, usage)
}
