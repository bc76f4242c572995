package projects_controllers

import (
	"fmt"
	"net/http"

	projects_services "creativeflow/internal/features/projects/services"
	users_middleware "creativeflow/internal/features/users/middleware"
	"creativeflow/internal/util/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// multipart envelope allowance on top of the file size limit
const multipartOverheadBytes = 1 << 20

type AssetController struct {
	assetService *projects_services.AssetService
}

func (c *AssetController) RegisterRoutes(router *gin.RouterGroup) {
	assetRoutes := router.Group("/projects/:id/assets")

	assetRoutes.GET("", c.GetAssets)
	assetRoutes.POST("", c.UploadAsset)
	assetRoutes.GET("/:assetId/download", c.DownloadAsset)
	assetRoutes.DELETE("/:assetId", c.DeleteAsset)
}

// GetAssets
// @Summary List project assets
// @Description Assets newest first
// @Tags project-assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListAssetsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/assets [get]
func (c *AssetController) GetAssets(ctx *gin.Context) {
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

	response, err := c.assetService.GetAssets(projectID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UploadAsset
// @Summary Upload project asset
// @Description Multipart upload in the "file" field. jpg, jpeg, png, pdf, ai or psd up to the configured size
// @Tags project-assets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "Asset file"
// @Success 201 {object} projects_models.ProjectAsset
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/assets [post]
func (c *AssetController) UploadAsset(ctx *gin.Context) {
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

	ctx.Request.Body = http.MaxBytesReader(
		ctx.Writer,
		ctx.Request.Body,
		c.assetService.MaxUploadBytes()+multipartOverheadBytes,
	)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		app_errors.RespondWithError(ctx, app_errors.NewFieldError("file", "File is required"))
		return
	}

	asset, err := c.assetService.UploadAsset(projectID, fileHeader, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, asset)
}

// DownloadAsset
// @Summary Download project asset
// @Tags project-assets
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param assetId path string true "Asset ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/assets/{assetId}/download [get]
func (c *AssetController) DownloadAsset(ctx *gin.Context) {
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

	assetID, err := uuid.Parse(ctx.Param("assetId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, file, err := c.assetService.OpenAsset(projectID, assetID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}
	defer file.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", asset.FileName))
	http.ServeContent(ctx.Writer, ctx.Request, asset.FileName, asset.UploadedAt, file)
}

// DeleteAsset
// @Summary Delete project asset
// @Description Allowed to the uploader and to project owners and admins
// @Tags project-assets
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param assetId path string true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/assets/{assetId} [delete]
func (c *AssetController) DeleteAsset(ctx *gin.Context) {
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

	assetID, err := uuid.Parse(ctx.Param("assetId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := c.assetService.DeleteAsset(projectID, assetID, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
