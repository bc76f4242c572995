package projects_services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/disk"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	projects_repositories "creativeflow/internal/features/projects/repositories"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/storage"
	"creativeflow/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedAssetExtensions = []string{"jpg", "jpeg", "png", "pdf", "ai", "psd"}

type AssetService struct {
	assetRepository *projects_repositories.AssetRepository
	projectService  *ProjectService
	maxUploadBytes  int64
}

func (s *AssetService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

func (s *AssetService) GetAssets(projectID uuid.UUID, user *users_models.User) (*projects_dto.ListAssetsResponseDTO, error) {
	if _, _, err := s.projectService.getAccessibleProject(projectID, user); err != nil {
		return nil, err
	}

	assets, err := s.assetRepository.GetProjectAssets(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project assets: %w", err)
	}

	return &projects_dto.ListAssetsResponseDTO{Assets: assets}, nil
}

// UploadAsset stores the file bytes, then the asset row and its
// asset_uploaded event in one transaction. The file is removed when the
// transaction fails.
func (s *AssetService) UploadAsset(
	projectID uuid.UUID,
	fileHeader *multipart.FileHeader,
	user *users_models.User,
) (*projects_models.ProjectAsset, error) {
	if _, _, err := s.projectService.getAccessibleProject(projectID, user); err != nil {
		return nil, err
	}

	fileName, extension, err := s.validateUpload(fileHeader)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read uploaded file", app_errors.ErrBadRequest)
	}
	defer file.Close()

	asset := &projects_models.ProjectAsset{
		ID:         uuid.New(),
		ProjectID:  projectID,
		FileName:   fileName,
		FileType:   extension,
		UploadedBy: &user.ID,
	}

	path, size, err := s.projectService.fileStore.Save(projectID, asset.ID, fileName, file, s.maxUploadBytes)
	if err != nil {
		if errors.Is(err, disk.ErrFileTooLarge) {
			return nil, app_errors.NewFieldError("file", s.tooLargeMessage())
		}

		return nil, fmt.Errorf("failed to store asset file: %w", err)
	}

	asset.FilePath = path
	asset.FileSize = size

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.assetRepository.CreateAsset(tx, asset); err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}

		return s.projectService.eventRecorder.RecordEvent(
			tx,
			analytics.EventAssetUploaded,
			&user.ID,
			&projectID,
			map[string]any{"assetId": asset.ID.String(), "fileName": asset.FileName, "fileSize": asset.FileSize},
		)
	})
	if err != nil {
		if removeErr := s.projectService.fileStore.Delete(path); removeErr != nil {
			s.projectService.logger.Error("failed to remove orphaned asset file", "path", path, "error", removeErr)
		}

		return nil, err
	}

	return asset, nil
}

// OpenAsset returns the asset with its open file. The caller closes the file.
func (s *AssetService) OpenAsset(
	projectID, assetID uuid.UUID,
	user *users_models.User,
) (*projects_models.ProjectAsset, *os.File, error) {
	asset, err := s.getAsset(projectID, assetID, user)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.projectService.fileStore.Open(asset.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("asset file %w", app_errors.ErrNotFound)
		}

		return nil, nil, fmt.Errorf("failed to open asset file: %w", err)
	}

	return asset, file, nil
}

// DeleteAsset is allowed to the uploader, project owners and admins, and
// global admins.
func (s *AssetService) DeleteAsset(projectID, assetID uuid.UUID, user *users_models.User) error {
	asset, err := s.getAsset(projectID, assetID, user)
	if err != nil {
		return err
	}

	isUploader := asset.UploadedBy != nil && *asset.UploadedBy == user.ID
	if !isUploader {
		if _, _, err := s.projectService.getManageableProject(projectID, user); err != nil {
			return err
		}
	}

	if err := s.assetRepository.DeleteAsset(asset.ID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if err := s.projectService.fileStore.Delete(asset.FilePath); err != nil {
		s.projectService.logger.Error("failed to remove asset file", "path", asset.FilePath, "error", err)
	}

	return nil
}

func (s *AssetService) getAsset(projectID, assetID uuid.UUID, user *users_models.User) (*projects_models.ProjectAsset, error) {
	if _, _, err := s.projectService.getAccessibleProject(projectID, user); err != nil {
		return nil, err
	}

	asset, err := s.assetRepository.GetAsset(projectID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %w", app_errors.ErrNotFound)
	}

	return asset, nil
}

func (s *AssetService) validateUpload(fileHeader *multipart.FileHeader) (string, string, error) {
	fileName := strings.TrimSpace(filepath.Base(strings.ReplaceAll(fileHeader.Filename, "\\", "/")))
	if fileName == "" || fileName == "." || fileName == "/" {
		return "", "", app_errors.NewFieldError("file", "File name is required")
	}
	if len(fileName) > 255 {
		return "", "", app_errors.NewFieldError("file", "File name must be at most 255 characters")
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !isAllowedExtension(extension) {
		return "", "", app_errors.NewFieldError(
			"file",
			"File type must be one of "+strings.Join(allowedAssetExtensions, ", "),
		)
	}

	if fileHeader.Size > s.maxUploadBytes {
		return "", "", app_errors.NewFieldError("file", s.tooLargeMessage())
	}

	return fileName, extension, nil
}

func (s *AssetService) tooLargeMessage() string {
	return fmt.Sprintf("File must be at most %d MB", s.maxUploadBytes/(1024*1024))
}

func isAllowedExtension(extension string) bool {
	for _, allowed := range allowedAssetExtensions {
		if allowed == extension {
			return true
		}
	}

	return false
}
