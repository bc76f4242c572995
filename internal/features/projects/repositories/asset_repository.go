package projects_repositories

import (
	"errors"
	"time"

	projects_models "creativeflow/internal/features/projects/models"
	"creativeflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepository struct{}

func (r *AssetRepository) CreateAsset(tx *gorm.DB, asset *projects_models.ProjectAsset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	if asset.UploadedAt.IsZero() {
		asset.UploadedAt = time.Now().UTC()
	}

	return tx.Create(asset).Error
}

// GetAsset returns nil, nil when assetID does not exist within projectID.
func (r *AssetRepository) GetAsset(projectID, assetID uuid.UUID) (*projects_models.ProjectAsset, error) {
	var asset projects_models.ProjectAsset

	err := storage.GetDb().
		Where("id = ? AND project_id = ?", assetID, projectID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &asset, nil
}

// GetProjectAssets lists assets newest first.
func (r *AssetRepository) GetProjectAssets(projectID uuid.UUID) ([]projects_models.ProjectAsset, error) {
	return r.getProjectAssets(storage.GetDb(), projectID)
}

func (r *AssetRepository) GetProjectAssetsTx(tx *gorm.DB, projectID uuid.UUID) ([]projects_models.ProjectAsset, error) {
	return r.getProjectAssets(tx, projectID)
}

func (r *AssetRepository) DeleteAsset(assetID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", assetID).Delete(&projects_models.ProjectAsset{}).Error
}

func (r *AssetRepository) DeleteProjectAssets(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("project_id = ?", projectID).Delete(&projects_models.ProjectAsset{}).Error
}

// ClearUploader detaches the assets uploaded by userID from it.
func (r *AssetRepository) ClearUploader(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&projects_models.ProjectAsset{}).
		Where("uploaded_by = ?", userID).
		Update("uploaded_by", nil).Error
}

func (r *AssetRepository) getProjectAssets(tx *gorm.DB, projectID uuid.UUID) ([]projects_models.ProjectAsset, error) {
	assets := make([]projects_models.ProjectAsset, 0)

	err := tx.
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&assets).Error

	return assets, err
}
