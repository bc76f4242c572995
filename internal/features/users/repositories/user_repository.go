package users_repositories

import (
	"errors"
	users_enums "creativeflow/internal/features/users/enums"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/storage"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.Role == "" {
		user.Role = users_enums.UserRoleUser
	}

	return storage.GetDb().Create(user).Error
}

// UpsertByEmail inserts the user or refreshes the profile fields of the
// existing row with the same email. Role and id of an existing user are kept.
func (r *UserRepository) UpsertByEmail(user *users_models.User) (*users_models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = users_enums.UserRoleUser
	}

	err := storage.GetDb().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	return r.GetUserByEmail(user.Email)
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByID returns gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUsers(limit, offset int, beforeCreatedAt *time.Time) ([]*users_models.User, int64, error) {
	users := make([]*users_models.User, 0)
	var total int64

	countQuery := storage.GetDb().Model(&users_models.User{})
	if beforeCreatedAt != nil {
		countQuery = countQuery.Where("created_at < ?", *beforeCreatedAt)
	}

	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := storage.GetDb().
		Limit(limit).
		Offset(offset).
		Order("created_at DESC")

	if beforeCreatedAt != nil {
		query = query.Where("created_at < ?", *beforeCreatedAt)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) UpdateUserProfile(userID uuid.UUID, firstName, lastName, profileImageURL *string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"first_name":        firstName,
			"last_name":         lastName,
			"profile_image_url": profileImageURL,
			"updated_at":        time.Now().UTC(),
		}).Error
}

func (r *UserRepository) UpdateUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"role":       role,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *UserRepository) DeleteUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("id = ?", userID).Delete(&users_models.User{}).Error
}
