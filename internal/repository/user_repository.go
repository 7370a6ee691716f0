package repository

import (
	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by internal id
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByBitzerID finds a user by external identifier
func (r *GormUserRepository) FindByBitzerID(bitzerID int) (*models.User, error) {
	var user models.User
	if err := r.db.Where("bitzer_id = ?", bitzerID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users, optionally filtered by active flag
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user and nulls the weak operator reference on their
// tasks. The operator_bitzer_id snapshots stay untouched.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("operator_user_id = ?", id).
			Update("operator_user_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
