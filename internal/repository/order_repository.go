package repository

import (
	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"gorm.io/gorm"
)

// GormOrderRepository is a GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create creates a new order
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindByID finds an order by internal id
func (r *GormOrderRepository) FindByID(id uint64) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its business key
func (r *GormOrderRepository) FindByOrderNumber(orderNumber int) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List retrieves orders with pagination
func (r *GormOrderRepository) List(filter OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order

	query := r.db.Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("order_number ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Update updates an order
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// DeleteCascade deletes an order, its operations, and their tasks.
// Children go first so a store with enforced foreign keys never sees a
// dangling reference; the transaction guarantees all-or-nothing.
func (r *GormOrderRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var operationIDs []uint64
		if err := tx.Model(&models.Operation{}).
			Where("order_id = ?", id).
			Pluck("id", &operationIDs).Error; err != nil {
			return err
		}

		if len(operationIDs) > 0 {
			if err := tx.Where("operation_id IN ?", operationIDs).
				Delete(&models.Task{}).Error; err != nil {
				return err
			}

			if err := tx.Where("order_id = ?", id).
				Delete(&models.Operation{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Order{}, id).Error
	})
}
