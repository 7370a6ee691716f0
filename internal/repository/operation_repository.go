package repository

import (
	"github.com/pmfaria/shopfloor-api/internal/models"
	"gorm.io/gorm"
)

// GormOperationRepository is a GORM implementation of OperationRepository
type GormOperationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new OperationRepository
func NewOperationRepository(db *gorm.DB) OperationRepository {
	return &GormOperationRepository{db: db}
}

// Create creates a new operation
func (r *GormOperationRepository) Create(operation *models.Operation) error {
	return r.db.Create(operation).Error
}

// FindByID finds an operation by id with optional preloading
func (r *GormOperationRepository) FindByID(id uint64, preload ...string) (*models.Operation, error) {
	var operation models.Operation
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&operation, id).Error; err != nil {
		return nil, err
	}

	return &operation, nil
}

// FindByOrderAndCode finds an operation by its (order_id, operation_code) business key
func (r *GormOperationRepository) FindByOrderAndCode(orderID uint64, code string) (*models.Operation, error) {
	var operation models.Operation
	if err := r.db.Where("order_id = ? AND operation_code = ?", orderID, code).
		First(&operation).Error; err != nil {
		return nil, err
	}
	return &operation, nil
}

// ListByOrderID lists all operations under an order
func (r *GormOperationRepository) ListByOrderID(orderID uint64) ([]models.Operation, error) {
	var operations []models.Operation
	if err := r.db.Preload("Machine").
		Where("order_id = ?", orderID).
		Order("operation_code ASC").
		Find(&operations).Error; err != nil {
		return nil, err
	}
	return operations, nil
}

// Update updates an operation
func (r *GormOperationRepository) Update(operation *models.Operation) error {
	return r.db.Save(operation).Error
}

// DeleteCascade deletes an operation and its tasks, children first, inside
// a single transaction.
func (r *GormOperationRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operation_id = ?", id).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Operation{}, id).Error
	})
}

type piecesRow struct {
	Good int
	Bad  int
}

// PiecesSummary sums good and bad pieces over all tasks of an operation.
// NULL per-task values count as zero; an operation without tasks sums to zero.
func (r *GormOperationRepository) PiecesSummary(operationID uint64) (int, int, error) {
	var row piecesRow
	err := r.db.Model(&models.Task{}).
		Select("COALESCE(SUM(good_pieces), 0) AS good, COALESCE(SUM(bad_pieces), 0) AS bad").
		Where("operation_id = ?", operationID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Good, row.Bad, nil
}
