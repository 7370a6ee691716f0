package repository

import (
	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"gorm.io/gorm"
)

// GormMachineRepository is a GORM implementation of MachineRepository
type GormMachineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new MachineRepository
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &GormMachineRepository{db: db}
}

// Create creates a new machine
func (r *GormMachineRepository) Create(machine *models.Machine) error {
	return r.db.Create(machine).Error
}

// FindByID finds a machine by internal id
func (r *GormMachineRepository) FindByID(id uint64) (*models.Machine, error) {
	var machine models.Machine
	if err := r.db.First(&machine, id).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

// FindByLocation finds a machine by its business key
func (r *GormMachineRepository) FindByLocation(location string) (*models.Machine, error) {
	var machine models.Machine
	if err := r.db.Where("machine_location = ?", location).First(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

// List retrieves machines, optionally filtered by active flag
func (r *GormMachineRepository) List(filter MachineFilter) ([]models.Machine, int64, error) {
	var machines []models.Machine

	query := r.db.Model(&models.Machine{})
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("machine_location ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&machines).Error; err != nil {
		return nil, 0, err
	}

	return machines, total, nil
}

// Update updates a machine
func (r *GormMachineRepository) Update(machine *models.Machine) error {
	return r.db.Save(machine).Error
}

// Delete deletes a machine
func (r *GormMachineRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Machine{}, id).Error
}

// CountOperations counts operations referencing the machine
func (r *GormMachineRepository) CountOperations(machineID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Operation{}).
		Where("machine_id = ?", machineID).
		Count(&count).Error
	return count, err
}
