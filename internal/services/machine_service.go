package services

import (
	"errors"
	"fmt"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMachineNotFound          = errors.New("machine not found")
	ErrDuplicateMachineLocation = errors.New("machine location already exists")
	ErrMachineInUse             = errors.New("machine is referenced by operations")
	ErrInvalidMachineType       = errors.New("invalid machine type")
)

// MachineService handles machine business logic
type MachineService struct {
	machineRepo repository.MachineRepository
}

// NewMachineService creates a new MachineService
func NewMachineService(machineRepo repository.MachineRepository) *MachineService {
	return &MachineService{machineRepo: machineRepo}
}

// CreateMachineInput represents input for creating a machine
type CreateMachineInput struct {
	MachineLocation string
	Description     string
	MachineID       string
	MachineType     models.MachineType
	Active          *bool
}

// UpdateMachineInput represents input for updating a machine
type UpdateMachineInput struct {
	MachineLocation *string
	Description     *string
	MachineID       *string
	MachineType     *models.MachineType
	Active          *bool
}

// ListMachines returns machines, optionally filtered by active flag
func (s *MachineService) ListMachines(active *bool, page, pageSize int) ([]models.Machine, int64, error) {
	machines, total, err := s.machineRepo.List(repository.MachineFilter{
		Active:   active,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, total, nil
}

// GetMachine returns a machine by internal id
func (s *MachineService) GetMachine(id uint64) (*models.Machine, error) {
	machine, err := s.machineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to find machine: %w", err)
	}
	return machine, nil
}

// CreateMachine creates a new machine after validating its natural key
func (s *MachineService) CreateMachine(input CreateMachineInput) (*models.Machine, error) {
	if !input.MachineType.Valid() {
		return nil, ErrInvalidMachineType
	}

	if _, err := s.machineRepo.FindByLocation(input.MachineLocation); err == nil {
		return nil, ErrDuplicateMachineLocation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check machine location: %w", err)
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	machine := &models.Machine{
		MachineLocation: input.MachineLocation,
		Description:     input.Description,
		MachineID:       input.MachineID,
		MachineType:     input.MachineType,
		Active:          active,
	}

	if err := s.machineRepo.Create(machine); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateMachineLocation
		}
		return nil, fmt.Errorf("failed to create machine: %w", err)
	}

	return machine, nil
}

// UpdateMachine applies a partial update to a machine
func (s *MachineService) UpdateMachine(id uint64, input UpdateMachineInput) (*models.Machine, error) {
	machine, err := s.machineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to find machine: %w", err)
	}

	if input.MachineLocation != nil && *input.MachineLocation != machine.MachineLocation {
		if _, err := s.machineRepo.FindByLocation(*input.MachineLocation); err == nil {
			return nil, ErrDuplicateMachineLocation
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check machine location: %w", err)
		}
		machine.MachineLocation = *input.MachineLocation
	}
	if input.Description != nil {
		machine.Description = *input.Description
	}
	if input.MachineID != nil {
		machine.MachineID = *input.MachineID
	}
	if input.MachineType != nil {
		if !input.MachineType.Valid() {
			return nil, ErrInvalidMachineType
		}
		machine.MachineType = *input.MachineType
	}
	if input.Active != nil {
		machine.Active = *input.Active
	}

	if err := s.machineRepo.Update(machine); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateMachineLocation
		}
		return nil, fmt.Errorf("failed to update machine: %w", err)
	}

	return machine, nil
}

// DeleteMachine removes a machine unless any operation still references it.
// A referenced machine is protected, never cascaded.
func (s *MachineService) DeleteMachine(id uint64) error {
	machine, err := s.machineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMachineNotFound
		}
		return fmt.Errorf("failed to find machine: %w", err)
	}

	count, err := s.machineRepo.CountOperations(machine.ID)
	if err != nil {
		return fmt.Errorf("failed to count machine references: %w", err)
	}
	if count > 0 {
		return ErrMachineInUse
	}

	if err := s.machineRepo.Delete(machine.ID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrMachineInUse
		}
		return fmt.Errorf("failed to delete machine: %w", err)
	}

	return nil
}
