package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOperationNotFound      = errors.New("operation not found")
	ErrDuplicateOperationCode = errors.New("operation code already exists for this order")
	ErrOperationCodeRequired  = errors.New("operation code is required")
)

// OperationService handles operation business logic
type OperationService struct {
	operationRepo repository.OperationRepository
	orderRepo     repository.OrderRepository
	machineRepo   repository.MachineRepository
}

// NewOperationService creates a new OperationService
func NewOperationService(
	operationRepo repository.OperationRepository,
	orderRepo repository.OrderRepository,
	machineRepo repository.MachineRepository,
) *OperationService {
	return &OperationService{
		operationRepo: operationRepo,
		orderRepo:     orderRepo,
		machineRepo:   machineRepo,
	}
}

// CreateOperationInput represents input for creating an operation
type CreateOperationInput struct {
	OrderNumber   int
	OperationCode string
	MachineID     *uint64
}

// UpdateOperationInput represents input for updating an operation. The
// owning order is immutable; only code and machine can change.
type UpdateOperationInput struct {
	OperationCode *string
	MachineID     *uint64
	ClearMachine  bool
}

// PiecesSummary is the aggregated piece count over an operation's tasks
type PiecesSummary struct {
	Good  int `json:"good"`
	Bad   int `json:"bad"`
	Total int `json:"total"`
}

// GetOperation returns an operation with related data
func (s *OperationService) GetOperation(id uint64) (*models.Operation, error) {
	operation, err := s.operationRepo.FindByID(id, "Machine", "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}
	return operation, nil
}

// ListOperationsForOrder lists all operations under the order identified by
// orderNumber. A missing order is NotFound; an order without operations
// yields an empty collection.
func (s *OperationService) ListOperationsForOrder(orderNumber int) ([]models.Operation, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	operations, err := s.operationRepo.ListByOrderID(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, nil
}

// ResolveOperationID resolves (order_number, operation_code) to an operation
// in two stages, so a missing order and a missing operation report distinct
// not-found conditions.
func (s *OperationService) ResolveOperationID(orderNumber int, operationCode string) (*models.Operation, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	operation, err := s.operationRepo.FindByOrderAndCode(order.ID, operationCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}

	return operation, nil
}

// GetOperationPieces verifies the operation exists and returns the summed
// good/bad pieces over its tasks. Zero tasks means an all-zero summary.
func (s *OperationService) GetOperationPieces(operationID uint64) (*PiecesSummary, error) {
	if _, err := s.operationRepo.FindByID(operationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}

	good, bad, err := s.operationRepo.PiecesSummary(operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pieces: %w", err)
	}

	return &PiecesSummary{Good: good, Bad: bad, Total: good + bad}, nil
}

// CreateOperation creates an operation under an existing order
func (s *OperationService) CreateOperation(input CreateOperationInput) (*models.Operation, error) {
	if strings.TrimSpace(input.OperationCode) == "" {
		return nil, ErrOperationCodeRequired
	}

	order, err := s.orderRepo.FindByOrderNumber(input.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if input.MachineID != nil {
		if _, err := s.machineRepo.FindByID(*input.MachineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMachineNotFound
			}
			return nil, fmt.Errorf("failed to find machine: %w", err)
		}
	}

	if _, err := s.operationRepo.FindByOrderAndCode(order.ID, input.OperationCode); err == nil {
		return nil, ErrDuplicateOperationCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check operation code: %w", err)
	}

	operation := &models.Operation{
		OrderID:       order.ID,
		OperationCode: input.OperationCode,
		MachineID:     input.MachineID,
	}

	if err := s.operationRepo.Create(operation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOperationCode
		}
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}

	return operation, nil
}

// UpdateOperation applies a partial update to an operation
func (s *OperationService) UpdateOperation(id uint64, input UpdateOperationInput) (*models.Operation, error) {
	operation, err := s.operationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}

	if input.OperationCode != nil && *input.OperationCode != operation.OperationCode {
		if strings.TrimSpace(*input.OperationCode) == "" {
			return nil, ErrOperationCodeRequired
		}
		if _, err := s.operationRepo.FindByOrderAndCode(operation.OrderID, *input.OperationCode); err == nil {
			return nil, ErrDuplicateOperationCode
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check operation code: %w", err)
		}
		operation.OperationCode = *input.OperationCode
	}

	if input.ClearMachine {
		operation.MachineID = nil
	} else if input.MachineID != nil {
		if _, err := s.machineRepo.FindByID(*input.MachineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMachineNotFound
			}
			return nil, fmt.Errorf("failed to find machine: %w", err)
		}
		operation.MachineID = input.MachineID
	}

	if err := s.operationRepo.Update(operation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOperationCode
		}
		return nil, fmt.Errorf("failed to update operation: %w", err)
	}

	return operation, nil
}

// DeleteOperation removes an operation and cascades to its tasks
func (s *OperationService) DeleteOperation(id uint64) error {
	operation, err := s.operationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOperationNotFound
		}
		return fmt.Errorf("failed to find operation: %w", err)
	}

	if err := s.operationRepo.DeleteCascade(operation.ID); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}

	return nil
}
