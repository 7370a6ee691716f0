package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrOrderDateRange       = errors.New("end_date cannot be before start_date")
)

// OrderService handles order business logic
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	OrderNumber    int
	MaterialNumber int
	StartDate      *time.Time
	EndDate        *time.Time
	NumPieces      int
}

// UpdateOrderInput represents input for updating an order. Nil fields are
// left unchanged; Clear flags reset the optional dates.
type UpdateOrderInput struct {
	OrderNumber    *int
	MaterialNumber *int
	StartDate      *time.Time
	ClearStartDate bool
	EndDate        *time.Time
	ClearEndDate   bool
	NumPieces      *int
}

// ListOrders returns orders with pagination
func (s *OrderService) ListOrders(page, pageSize int) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(repository.OrderFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetOrder returns an order by its order number
func (s *OrderService) GetOrder(orderNumber int) (*models.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// CreateOrder creates a new order after validating its natural key and dates
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if err := validateDateRange(input.StartDate, input.EndDate, ErrOrderDateRange); err != nil {
		return nil, err
	}

	if _, err := s.orderRepo.FindByOrderNumber(input.OrderNumber); err == nil {
		return nil, ErrDuplicateOrderNumber
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check order number: %w", err)
	}

	order := &models.Order{
		OrderNumber:    input.OrderNumber,
		MaterialNumber: input.MaterialNumber,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		NumPieces:      input.NumPieces,
	}

	if err := s.orderRepo.Create(order); err != nil {
		// The unique constraint is the backstop when two creates race past
		// the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// UpdateOrder applies a partial update to the order identified by orderNumber.
// Validation runs on the merged view so omitting one date cannot bypass the
// range check.
func (s *OrderService) UpdateOrder(orderNumber int, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if input.OrderNumber != nil && *input.OrderNumber != order.OrderNumber {
		if _, err := s.orderRepo.FindByOrderNumber(*input.OrderNumber); err == nil {
			return nil, ErrDuplicateOrderNumber
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check order number: %w", err)
		}
		order.OrderNumber = *input.OrderNumber
	}
	if input.MaterialNumber != nil {
		order.MaterialNumber = *input.MaterialNumber
	}
	if input.ClearStartDate {
		order.StartDate = nil
	} else if input.StartDate != nil {
		order.StartDate = input.StartDate
	}
	if input.ClearEndDate {
		order.EndDate = nil
	} else if input.EndDate != nil {
		order.EndDate = input.EndDate
	}
	if input.NumPieces != nil {
		order.NumPieces = *input.NumPieces
	}

	if err := validateDateRange(order.StartDate, order.EndDate, ErrOrderDateRange); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return order, nil
}

// DeleteOrder removes the order and cascades to its operations and tasks
func (s *OrderService) DeleteOrder(orderNumber int) error {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to find order: %w", err)
	}

	if err := s.orderRepo.DeleteCascade(order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

// validateDateRange rejects ranges whose end precedes their start. Either
// side absent is always acceptable.
func validateDateRange(start, end *time.Time, rangeErr error) error {
	if start != nil && end != nil && end.Before(*start) {
		return rangeErr
	}
	return nil
}
