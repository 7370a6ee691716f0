package dto

import (
	"time"

	"github.com/pmfaria/shopfloor-api/internal/models"
)

// OrderDTO represents an order in API responses
type OrderDTO struct {
	ID             uint64         `json:"id"`
	OrderNumber    int            `json:"order_number"`
	MaterialNumber int            `json:"material_number"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	NumPieces      int            `json:"num_pieces"`
	Operations     []OperationDTO `json:"operations,omitempty"`
}

// ToOrderDTO converts an Order model to OrderDTO
func ToOrderDTO(order models.Order) OrderDTO {
	dto := OrderDTO{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		MaterialNumber: order.MaterialNumber,
		StartDate:      order.StartDate,
		EndDate:        order.EndDate,
		NumPieces:      order.NumPieces,
	}

	// Include operations if preloaded
	if len(order.Operations) > 0 {
		dto.Operations = ToOperationDTOs(order.Operations)
	}

	return dto
}

// ToOrderDTOs converts a slice of Order models
func ToOrderDTOs(orders []models.Order) []OrderDTO {
	items := make([]OrderDTO, len(orders))
	for i, order := range orders {
		items[i] = ToOrderDTO(order)
	}
	return items
}
