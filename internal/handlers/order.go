package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pmfaria/shopfloor-api/internal/dto"
	apierrors "github.com/pmfaria/shopfloor-api/internal/errors"
	"github.com/pmfaria/shopfloor-api/internal/services"
	"github.com/pmfaria/shopfloor-api/internal/utils"
)

type OrderHandler struct {
	orderService     *services.OrderService
	operationService *services.OperationService
}

func NewOrderHandler(orderService *services.OrderService, operationService *services.OperationService) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		operationService: operationService,
	}
}

// ListOrders returns all orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": dto.ToOrderDTOs(orders),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetOrder returns a single order by order number
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderNumber, ok := orderNumberParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(orderNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDTO(*order))
}

// CreateOrder creates a new order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	type CreateOrderRequest struct {
		OrderNumber    int     `json:"order_number" binding:"required"`
		MaterialNumber int     `json:"material_number" binding:"required"`
		StartDate      *string `json:"start_date"`
		EndDate        *string `json:"end_date"`
		NumPieces      int     `json:"num_pieces" binding:"gte=0"`
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateOrderInput{
		OrderNumber:    req.OrderNumber,
		MaterialNumber: req.MaterialNumber,
		NumPieces:      req.NumPieces,
	}
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid start_date")
			return
		}
		input.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid end_date")
			return
		}
		input.EndDate = &t
	}

	order, err := h.orderService.CreateOrder(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderDTO(*order))
}

// UpdateOrder applies a partial update to an order
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	orderNumber, ok := orderNumberParam(c)
	if !ok {
		return
	}

	var raw rawBody
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateOrderInput
	if raw.has("order_number") {
		v, err := raw.intVal("order_number")
		if err != nil {
			apierrors.BadRequest(c, "Invalid order_number")
			return
		}
		input.OrderNumber = &v
	}
	if raw.has("material_number") {
		v, err := raw.intVal("material_number")
		if err != nil {
			apierrors.BadRequest(c, "Invalid material_number")
			return
		}
		input.MaterialNumber = &v
	}
	if raw.has("start_date") {
		if raw.isNull("start_date") {
			input.ClearStartDate = true
		} else {
			t, err := raw.dateVal("start_date")
			if err != nil {
				apierrors.BadRequest(c, "Invalid start_date")
				return
			}
			input.StartDate = &t
		}
	}
	if raw.has("end_date") {
		if raw.isNull("end_date") {
			input.ClearEndDate = true
		} else {
			t, err := raw.dateVal("end_date")
			if err != nil {
				apierrors.BadRequest(c, "Invalid end_date")
				return
			}
			input.EndDate = &t
		}
	}
	if raw.has("num_pieces") {
		v, err := raw.intVal("num_pieces")
		if err != nil || v < 0 {
			apierrors.BadRequest(c, "Invalid num_pieces")
			return
		}
		input.NumPieces = &v
	}

	order, err := h.orderService.UpdateOrder(orderNumber, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDTO(*order))
}

// DeleteOrder removes an order along with its operations and tasks
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderNumber, ok := orderNumberParam(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(orderNumber); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// ListOrderOperations returns all operations under an order
func (h *OrderHandler) ListOrderOperations(c *gin.Context) {
	orderNumber, ok := orderNumberParam(c)
	if !ok {
		return
	}

	operations, err := h.operationService.ListOperationsForOrder(orderNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"operations": dto.ToOperationDTOs(operations)})
}

// GetOrderOperation resolves an operation by order number and operation code
func (h *OrderHandler) GetOrderOperation(c *gin.Context) {
	orderNumber, ok := orderNumberParam(c)
	if !ok {
		return
	}
	operationCode := c.Param("operation_code")

	operation, err := h.operationService.ResolveOperationID(orderNumber, operationCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationDTO(*operation))
}

func orderNumberParam(c *gin.Context) (int, bool) {
	orderNumber, err := strconv.Atoi(c.Param("order_number"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid order_number")
		return 0, false
	}
	return orderNumber, true
}
