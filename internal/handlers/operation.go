package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pmfaria/shopfloor-api/internal/dto"
	apierrors "github.com/pmfaria/shopfloor-api/internal/errors"
	"github.com/pmfaria/shopfloor-api/internal/services"
)

type OperationHandler struct {
	operationService *services.OperationService
	taskService      *services.TaskService
}

func NewOperationHandler(operationService *services.OperationService, taskService *services.TaskService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
		taskService:      taskService,
	}
}

// GetOperation returns a single operation with its machine and tasks
func (h *OperationHandler) GetOperation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	operation, err := h.operationService.GetOperation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationDTO(*operation))
}

// CreateOperation creates an operation under an existing order
func (h *OperationHandler) CreateOperation(c *gin.Context) {
	type CreateOperationRequest struct {
		OrderNumber   int     `json:"order_number" binding:"required"`
		OperationCode string  `json:"operation_code"`
		MachineID     *uint64 `json:"machine_id"`
	}

	var req CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	operation, err := h.operationService.CreateOperation(services.CreateOperationInput{
		OrderNumber:   req.OrderNumber,
		OperationCode: req.OperationCode,
		MachineID:     req.MachineID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOperationDTO(*operation))
}

// UpdateOperation applies a partial update to an operation
func (h *OperationHandler) UpdateOperation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var raw rawBody
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateOperationInput
	if raw.has("operation_code") {
		v, err := raw.str("operation_code")
		if err != nil {
			apierrors.BadRequest(c, "Invalid operation_code")
			return
		}
		input.OperationCode = &v
	}
	if raw.has("machine_id") {
		if raw.isNull("machine_id") {
			input.ClearMachine = true
		} else {
			v, err := raw.uintVal("machine_id")
			if err != nil {
				apierrors.BadRequest(c, "Invalid machine_id")
				return
			}
			input.MachineID = &v
		}
	}

	operation, err := h.operationService.UpdateOperation(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationDTO(*operation))
}

// DeleteOperation removes an operation together with its tasks
func (h *OperationHandler) DeleteOperation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.operationService.DeleteOperation(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Operation deleted successfully"})
}

// GetOperationPieces returns the summed good/bad piece counts over the
// operation's tasks
func (h *OperationHandler) GetOperationPieces(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	summary, err := h.operationService.GetOperationPieces(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListOperationTasks returns all tasks logged against an operation
func (h *OperationHandler) ListOperationTasks(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksForOperation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}
