package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pmfaria/shopfloor-api/internal/dto"
	apierrors "github.com/pmfaria/shopfloor-api/internal/errors"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/services"
	"github.com/pmfaria/shopfloor-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns all tasks, optionally filtered by operation_id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var operationID *uint64
	if opStr := c.Query("operation_id"); opStr != "" {
		v, err := strconv.ParseUint(opStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid operation_id")
			return
		}
		operationID = &v
	}

	tasks, total, err := h.taskService.ListTasks(operationID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a single task by id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task under the operation from the route
func (h *TaskHandler) CreateTask(c *gin.Context) {
	operationID, ok := idParam(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ProcessType      string     `json:"process_type" binding:"required"`
		OperatorUserID   *uint64    `json:"operator_user_id"`
		OperatorBitzerID *int       `json:"operator_bitzer_id"`
		StartAt          *time.Time `json:"start_at"`
		EndAt            *time.Time `json:"end_at"`
		NumBenches       *int       `json:"num_benches" binding:"omitempty,gte=0"`
		NumMachines      *int       `json:"num_machines" binding:"omitempty,gte=0"`
		GoodPieces       *int       `json:"good_pieces" binding:"omitempty,gte=0"`
		BadPieces        *int       `json:"bad_pieces" binding:"omitempty,gte=0"`
		Notes            *string    `json:"notes"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OperationID:      operationID,
		ProcessType:      models.ProcessType(req.ProcessType),
		OperatorUserID:   req.OperatorUserID,
		OperatorBitzerID: req.OperatorBitzerID,
		StartAt:          req.StartAt,
		EndAt:            req.EndAt,
		NumBenches:       req.NumBenches,
		NumMachines:      req.NumMachines,
		GoodPieces:       req.GoodPieces,
		BadPieces:        req.BadPieces,
		Notes:            req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var raw rawBody
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if raw.has("process_type") {
		v, err := raw.str("process_type")
		if err != nil {
			apierrors.BadRequest(c, "Invalid process_type")
			return
		}
		processType := models.ProcessType(v)
		input.ProcessType = &processType
	}
	if raw.has("operator_user_id") {
		if raw.isNull("operator_user_id") {
			input.ClearOperator = true
		} else {
			v, err := raw.uintVal("operator_user_id")
			if err != nil {
				apierrors.BadRequest(c, "Invalid operator_user_id")
				return
			}
			input.OperatorUserID = &v
		}
	}
	if raw.has("operator_bitzer_id") {
		if raw.isNull("operator_bitzer_id") {
			input.ClearBitzerID = true
		} else {
			v, err := raw.intVal("operator_bitzer_id")
			if err != nil {
				apierrors.BadRequest(c, "Invalid operator_bitzer_id")
				return
			}
			input.OperatorBitzerID = &v
		}
	}
	if raw.has("start_at") {
		if raw.isNull("start_at") {
			input.ClearStartAt = true
		} else {
			t, err := raw.timeVal("start_at")
			if err != nil {
				apierrors.BadRequest(c, "Invalid start_at")
				return
			}
			input.StartAt = &t
		}
	}
	if raw.has("end_at") {
		if raw.isNull("end_at") {
			input.ClearEndAt = true
		} else {
			t, err := raw.timeVal("end_at")
			if err != nil {
				apierrors.BadRequest(c, "Invalid end_at")
				return
			}
			input.EndAt = &t
		}
	}
	counters := []struct {
		key   string
		dest  **int
		clear *bool
	}{
		{"num_benches", &input.NumBenches, &input.ClearNumBenches},
		{"num_machines", &input.NumMachines, &input.ClearNumMachines},
		{"good_pieces", &input.GoodPieces, &input.ClearGoodPieces},
		{"bad_pieces", &input.BadPieces, &input.ClearBadPieces},
	}
	for _, counter := range counters {
		if !raw.has(counter.key) {
			continue
		}
		if raw.isNull(counter.key) {
			*counter.clear = true
			continue
		}
		v, err := raw.intVal(counter.key)
		if err != nil || v < 0 {
			apierrors.BadRequest(c, "Invalid "+counter.key)
			return
		}
		*counter.dest = &v
	}
	if raw.has("notes") {
		if raw.isNull("notes") {
			input.ClearNotes = true
		} else {
			v, err := raw.str("notes")
			if err != nil {
				apierrors.BadRequest(c, "Invalid notes")
				return
			}
			input.Notes = &v
		}
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
