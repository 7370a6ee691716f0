package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pmfaria/shopfloor-api/internal/dto"
	apierrors "github.com/pmfaria/shopfloor-api/internal/errors"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/services"
	"github.com/pmfaria/shopfloor-api/internal/utils"
)

type MachineHandler struct {
	machineService *services.MachineService
}

func NewMachineHandler(machineService *services.MachineService) *MachineHandler {
	return &MachineHandler{machineService: machineService}
}

// ListMachines returns all machines, optionally filtered by active flag
func (h *MachineHandler) ListMachines(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var active *bool
	if activeStr := c.Query("active"); activeStr != "" {
		v, err := strconv.ParseBool(activeStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid active filter")
			return
		}
		active = &v
	}

	machines, total, err := h.machineService.ListMachines(active, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"machines": dto.ToMachineDTOs(machines),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetMachine returns a single machine by id
func (h *MachineHandler) GetMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	machine, err := h.machineService.GetMachine(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMachineDTO(*machine))
}

// CreateMachine creates a new machine
func (h *MachineHandler) CreateMachine(c *gin.Context) {
	type CreateMachineRequest struct {
		MachineLocation string `json:"machine_location" binding:"required"`
		Description     string `json:"description" binding:"required"`
		MachineID       string `json:"machine_id" binding:"required"`
		MachineType     string `json:"machine_type" binding:"required"`
		Active          *bool  `json:"active"`
	}

	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	machine, err := h.machineService.CreateMachine(services.CreateMachineInput{
		MachineLocation: req.MachineLocation,
		Description:     req.Description,
		MachineID:       req.MachineID,
		MachineType:     models.MachineType(req.MachineType),
		Active:          req.Active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMachineDTO(*machine))
}

// UpdateMachine applies a partial update to a machine
func (h *MachineHandler) UpdateMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var raw rawBody
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateMachineInput
	if raw.has("machine_location") {
		v, err := raw.str("machine_location")
		if err != nil {
			apierrors.BadRequest(c, "Invalid machine_location")
			return
		}
		input.MachineLocation = &v
	}
	if raw.has("description") {
		v, err := raw.str("description")
		if err != nil {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		input.Description = &v
	}
	if raw.has("machine_id") {
		v, err := raw.str("machine_id")
		if err != nil {
			apierrors.BadRequest(c, "Invalid machine_id")
			return
		}
		input.MachineID = &v
	}
	if raw.has("machine_type") {
		v, err := raw.str("machine_type")
		if err != nil {
			apierrors.BadRequest(c, "Invalid machine_type")
			return
		}
		machineType := models.MachineType(v)
		input.MachineType = &machineType
	}
	if raw.has("active") {
		v, err := raw.boolVal("active")
		if err != nil {
			apierrors.BadRequest(c, "Invalid active")
			return
		}
		input.Active = &v
	}

	machine, err := h.machineService.UpdateMachine(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMachineDTO(*machine))
}

// DeleteMachine removes a machine unless operations still reference it
func (h *MachineHandler) DeleteMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.machineService.DeleteMachine(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted successfully"})
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
