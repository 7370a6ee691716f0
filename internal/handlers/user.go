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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all users, optionally filtered by active flag
func (h *UserHandler) ListUsers(c *gin.Context) {
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

	users, total, err := h.userService.ListUsers(active, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUser returns a single user by id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		BitzerID *int    `json:"bitzer_id"`
		Name     string  `json:"name" binding:"required"`
		Password *string `json:"password"`
		Active   *bool   `json:"active"`
		IsAdmin  *bool   `json:"is_admin"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		BitzerID: req.BitzerID,
		Name:     req.Name,
		Password: req.Password,
		Active:   req.Active,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var raw rawBody
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateUserInput
	if raw.has("bitzer_id") {
		if raw.isNull("bitzer_id") {
			input.ClearBitzerID = true
		} else {
			v, err := raw.intVal("bitzer_id")
			if err != nil {
				apierrors.BadRequest(c, "Invalid bitzer_id")
				return
			}
			input.BitzerID = &v
		}
	}
	if raw.has("name") {
		v, err := raw.str("name")
		if err != nil || v == "" {
			apierrors.BadRequest(c, "Invalid name")
			return
		}
		input.Name = &v
	}
	if raw.has("password") {
		if raw.isNull("password") {
			input.ClearPassword = true
		} else {
			v, err := raw.str("password")
			if err != nil {
				apierrors.BadRequest(c, "Invalid password")
				return
			}
			input.Password = &v
		}
	}
	if raw.has("active") {
		v, err := raw.boolVal("active")
		if err != nil {
			apierrors.BadRequest(c, "Invalid active")
			return
		}
		input.Active = &v
	}
	if raw.has("is_admin") {
		v, err := raw.boolVal("is_admin")
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_admin")
			return
		}
		input.IsAdmin = &v
	}

	user, err := h.userService.UpdateUser(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user, detaching the weak operator reference on
// their tasks
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
