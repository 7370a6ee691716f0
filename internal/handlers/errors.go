package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pmfaria/shopfloor-api/internal/errors"
	"github.com/pmfaria/shopfloor-api/internal/services"
)

// respondServiceError maps service sentinel errors onto the API error
// taxonomy: NotFound, Conflict, InvalidArgument, or a generic internal
// failure for anything unexpected.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrMachineNotFound),
		errors.Is(err, services.ErrOperationNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOperatorNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrDuplicateOrderNumber),
		errors.Is(err, services.ErrDuplicateMachineLocation),
		errors.Is(err, services.ErrDuplicateOperationCode),
		errors.Is(err, services.ErrDuplicateBitzerID),
		errors.Is(err, services.ErrMachineInUse):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrOrderDateRange),
		errors.Is(err, services.ErrTaskTimeRange),
		errors.Is(err, services.ErrNotesTooLong),
		errors.Is(err, services.ErrInvalidMachineType),
		errors.Is(err, services.ErrInvalidProcessType),
		errors.Is(err, services.ErrOperationCodeRequired):
		apierrors.InvalidArgument(c, err.Error())

	default:
		apierrors.InternalError(c, "")
	}
}
