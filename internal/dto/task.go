package dto

import (
	"time"

	"github.com/pmfaria/shopfloor-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64             `json:"id"`
	OperationID      uint64             `json:"operation_id"`
	ProcessType      models.ProcessType `json:"process_type"`
	OperatorUserID   *uint64            `json:"operator_user_id"`
	OperatorBitzerID *int               `json:"operator_bitzer_id"`
	StartAt          *time.Time         `json:"start_at"`
	EndAt            *time.Time         `json:"end_at"`
	NumBenches       *int               `json:"num_benches"`
	NumMachines      *int               `json:"num_machines"`
	GoodPieces       *int               `json:"good_pieces"`
	BadPieces        *int               `json:"bad_pieces"`
	Notes            *string            `json:"notes"`
	OperatorUser     *UserDTO           `json:"operator_user,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		OperationID:      task.OperationID,
		ProcessType:      task.ProcessType,
		OperatorUserID:   task.OperatorUserID,
		OperatorBitzerID: task.OperatorBitzerID,
		StartAt:          task.StartAt,
		EndAt:            task.EndAt,
		NumBenches:       task.NumBenches,
		NumMachines:      task.NumMachines,
		GoodPieces:       task.GoodPieces,
		BadPieces:        task.BadPieces,
		Notes:            task.Notes,
	}

	// Include operator if preloaded
	if task.OperatorUser != nil && task.OperatorUser.ID != 0 {
		operator := ToUserDTO(*task.OperatorUser)
		dto.OperatorUser = &operator
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
