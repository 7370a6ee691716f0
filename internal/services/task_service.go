package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pmfaria/shopfloor-api/internal/constants"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskTimeRange      = errors.New("end_at cannot be before start_at")
	ErrNotesTooLong       = fmt.Errorf("notes cannot exceed %d characters", constants.MaxNotesLength)
	ErrInvalidProcessType = errors.New("invalid process type")
	ErrOperatorNotFound   = errors.New("operator user not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo      repository.TaskRepository
	operationRepo repository.OperationRepository
	userRepo      repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	operationRepo repository.OperationRepository,
	userRepo repository.UserRepository,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		operationRepo: operationRepo,
		userRepo:      userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OperationID      uint64
	ProcessType      models.ProcessType
	OperatorUserID   *uint64
	OperatorBitzerID *int
	StartAt          *time.Time
	EndAt            *time.Time
	NumBenches       *int
	NumMachines      *int
	GoodPieces       *int
	BadPieces        *int
	Notes            *string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; Clear flags reset the corresponding optional field.
type UpdateTaskInput struct {
	ProcessType      *models.ProcessType
	OperatorUserID   *uint64
	ClearOperator    bool
	OperatorBitzerID *int
	ClearBitzerID    bool
	StartAt          *time.Time
	ClearStartAt     bool
	EndAt            *time.Time
	ClearEndAt       bool
	NumBenches       *int
	ClearNumBenches  bool
	NumMachines      *int
	ClearNumMachines bool
	GoodPieces       *int
	ClearGoodPieces  bool
	BadPieces        *int
	ClearBadPieces   bool
	Notes            *string
	ClearNotes       bool
}

// ListTasks returns tasks, optionally scoped to one operation
func (s *TaskService) ListTasks(operationID *uint64, page, pageSize int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		OperationID: operationID,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksForOperation lists tasks under an operation. A missing operation
// is NotFound; an operation without tasks yields an empty collection.
func (s *TaskService) ListTasksForOperation(operationID uint64) ([]models.Task, error) {
	if _, err := s.operationRepo.FindByID(operationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}

	tasks, _, err := s.taskRepo.List(repository.TaskFilter{OperationID: &operationID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "OperatorUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task under an existing operation. When an operator is
// given without an explicit bitzer id, the user's current bitzer_id is
// copied onto the task as a snapshot.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if !input.ProcessType.Valid() {
		return nil, ErrInvalidProcessType
	}
	if err := validateInstantRange(input.StartAt, input.EndAt); err != nil {
		return nil, err
	}
	if err := validateNotes(input.Notes); err != nil {
		return nil, err
	}

	if _, err := s.operationRepo.FindByID(input.OperationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to find operation: %w", err)
	}

	bitzerID := input.OperatorBitzerID
	if input.OperatorUserID != nil {
		user, err := s.userRepo.FindByID(*input.OperatorUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOperatorNotFound
			}
			return nil, fmt.Errorf("failed to find operator: %w", err)
		}
		if bitzerID == nil {
			bitzerID = user.BitzerID
		}
	}

	task := &models.Task{
		OperationID:      input.OperationID,
		ProcessType:      input.ProcessType,
		OperatorUserID:   input.OperatorUserID,
		OperatorBitzerID: bitzerID,
		StartAt:          input.StartAt,
		EndAt:            input.EndAt,
		NumBenches:       input.NumBenches,
		NumMachines:      input.NumMachines,
		GoodPieces:       input.GoodPieces,
		BadPieces:        input.BadPieces,
		Notes:            input.Notes,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task. Temporal validation runs on
// the merged view, and the bitzer snapshot is never recomputed: changing the
// operator leaves it alone, it only moves when sent explicitly.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.ProcessType != nil {
		if !input.ProcessType.Valid() {
			return nil, ErrInvalidProcessType
		}
		task.ProcessType = *input.ProcessType
	}

	if input.ClearOperator {
		task.OperatorUserID = nil
	} else if input.OperatorUserID != nil {
		if _, err := s.userRepo.FindByID(*input.OperatorUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOperatorNotFound
			}
			return nil, fmt.Errorf("failed to find operator: %w", err)
		}
		task.OperatorUserID = input.OperatorUserID
	}
	if input.ClearBitzerID {
		task.OperatorBitzerID = nil
	} else if input.OperatorBitzerID != nil {
		task.OperatorBitzerID = input.OperatorBitzerID
	}

	if input.ClearStartAt {
		task.StartAt = nil
	} else if input.StartAt != nil {
		task.StartAt = input.StartAt
	}
	if input.ClearEndAt {
		task.EndAt = nil
	} else if input.EndAt != nil {
		task.EndAt = input.EndAt
	}
	if err := validateInstantRange(task.StartAt, task.EndAt); err != nil {
		return nil, err
	}

	if input.ClearNumBenches {
		task.NumBenches = nil
	} else if input.NumBenches != nil {
		task.NumBenches = input.NumBenches
	}
	if input.ClearNumMachines {
		task.NumMachines = nil
	} else if input.NumMachines != nil {
		task.NumMachines = input.NumMachines
	}
	if input.ClearGoodPieces {
		task.GoodPieces = nil
	} else if input.GoodPieces != nil {
		task.GoodPieces = input.GoodPieces
	}
	if input.ClearBadPieces {
		task.BadPieces = nil
	} else if input.BadPieces != nil {
		task.BadPieces = input.BadPieces
	}
	if input.ClearNotes {
		task.Notes = nil
	} else if input.Notes != nil {
		if err := validateNotes(input.Notes); err != nil {
			return nil, err
		}
		task.Notes = input.Notes
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a single task
func (s *TaskService) DeleteTask(id uint64) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func validateInstantRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrTaskTimeRange
	}
	return nil
}

func validateNotes(notes *string) error {
	if notes != nil && len([]rune(*notes)) > constants.MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}
