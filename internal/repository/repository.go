package repository

import (
	"github.com/pmfaria/shopfloor-api/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create creates a new order
	Create(order *models.Order) error

	// FindByID finds an order by internal id
	FindByID(id uint64) (*models.Order, error)

	// FindByOrderNumber finds an order by its business key
	FindByOrderNumber(orderNumber int) (*models.Order, error)

	// List retrieves orders with pagination
	List(filter OrderFilter) ([]models.Order, int64, error)

	// Update updates an order
	Update(order *models.Order) error

	// DeleteCascade deletes an order together with its operations and their
	// tasks, children first, inside a single transaction
	DeleteCascade(id uint64) error
}

// OrderFilter holds filtering options for listing orders
type OrderFilter struct {
	Page     int
	PageSize int
}

// MachineRepository defines the interface for machine data access
type MachineRepository interface {
	// Create creates a new machine
	Create(machine *models.Machine) error

	// FindByID finds a machine by internal id
	FindByID(id uint64) (*models.Machine, error)

	// FindByLocation finds a machine by its business key
	FindByLocation(location string) (*models.Machine, error)

	// List retrieves machines, optionally filtered by active flag
	List(filter MachineFilter) ([]models.Machine, int64, error)

	// Update updates a machine
	Update(machine *models.Machine) error

	// Delete deletes a machine; callers must check references first
	Delete(id uint64) error

	// CountOperations counts operations referencing the machine
	CountOperations(machineID uint64) (int64, error)
}

// MachineFilter holds filtering options for listing machines
type MachineFilter struct {
	Active   *bool
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by internal id
	FindByID(id uint64) (*models.User, error)

	// FindByBitzerID finds a user by external identifier
	FindByBitzerID(bitzerID int) (*models.User, error)

	// List retrieves users, optionally filtered by active flag
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user and detaches the weak operator reference on
	// their tasks, leaving the bitzer_id snapshots in place
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Active   *bool
	Page     int
	PageSize int
}

// OperationRepository defines the interface for operation data access
type OperationRepository interface {
	// Create creates a new operation
	Create(operation *models.Operation) error

	// FindByID finds an operation by id with optional preloading
	FindByID(id uint64, preload ...string) (*models.Operation, error)

	// FindByOrderAndCode finds an operation by its (order_id, operation_code)
	// business key
	FindByOrderAndCode(orderID uint64, code string) (*models.Operation, error)

	// ListByOrderID lists all operations under an order
	ListByOrderID(orderID uint64) ([]models.Operation, error)

	// Update updates an operation
	Update(operation *models.Operation) error

	// DeleteCascade deletes an operation together with its tasks, children
	// first, inside a single transaction
	DeleteCascade(id uint64) error

	// PiecesSummary sums good and bad pieces over all tasks of an operation,
	// treating absent values as zero
	PiecesSummary(operationID uint64) (good int, bad int, err error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by id with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OperationID *uint64
	Page        int
	PageSize    int
}
