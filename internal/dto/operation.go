package dto

import "github.com/pmfaria/shopfloor-api/internal/models"

// OperationDTO represents an operation in API responses
type OperationDTO struct {
	ID            uint64      `json:"id"`
	OrderID       uint64      `json:"order_id"`
	OperationCode string      `json:"operation_code"`
	MachineID     *uint64     `json:"machine_id"`
	Machine       *MachineDTO `json:"machine,omitempty"`
	Tasks         []TaskDTO   `json:"tasks,omitempty"`
}

// ToOperationDTO converts an Operation model to OperationDTO
func ToOperationDTO(operation models.Operation) OperationDTO {
	dto := OperationDTO{
		ID:            operation.ID,
		OrderID:       operation.OrderID,
		OperationCode: operation.OperationCode,
		MachineID:     operation.MachineID,
	}

	// Include machine if preloaded
	if operation.Machine != nil && operation.Machine.ID != 0 {
		machine := ToMachineDTO(*operation.Machine)
		dto.Machine = &machine
	}

	// Include tasks if preloaded
	if len(operation.Tasks) > 0 {
		dto.Tasks = ToTaskDTOs(operation.Tasks)
	}

	return dto
}

// ToOperationDTOs converts a slice of Operation models
func ToOperationDTOs(operations []models.Operation) []OperationDTO {
	items := make([]OperationDTO, len(operations))
	for i, operation := range operations {
		items[i] = ToOperationDTO(operation)
	}
	return items
}
