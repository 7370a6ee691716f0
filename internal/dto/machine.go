package dto

import "github.com/pmfaria/shopfloor-api/internal/models"

// MachineDTO represents a machine in API responses
type MachineDTO struct {
	ID              uint64             `json:"id"`
	MachineLocation string             `json:"machine_location"`
	Description     string             `json:"description"`
	MachineID       string             `json:"machine_id"`
	MachineType     models.MachineType `json:"machine_type"`
	Active          bool               `json:"active"`
}

// ToMachineDTO converts a Machine model to MachineDTO
func ToMachineDTO(machine models.Machine) MachineDTO {
	return MachineDTO{
		ID:              machine.ID,
		MachineLocation: machine.MachineLocation,
		Description:     machine.Description,
		MachineID:       machine.MachineID,
		MachineType:     machine.MachineType,
		Active:          machine.Active,
	}
}

// ToMachineDTOs converts a slice of Machine models
func ToMachineDTOs(machines []models.Machine) []MachineDTO {
	items := make([]MachineDTO, len(machines))
	for i, machine := range machines {
		items[i] = ToMachineDTO(machine)
	}
	return items
}
