package models

type MachineType string

const (
	MachineTypeCNC          MachineType = "CNC"
	MachineTypeConventional MachineType = "CONVENTIONAL"
)

// Valid reports whether the value is one of the closed machine type variants.
func (t MachineType) Valid() bool {
	return t == MachineTypeCNC || t == MachineTypeConventional
}

type Machine struct {
	ID              uint64      `gorm:"primarykey" json:"id"`
	MachineLocation string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"machine_location"`
	Description     string      `gorm:"not null" json:"description"`
	MachineID       string      `gorm:"column:machine_id;not null" json:"machine_id"`
	MachineType     MachineType `gorm:"type:varchar(20);not null" json:"machine_type"`
	Active          bool        `gorm:"not null" json:"active"`

	// Relations
	Operations []Operation `gorm:"foreignKey:MachineID" json:"operations,omitempty"`
}
