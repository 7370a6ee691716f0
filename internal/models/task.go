package models

import "time"

type ProcessType string

const (
	ProcessTypePreparation    ProcessType = "PREPARATION"
	ProcessTypeQualityControl ProcessType = "QUALITY_CONTROL"
	ProcessTypeProcessing     ProcessType = "PROCESSING"
)

// Valid reports whether the value is one of the closed process type variants.
func (t ProcessType) Valid() bool {
	switch t {
	case ProcessTypePreparation, ProcessTypeQualityControl, ProcessTypeProcessing:
		return true
	}
	return false
}

type Task struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	OperationID uint64      `gorm:"not null;index" json:"operation_id"`
	ProcessType ProcessType `gorm:"type:varchar(20);not null" json:"process_type"`

	// OperatorUserID is a weak reference; OperatorBitzerID is a snapshot of
	// the operator's bitzer_id taken when the task is created and never
	// recomputed afterwards.
	OperatorUserID   *uint64 `gorm:"index" json:"operator_user_id"`
	OperatorBitzerID *int    `json:"operator_bitzer_id"`

	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	NumBenches  *int `json:"num_benches"`
	NumMachines *int `json:"num_machines"`

	GoodPieces *int `json:"good_pieces"`
	BadPieces  *int `json:"bad_pieces"`

	Notes *string `gorm:"type:text" json:"notes"`

	// Relations
	Operation    Operation `gorm:"foreignKey:OperationID" json:"operation,omitempty"`
	OperatorUser *User     `gorm:"foreignKey:OperatorUserID" json:"operator_user,omitempty"`
}
