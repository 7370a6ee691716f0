package models

import "time"

type Order struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	OrderNumber    int        `gorm:"uniqueIndex;not null" json:"order_number"`
	MaterialNumber int        `gorm:"not null" json:"material_number"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	NumPieces      int        `gorm:"not null" json:"num_pieces"`

	// Relations
	Operations []Operation `gorm:"foreignKey:OrderID" json:"operations,omitempty"`
}
