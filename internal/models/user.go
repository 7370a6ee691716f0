package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	BitzerID     *int      `gorm:"uniqueIndex" json:"bitzer_id"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash *string   `gorm:"type:varchar(255)" json:"-"`
	Active       bool      `gorm:"not null" json:"active"`
	IsAdmin      bool      `gorm:"not null" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:OperatorUserID" json:"-"`
}
