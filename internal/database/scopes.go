package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based offset and limit to a GORM query. Non-positive
// values leave the query unbounded.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
