package constants

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Field limits
const (
	MaxNotesLength = 1000
)
