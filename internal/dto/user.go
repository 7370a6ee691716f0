package dto

import "github.com/pmfaria/shopfloor-api/internal/models"

// UserDTO represents a user in API responses. The credential hash never
// leaves the server.
type UserDTO struct {
	ID       uint64 `json:"id"`
	BitzerID *int   `json:"bitzer_id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	IsAdmin  bool   `json:"is_admin"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		BitzerID: user.BitzerID,
		Name:     user.Name,
		Active:   user.Active,
		IsAdmin:  user.IsAdmin,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
