package services

import (
	"errors"
	"fmt"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateBitzerID = errors.New("bitzer id already exists")
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	BitzerID *int
	Name     string
	Password *string
	Active   *bool
	IsAdmin  *bool
}

// UpdateUserInput represents input for updating a user. Nil fields are left
// unchanged; Clear flags reset the optional badge id and credential.
type UpdateUserInput struct {
	BitzerID      *int
	ClearBitzerID bool
	Name          *string
	Password      *string
	ClearPassword bool
	Active        *bool
	IsAdmin       *bool
}

// ListUsers returns users, optionally filtered by active flag
func (s *UserService) ListUsers(active *bool, page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Active:   active,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser returns a user by internal id
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUser creates a new user, hashing the optional credential
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if input.BitzerID != nil {
		if _, err := s.userRepo.FindByBitzerID(*input.BitzerID); err == nil {
			return nil, ErrDuplicateBitzerID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check bitzer id: %w", err)
		}
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	isAdmin := false
	if input.IsAdmin != nil {
		isAdmin = *input.IsAdmin
	}

	user := &models.User{
		BitzerID: input.BitzerID,
		Name:     input.Name,
		Active:   active,
		IsAdmin:  isAdmin,
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateBitzerID
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser applies a partial update to a user
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.ClearBitzerID {
		user.BitzerID = nil
	} else if input.BitzerID != nil {
		changed := user.BitzerID == nil || *user.BitzerID != *input.BitzerID
		if changed {
			if _, err := s.userRepo.FindByBitzerID(*input.BitzerID); err == nil {
				return nil, ErrDuplicateBitzerID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check bitzer id: %w", err)
			}
		}
		user.BitzerID = input.BitzerID
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.ClearPassword {
		user.PasswordHash = nil
	} else if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateBitzerID
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user. Tasks that referenced them as operator keep
// their bitzer_id snapshot; only the weak reference is detached.
func (s *UserService) DeleteUser(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
