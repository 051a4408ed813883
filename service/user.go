package service

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/wirefeed/wirefeed/model"
	"gorm.io/gorm"
)

// UserService creates and resolves accounts. Credentials are opaque
// here: callers hash passwords before handing them over and verify
// them after reading them back.
type UserService struct {
	DB *gorm.DB
}

// CreateUser registers a new active account. The username must be
// unique; a duplicate surfaces as a ValidationError since the caller
// typed it.
func (s *UserService) CreateUser(username string, email string, passwordHash string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Reason: "Username cannot be empty."}
	}
	if len([]rune(username)) > 150 {
		return nil, &ValidationError{Reason: "Username too long."}
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if uniqueViolation(err) {
			return nil, &ValidationError{Reason: "Username already taken."}
		}
		return nil, errors.Wrap(err, "create user")
	}
	return &user, nil
}

// GetByUsername resolves an account by its unique handle.
func (s *UserService) GetByUsername(username string) (*model.User, error) {
	var user model.User
	queryResult := s.DB.Where("username = ?", username).First(&user)
	if errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if queryResult.Error != nil {
		return nil, errors.Wrap(queryResult.Error, "get user")
	}
	return &user, nil
}
