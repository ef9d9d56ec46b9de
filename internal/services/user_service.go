package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mkravets/business-management-api/internal/constants"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

var ErrUserNotFound = apierrors.NotFoundError("User not found")

// UserService manages the profile of the authenticated user.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput carries the optional profile fields. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// GetUser loads a user by ID.
func (s *UserService) GetUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apierrors.StorageError("Something went wrong when loading the user", err)
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Username and email
// changes are checked against the other accounts first.
func (s *UserService) UpdateUser(userID uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != user.Username {
			if other, err := s.userRepo.FindByUsername(username); err == nil && other.ID != user.ID {
				return nil, ErrUserExists
			} else if err != nil && !apierrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.StorageError("Something went wrong when checking the username", err)
			}
			user.Username = username
		}
	}

	if input.Email != nil && *input.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(*input.Email); err == nil && other.ID != user.ID {
			return nil, ErrUserExists
		} else if err != nil && !apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.StorageError("Something went wrong when checking the email", err)
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierrors.StorageError("Something went wrong when updating the password", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apierrors.StorageError("Something went wrong when updating the user", err)
	}

	return user, nil
}

// DeleteUser removes the account together with its comments,
// evaluations, meeting participations and memberships. Teams left
// without members are removed as well.
func (s *UserService) DeleteUser(userID uint64) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apierrors.StorageError("Something went wrong when deleting the user", err)
	}
	return nil
}
