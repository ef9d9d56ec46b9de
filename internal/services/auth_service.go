package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mkravets/business-management-api/internal/constants"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

var (
	ErrUserExists         = apierrors.ValidationError("A user with this email or username already exists")
	ErrInvalidCredentials = apierrors.UnauthenticatedError("Invalid username or password")
	ErrPasswordTooShort   = apierrors.ValidationError(fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	// ErrPrincipalNotFound is raised when a valid token names a user
	// that no longer exists.
	ErrPrincipalNotFound = apierrors.UnauthenticatedError("User not found")
)

// AuthService handles registration, credential checks and the token
// lifecycle around them.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  *string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !apierrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.StorageError("Something went wrong when checking the username", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrUserExists
	} else if !apierrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.StorageError("Something went wrong when checking the email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	// Unique indexes on username and email remain the safety net for
	// concurrent registrations.
	if err := s.userRepo.Create(user); err != nil {
		return nil, apierrors.StorageError("Something went wrong when creating the user", err)
	}

	return user, nil
}

// Login verifies credentials and returns a fresh access token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", apierrors.StorageError("Something went wrong when loading the user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.Email)
}

// Logout revokes the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Authenticate resolves the principal behind a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, apierrors.StorageError("Something went wrong when loading the user", err)
	}

	return user, nil
}
