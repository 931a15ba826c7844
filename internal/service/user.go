package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
)

// UserService handles registration and credential verification.
type UserService struct {
	store *storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a new user with a bcrypt-hashed password. Fails with
// Conflict when the email is already taken.
func (s *UserService) Register(email, password, name string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.User{}, apperr.Invalid("email and password are required")
	}

	if _, err := s.store.GetUserByEmail(email); err == nil {
		return models.User{}, apperr.Conflict("email is already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the user. A missing
// user and a wrong password both yield Unauthorized, so callers cannot
// probe which emails exist.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.Unauthorized("invalid email or password")
		}
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.Unauthorized("invalid email or password")
	}
	return user, nil
}

// GetUser returns the user by id.
func (s *UserService) GetUser(id string) (models.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
