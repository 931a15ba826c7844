package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/constants"
	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
)

// CategoryService manages user-owned categories and their one-time
// default seeding.
type CategoryService struct {
	store *storage.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// GetForUser returns the user's categories, seeding the five defaults
// first when the user has none. The seed is guarded by the emptiness
// check, so repeated calls stay idempotent.
func (s *CategoryService) GetForUser(userID string) ([]models.Category, error) {
	categories, err := s.store.GetCategoriesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if len(categories) == 0 {
		if err := s.seedDefaults(userID); err != nil {
			return nil, err
		}
		categories, err = s.store.GetCategoriesByUser(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload categories: %w", err)
		}
	}

	return categories, nil
}

// Create persists a new category for the user.
func (s *CategoryService) Create(userID, name, color, icon string) (models.Category, error) {
	if err := s.requireUser(userID); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}
	if err := s.store.CreateCategory(category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Delete removes the category. Fails with Unauthorized when it belongs
// to a different user.
func (s *CategoryService) Delete(userID, categoryID string) error {
	category, err := s.store.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("category not found")
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	if category.UserID != userID {
		return apperr.Unauthorized("category does not belong to user")
	}

	return s.store.DeleteCategory(categoryID)
}

func (s *CategoryService) seedDefaults(userID string) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}

	for _, def := range constants.DefaultCategories {
		category := models.Category{
			ID:     uuid.New().String(),
			UserID: userID,
			Name:   def.Name,
			Color:  def.Color,
			Icon:   def.Icon,
		}
		if err := s.store.CreateCategory(category); err != nil {
			return err
		}
	}
	logger.Info("seeded default categories", "user", userID)
	return nil
}

func (s *CategoryService) requireUser(userID string) error {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return nil
}
