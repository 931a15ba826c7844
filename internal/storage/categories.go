package storage

import (
	"fmt"

	"github.com/flowstate/api/internal/models"
)

func (s *Store) CreateCategory(category models.Category) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO categories (id, user_id, name, color, icon)
		VALUES (?, ?, ?, ?, ?)`),
		category.ID, category.UserID, category.Name, category.Color, category.Icon)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	rows, err := s.db.Query(s.rebind(
		"SELECT id, user_id, name, color, icon FROM categories WHERE id = ?"), id)
	if err != nil {
		return models.Category{}, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon); err != nil {
			return models.Category{}, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return models.Category{}, err
	}
	if len(categories) == 0 {
		return models.Category{}, errNoRows("category", id)
	}
	return categories[0], nil
}

func (s *Store) GetCategoriesByUser(userID string) ([]models.Category, error) {
	rows, err := s.db.Query(s.rebind(
		"SELECT id, user_id, name, color, icon FROM categories WHERE user_id = ? ORDER BY name"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) DeleteCategory(id string) error {
	result, err := s.db.Exec(s.rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errNoRows("category", id)
	}
	return nil
}
