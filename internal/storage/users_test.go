package storage

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/models"
)

func TestUserLookup(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	byID, err := store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, byID.Email)
	}

	byEmail, err := store.GetUserByEmail(user.Email)
	if err != nil {
		t.Fatalf("failed to get user by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id %q, got %q", user.ID, byEmail.ID)
	}

	if _, err := store.GetUser(uuid.New().String()); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for unknown user, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	store := newTestStore(t)

	count, err := store.CountUsers()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 users, got %d", count)
	}

	seedUser(t, store)
	seedUser(t, store)

	count, err = store.CountUsers()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 users, got %d", count)
	}
}

func TestCategoryCRUD(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	category := models.Category{
		ID:     uuid.New().String(),
		UserID: user.ID,
		Name:   "学习",
		Color:  "amber",
		Icon:   "school",
	}
	if err := store.CreateCategory(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	got, err := store.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("failed to get category: %v", err)
	}
	if got.Name != "学习" || got.Color != "amber" {
		t.Errorf("unexpected category: %+v", got)
	}

	list, err := store.GetCategoriesByUser(user.ID)
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 category, got %d", len(list))
	}

	if err := store.DeleteCategory(category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}
	if _, err := store.GetCategory(category.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows after delete, got %v", err)
	}
	if err := store.DeleteCategory(category.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for double delete, got %v", err)
	}
}
