package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store := storage.NewStore(filepath.Join(t.TempDir(), "flowstate.db"))
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Migrate(nil); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func seedUser(t *testing.T, store *storage.Store) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func insertLog(t *testing.T, store *storage.Store, habitID, day string, value int, completed bool) {
	t.Helper()

	log := models.HabitLog{
		ID:           uuid.New().String(),
		HabitID:      habitID,
		Day:          day,
		CurrentValue: value,
		IsCompleted:  completed,
		CreatedAt:    time.Now(),
	}
	if err := store.InsertHabitLog(log); err != nil {
		t.Fatalf("failed to insert log for %s: %v", day, err)
	}
}
