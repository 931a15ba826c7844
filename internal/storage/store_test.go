package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "flowstate.db"))
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Migrate(nil); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func seedUser(t *testing.T, store *Store) models.User {
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

func seedHabit(t *testing.T, store *Store, userID, name string, goal int) models.Habit {
	t.Helper()

	now := time.Now()
	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Category:  "test",
		GoalType:  models.GoalQuantitative,
		Frequency: models.FrequencyDaily,
		GoalValue: goal,
		Unit:      "times",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	return habit
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	applied, err := store.Migrate(nil)
	if err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", applied)
	}
	if err := store.ValidateSchema(); err != nil {
		t.Errorf("schema should validate after migrate: %v", err)
	}
}

func TestRebindPostgres(t *testing.T) {
	got := rebindPostgres("INSERT INTO t (a, b, c) VALUES (?, ?, ?)")
	want := "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNewStoreDetectsPostgres(t *testing.T) {
	if s := NewStore("postgres://localhost/flowstate"); !s.postgres {
		t.Error("postgres:// DSN should select postgres")
	}
	if s := NewStore("postgresql://localhost/flowstate"); !s.postgres {
		t.Error("postgresql:// DSN should select postgres")
	}
	if s := NewStore("data/flowstate.db"); s.postgres {
		t.Error("file path should select sqlite")
	}
}
