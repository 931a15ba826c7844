package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
)

// DemoEmail is the seeded demo account's email.
const DemoEmail = "demo@flowstate.com"

// DemoPassword is the seeded demo account's password.
const DemoPassword = "flowstate"

// Bootstrap seeds a demo user with two starter habits when the store
// holds no users yet. It is safe to call on every startup; the
// emptiness check keeps it idempotent.
func Bootstrap(store *storage.Store) error {
	count, err := store.CountUsers()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        DemoEmail,
		PasswordHash: string(hash),
		Name:         "Demo User",
		Bio:          "Enjoying the flow state.",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(user); err != nil {
		return err
	}

	starters := []models.Habit{
		{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Name:      "Deep Work",
			Category:  "Work",
			GoalType:  models.GoalDuration,
			Frequency: models.FrequencyDaily,
			GoalValue: 240,
			Unit:      "min",
			Icon:      "💻",
			Color:     "#6366f1",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Name:      "Drink Water",
			Category:  "Health",
			GoalType:  models.GoalQuantitative,
			Frequency: models.FrequencyDaily,
			GoalValue: 2000,
			Unit:      "ml",
			Icon:      "💧",
			Color:     "#3b82f6",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, habit := range starters {
		if err := store.CreateHabit(habit); err != nil {
			return err
		}
	}

	logger.Info("seeded demo user", "id", user.ID, "email", user.Email)
	return nil
}
