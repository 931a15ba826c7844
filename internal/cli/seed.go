package cli

import (
	"fmt"

	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/service"
)

// SeedCmd seeds the demo account when the store is empty, then
// generates a month of habit history for it.
type SeedCmd struct{}

func (cmd *SeedCmd) Run(appCtx *Context) error {
	if _, err := appCtx.Store.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := service.Bootstrap(appCtx.Store); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	user, err := appCtx.Store.GetUserByEmail(service.DemoEmail)
	if err != nil {
		return fmt.Errorf("demo user not found: %w", err)
	}

	habits := service.NewHabitService(appCtx.Store)
	if err := habits.SeedHistory(user.ID); err != nil {
		return fmt.Errorf("failed to seed habit history: %w", err)
	}

	logger.Info("demo data seeded", "user", user.Email)
	return nil
}
