package cli

import (
	"fmt"

	"github.com/flowstate/api/internal/logger"
)

// MigrateCmd applies pending schema migrations and exits.
type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(appCtx *Context) error {
	applied, err := appCtx.Store.Migrate(func(msg string) { logger.Info(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations applied", "count", applied)
	return nil
}
