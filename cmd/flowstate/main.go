package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/flowstate/api/internal/cli"
	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `help:"SQLite file path or PostgreSQL connection string." env:"FLOWSTATE_DB" default:"data/flowstate.db"`
	JWTSecret string `help:"Secret for signing access tokens." env:"FLOWSTATE_JWT_SECRET" default:"flowstate-dev-secret"`
	LogDir    string `help:"Directory for rotating log files. Empty disables file logging." env:"FLOWSTATE_LOG_DIR"`
	Debug     bool   `help:"Enable debug logging." env:"FLOWSTATE_DEBUG"`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the API server." default:"1"`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Seed    cli.SeedCmd    `cmd:"" help:"Seed demo data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flowstate"),
		kong.Description("Personal productivity backend: habits, timeline, focus sessions."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: CLI.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewStore(CLI.DB)
	if err := store.Open(); err != nil {
		logger.Fatal("failed to open storage", "error", err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		JWTSecret: CLI.JWTSecret,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
