package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowstate/api/internal/api"
	"github.com/flowstate/api/internal/auth"
	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/service"
)

// ServeCmd runs migrations, seeds the demo account on an empty store,
// and serves the REST API until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address." default:":8080"`
}

func (cmd *ServeCmd) Run(appCtx *Context) error {
	if _, err := appCtx.Store.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := service.Bootstrap(appCtx.Store); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	tokens := auth.NewManager(appCtx.JWTSecret)
	router := api.New(appCtx.Store, tokens).Router()

	server := &http.Server{
		Addr:              cmd.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cmd.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
