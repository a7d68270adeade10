// Package server runs the in-memory reference backend used for local
// development and end-to-end tests of the ledgerbook client.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/dmitrijs2005/ledgerbook/internal/server/config"
	"github.com/dmitrijs2005/ledgerbook/internal/server/httpapi"
	"github.com/dmitrijs2005/ledgerbook/internal/server/records"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	instruments, err := c.SeedInstruments()
	if err != nil {
		return nil, fmt.Errorf("seed instruments: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	repo := records.NewMemoryRepository(instruments)
	router := httpapi.NewRouter(httpapi.NewHandler(repo, logger), logger)

	return &App{
		config: c,
		logger: logger,
		server: &http.Server{Addr: c.Addr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "listening", "addr", app.config.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	return app.server.Shutdown(shutdownCtx)
}
