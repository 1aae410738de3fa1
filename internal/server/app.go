// Package server initializes and runs the remember-me server: it opens the
// configured credential store, builds the ledger, serves HTTP and gRPC, and
// shuts down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/config"
	"github.com/dmitrijs2005/rememberme/internal/server/httpapi"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"

	gs "github.com/dmitrijs2005/rememberme/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	ledger     *rememberme.Ledger
	closeStore func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.SlogLevel())
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts, err := c.LedgerOptions()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx, c, opts.Table, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	ledger, err := rememberme.NewLedger(store, opts,
		rememberme.WithLogger(logger),
		rememberme.WithObserver(auditObserver(logger)),
	)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &App{config: c, logger: logger, ledger: ledger, closeStore: closeStore}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.ledger, app.config.IssuerKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.ledger, app.config.IssuerKey, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreBackend)
	if app.config.IssuerKey == "" {
		app.logger.Warn(ctx, "no issuer key configured; issuing remember-me tokens is disabled")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeStore(); err != nil {
		app.logger.Error(context.Background(), "closing store failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
