package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerbook/internal/client/catalog"
	"github.com/dmitrijs2005/ledgerbook/internal/client/client"
	"github.com/dmitrijs2005/ledgerbook/internal/client/config"
	"github.com/dmitrijs2005/ledgerbook/internal/client/editor"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/client/services"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// statusCheckInterval is how often the backend is pinged for the prompt status.
const statusCheckInterval = 15 * time.Second

type App struct {
	config      *config.Config
	log         logging.Logger
	catalog     *catalog.Catalog
	api         client.Client
	instruments *services.InstrumentDirectory
	filters     *services.FilterController
	store       *services.RecordStore
	editor      *editor.Editor

	reader *bufio.Reader
	out    io.Writer
	width  func() int
	closer io.Closer

	// ctx is the context of the running REPL, used by filter listeners.
	ctx context.Context

	mu   sync.Mutex
	Mode Mode
}

// NewApp builds the client from configuration: logger, catalog, API client
// and services.
func NewApp(c *config.Config) (*App, error) {
	var logOut io.Writer = os.Stderr
	var closer io.Closer
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logOut, closer = f, f
	}

	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if c.CatalogFile != "" {
		if cat, err = catalog.Load(c.CatalogFile); err != nil {
			return nil, err
		}
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger, client.WithRetries(c.RetryAttempts))
	if err != nil {
		return nil, err
	}

	a := newApp(c, logger, cat, api, os.Stdin, os.Stdout, time.Now)
	a.width = terminalWidth
	a.closer = closer
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, cat *catalog.Catalog, api client.Client,
	in io.Reader, out io.Writer, now func() time.Time) *App {

	a := &App{
		config:  c,
		log:     log,
		catalog: cat,
		api:     api,
		reader:  bufio.NewReader(in),
		out:     out,
		width:   func() int { return 0 },
		ctx:     context.Background(),
	}
	a.instruments = services.NewInstrumentDirectory(api, log)
	a.filters = services.NewFilterController(now)
	a.store = services.NewRecordStore(api, a.filters, log)
	a.editor = editor.New(cat, a.store, a.instruments, a, a, log, editor.WithClock(now))

	a.filters.Subscribe(func(f models.Filter, generation uint64) {
		a.reload(a.ctx)
	})
	return a
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.api.Close()
		if a.closer != nil {
			_ = a.closer.Close()
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	go a.StartOnlineStatusWatcher(ctx, statusCheckInterval)

	a.Root(ctx)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "connection mode changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
