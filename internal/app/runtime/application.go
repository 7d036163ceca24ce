// Package runtime wires configuration, storage, providers and the HTTP
// server into a runnable process.
package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	app "github.com/roamdine/platform/internal/app"
	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/httpapi"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage/postgres"
	"github.com/roamdine/platform/internal/config"
	"github.com/roamdine/platform/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg    config.Config
	log    *logger.Logger
	core   *app.Application
	server *http.Server
	hub    *httpapi.Hub
	sink   *audit.FileSink
	db     *sqlx.DB
	rdb    *redis.Client
}

// NewApplication builds the process from the configuration at path (empty
// means the default location).
func NewApplication(path string) (*Application, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}, "platform")

	a := &Application{cfg: cfg, log: log}

	var stores app.Stores
	if cfg.Database.DSN != "" {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		pg := postgres.New(db)
		stores = app.Stores{
			Tenants:       pg.Tenants(),
			Users:         pg.Users(),
			Sessions:      pg.Sessions(),
			Listings:      pg.Listings(),
			Bookings:      pg.Bookings(),
			Orders:        pg.Orders(),
			Payments:      pg.Payments(),
			Inventory:     pg.Inventory(),
			Files:         pg.Files(),
			Messages:      pg.Messages(),
			Notifications: pg.Notifications(),
			Documents:     pg.Documents(),
			Agents:        pg.Agents(),
			Directory:     pg,
			OrderStatuses: pg,
		}
	} else {
		if cfg.Production() {
			return nil, fmt.Errorf("database dsn is required in production")
		}
		log.Warn("database not configured; using in-memory stores")
	}

	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.rdb = rdb
		limiter = ratelimit.NewRedis(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	} else {
		limiter = ratelimit.NewFixedWindow(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	var sink *audit.FileSink
	if cfg.Audit.FilePath != "" {
		sink, err = audit.NewFileSink(cfg.Audit.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open audit sink: %w", err)
		}
		a.sink = sink
	}
	trail := audit.NewTrail(cfg.Audit.Capacity, sink, log)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	set, err := providers.Resolve(cfg.Providers, cfg.Environment, httpClient, log)
	if err != nil {
		return nil, err
	}

	hub := httpapi.NewHub(log)
	a.hub = hub

	core, err := app.New(stores, app.Options{
		Providers:       set,
		Audits:          trail,
		Limiter:         limiter,
		Broadcaster:     hub,
		AuthSecret:      cfg.Auth.Secret,
		SessionTTL:      cfg.Auth.SessionTTL,
		OrderStaleAfter: cfg.Orders.StaleAfter,
	}, log)
	if err != nil {
		return nil, err
	}
	a.core = core

	handler := httpapi.NewHandler(httpapi.Config{
		App:            core,
		Audits:         trail,
		Hub:            hub,
		Log:            log,
		RequestsPerSec: cfg.Server.RequestsPerSec,
	})
	a.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

// Core exposes the assembled application services.
func (a *Application) Core() *app.Application { return a.core }

// Run starts the background services and the HTTP server and blocks until
// the context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.core.Manager().Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", a.server.Addr).Info("http server listening")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the server, the background services and every owned
// resource.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.core.Manager().Stop(shutdownCtx)
	if a.hub != nil {
		a.hub.Close()
	}
	if a.sink != nil {
		if cerr := a.sink.Close(); cerr != nil {
			a.log.WithError(cerr).Warn("error closing audit sink")
		}
	}
	if a.rdb != nil {
		if cerr := a.rdb.Close(); cerr != nil {
			a.log.WithError(cerr).Warn("error closing redis client")
		}
	}
	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil {
			a.log.WithError(cerr).Warn("error closing database connection")
		}
	}
	return err
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
