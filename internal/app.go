// Package internal provides the App struct that wires all components of the
// WorkSphere assistant together and initializes the CLI layer.
package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/cli"
	"github.com/WorksphereAI/worksphereai-sub002/internal/config"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
	"github.com/WorksphereAI/worksphereai-sub002/internal/session"
)

// App holds the control-plane dependencies of the assistant. Data-plane
// connections (Postgres, redis) are opened on demand by the commands that
// need them and released on every exit path.
type App struct {
	BasePath string
	Cfg      *config.Config
	Log      *zap.Logger
}

// ResolveBasePath returns the directory configuration and the event log live
// in: WORKSPHERE_HOME when set, the working directory otherwise.
func ResolveBasePath() string {
	if home := os.Getenv("WORKSPHERE_HOME"); home != "" {
		return home
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// NewApp loads configuration, builds the logger, and injects the CLI layer.
func NewApp(basePath string) (*App, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	app := &App{BasePath: basePath, Cfg: cfg, Log: logger}

	cli.Cfg = cfg
	cli.Log = logger
	cli.OpenBackend = app.openBackend

	return app, nil
}

// openBackend connects to Postgres (and redis when configured), wires the
// gateway, dispatcher, session store, and observability, and returns a
// Backend whose Close releases everything.
func (a *App) openBackend(ctx context.Context) (*cli.Backend, error) {
	db, err := gateway.Open(ctx, a.Cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var closers []func()
	closers = append(closers, func() { _ = db.Close() })

	gw := gateway.NewPostgres(db)
	dispatcher := assistant.NewDispatcher(gw, assistant.Config{
		PageSize:         a.Cfg.Assistant.PageSize,
		ApprovalPageSize: a.Cfg.Assistant.ApprovalPageSize,
	})

	history, closeHistory, err := a.openHistory(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if closeHistory != nil {
		closers = append(closers, closeHistory)
	}

	// Observability is non-fatal: a broken event log disables it.
	var events observability.EventLog
	var metrics observability.MetricsCalculator
	if a.Cfg.EventLogPath != "" {
		path := a.Cfg.EventLogPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.BasePath, path)
		}
		events, err = observability.NewJSONLEventLog(path)
		if err != nil {
			a.Log.Warn("event log disabled", zap.Error(err))
			events = nil
		}
	}
	if events != nil {
		metrics = observability.NewMetricsCalculator(events)
		closers = append(closers, func() { _ = events.Close() })
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	return &cli.Backend{
		Gateway:    gw,
		Dispatcher: dispatcher,
		History:    history,
		EventLog:   events,
		Metrics:    metrics,
		Close:      closeAll,
	}, nil
}

// openHistory picks the session store: redis when configured, in-process
// memory otherwise.
func (a *App) openHistory(ctx context.Context) (session.Store, func(), error) {
	if a.Cfg.Redis.URL == "" {
		return session.NewMemoryStore(), nil, nil
	}

	opts, err := redis.ParseURL(a.Cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return session.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
}
