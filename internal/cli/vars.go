package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/config"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
	"github.com/WorksphereAI/worksphereai-sub002/internal/session"
)

// Backend bundles the data-plane dependencies commands open on demand.
// Commands like version never touch the database or redis.
type Backend struct {
	Gateway    gateway.Gateway
	Dispatcher *assistant.Dispatcher
	History    session.Store
	EventLog   observability.EventLog
	Metrics    observability.MetricsCalculator

	// Close releases every connection the backend holds.
	Close func()
}

// Injected by the internal App during initialization.
var (
	Cfg         *config.Config
	Log         *zap.Logger
	OpenBackend func(ctx context.Context) (*Backend, error)
)
