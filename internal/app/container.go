package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"port-terminal-core/internal/config"
	"port-terminal-core/internal/http/handlers"
	"port-terminal-core/internal/http/pprofserver"
	"port-terminal-core/internal/http/router"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/metrics"
	"port-terminal-core/internal/ports/terminaltx"
	"port-terminal-core/internal/repository"
	"port-terminal-core/internal/service/coordinator"
	"port-terminal-core/internal/service/customs"
	"port-terminal-core/internal/service/ledger"
	"port-terminal-core/internal/service/lifecycle"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
	worker    bool
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// WithWorker adds the worker providers (kafka intake, archiver, gateway)
func (b *ContainerBuilder) WithWorker() *ContainerBuilder {
	b.worker = true
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if b.worker {
		if err := registerWorker(container); err != nil {
			return nil, fmt.Errorf("worker: %w", err)
		}
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds a container with the worker providers
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().WithWorker().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

type metricsOut struct {
	dig.Out

	CapacityRejected  prometheus.Counter `name:"yard_capacity_rejected_total"`
	GatewayRetries    prometheus.Counter `name:"gateway_retries_total"`
	EventsHandled     prometheus.Counter `name:"terminal_events_handled_total"`
	ShipmentsArchived prometheus.Counter `name:"shipments_archived_total"`
}

func newMetrics(reg *prometheus.Registry) metricsOut {
	out := metricsOut{
		CapacityRejected:  metrics.NewCapacityRejectedTotal(),
		GatewayRetries:    metrics.NewGatewayRetriesTotal(),
		EventsHandled:     metrics.NewTerminalEventsHandledTotal(),
		ShipmentsArchived: metrics.NewShipmentsArchivedTotal(),
	}
	reg.MustRegister(out.CapacityRejected, out.GatewayRetries, out.EventsHandled, out.ShipmentsArchived)
	return out
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		prometheus.NewRegistry,
		newMetrics,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type ledgerIn struct {
	dig.In

	Runner  terminaltx.Runner
	Logger  logx.Logger
	Counter prometheus.Counter `name:"yard_capacity_rejected_total"`
}

type coordinatorIn struct {
	dig.In

	Runner  terminaltx.Runner
	Logger  logx.Logger
	Counter prometheus.Counter `name:"terminal_events_handled_total"`
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewTerminalRepo,
		repository.NewClientRepo,
		func(r *repository.TerminalRepo) terminaltx.Runner { return r },
		func(in ledgerIn) *ledger.Service {
			return ledger.NewService(in.Runner, in.Logger, in.Counter)
		},
		func(runner terminaltx.Runner, logger logx.Logger) *customs.Service {
			return customs.NewService(runner, logger)
		},
		func(runner terminaltx.Runner, logger logx.Logger) *lifecycle.Service {
			return lifecycle.NewService(runner, logger)
		},
		func(in coordinatorIn) *coordinator.Service {
			return coordinator.NewService(in.Runner, in.Logger, in.Counter)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config) pprofserver.Config {
		return pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}
	}
	return provideAll(container,
		handlers.New,
		router.New,
		pprofProvider,
		serverProvider,
	)
}
