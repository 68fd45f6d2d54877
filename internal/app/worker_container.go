package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"port-terminal-core/internal/config"
	"port-terminal-core/internal/gateway/authority"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
	"port-terminal-core/internal/service/archiver"
	"port-terminal-core/internal/service/coordinator"
	"port-terminal-core/internal/service/events"
	"port-terminal-core/internal/transport/kafka"
)

type gatewayIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"gateway_retries_total"`
}

// newAuthorityGateway returns nil when no authority base URL is configured;
// customs_decided events then need to carry their own verdict.
func newAuthorityGateway(in gatewayIn) *authority.RetryingGateway {
	if in.Config.Customs.BaseURL == "" {
		return nil
	}
	base := authority.NewHTTPGateway(in.Config.Customs.BaseURL, nil)
	return authority.NewRetryingGateway(base, in.Logger, in.Counter, authority.RetryConfig{
		MaxAttempts: in.Config.Customs.MaxAttempts,
		BaseDelay:   in.Config.Customs.BaseDelay,
		MaxDelay:    in.Config.Customs.MaxDelay,
	})
}

type archiverIn struct {
	dig.In

	Runner  terminaltx.Runner
	Logger  logx.Logger
	Config  *config.Config
	Counter prometheus.Counter `name:"shipments_archived_total"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newAuthorityGateway,
		func(c *coordinator.Service, logger logx.Logger) *events.Processor {
			return events.NewProcessor(c, logger)
		},
		func(p *events.Processor, gw *authority.RetryingGateway, cfg *config.Config) kafka.HandleFunc {
			var fetcher decisionFetcher
			if gw != nil {
				fetcher = gw
			}
			return makeTerminalEventsHandler(p, fetcher, cfg.Customs.FetchTimeout)
		},
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
		func(in archiverIn) *archiver.Service {
			return archiver.NewService(in.Runner, in.Logger, in.Config.Archive.Interval, in.Counter)
		},
	)
}
