package app

import (
	"context"
	"time"

	"port-terminal-core/internal/gateway/authority"
	"port-terminal-core/internal/service/events"
	"port-terminal-core/internal/transport/kafka"
)

type eventsHandler interface {
	Handle(context.Context, events.Event) error
}

type decisionFetcher interface {
	FetchDecision(context.Context, int64) (*authority.Decision, error)
}

// makeTerminalEventsHandler adapts the events processor to the kafka
// consumer. A customs_decided event arriving without a verdict is enriched
// from the customs authority first; an undecided declaration is skipped and
// redelivered by a later event. fetchTimeout bounds each authority lookup so
// a hung authority cannot stall the consumer group.
func makeTerminalEventsHandler(h eventsHandler, gw decisionFetcher, fetchTimeout time.Duration) kafka.HandleFunc {
	return func(ctx context.Context, event events.Event) error {
		if event.Type != events.TypeCustomsDecided || event.Decision != "" || gw == nil {
			return h.Handle(ctx, event)
		}

		gwCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		d, err := gw.FetchDecision(gwCtx, event.DeclarationID)
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}

		event.Decision = d.Outcome
		if !d.DecidedAt.IsZero() {
			event.OccurredAt = d.DecidedAt
		}
		return h.Handle(ctx, event)
	}
}
