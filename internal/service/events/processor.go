package events

import (
	"context"
	"strings"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
)

// Processor routes terminal events to the allocation coordinator. Domain
// rejections (redeliveries, out of order events) are logged and skipped so
// they never poison the consumer group.
type Processor struct {
	coordinator CoordinatorPort
	logger      logx.Logger
	factory     *actionFactory
}

// NewProcessor creates a new events.Processor
func NewProcessor(coordinator CoordinatorPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		coordinator: coordinator,
		logger:      logger,
	}
	p.factory = newActionFactory(p.onVesselArrived, p.onVesselDeparted, p.onContainerDischarged, p.onCustomsDecided, p.onContainerPickedUp)
	return p
}

// Handle processes a single events.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Warn("unknown event type skipped", logx.String("type", e.Type))
		return nil
	}
	return p.skipDomain(e, fn(ctx, e))
}

// skipDomain swallows domain rejections so the consumer can move on; storage
// and transport failures still bubble up for retry.
func (p *Processor) skipDomain(e Event, err error) error {
	if err == nil {
		return nil
	}
	if apperr.IsDomain(err) {
		p.logger.Warn("event rejected by domain, skipped",
			logx.String("type", e.Type),
			logx.Err(err),
		)
		return nil
	}
	return err
}

func (p *Processor) onVesselArrived(ctx context.Context, e Event) error {
	return p.coordinator.VesselArrives(ctx, e.VesselID, e.BerthID)
}

func (p *Processor) onVesselDeparted(ctx context.Context, e Event) error {
	return p.coordinator.VesselDeparts(ctx, e.VesselID)
}

func (p *Processor) onContainerDischarged(ctx context.Context, e Event) error {
	return p.coordinator.ContainerDischarged(ctx, e.ContainerID, e.YardStackID)
}

func (p *Processor) onCustomsDecided(ctx context.Context, e Event) error {
	switch domain.DeclarationStatus(strings.ToUpper(strings.TrimSpace(e.Decision))) {
	case domain.DeclarationApproved:
		return p.coordinator.CustomsApproved(ctx, e.DeclarationID)
	case domain.DeclarationRejected:
		return p.coordinator.CustomsRejected(ctx, e.DeclarationID)
	default:
		p.logger.Warn("customs event without a decision skipped",
			logx.Int64("declaration_id", e.DeclarationID),
			logx.String("decision", e.Decision),
		)
		return nil
	}
}

func (p *Processor) onContainerPickedUp(ctx context.Context, e Event) error {
	return p.coordinator.ContainerPickedUp(ctx, e.ContainerID, e.TruckID)
}
