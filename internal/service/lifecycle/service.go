package lifecycle

import (
	"context"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
)

// Service drives shipment lifecycle transitions, one transaction per event.
type Service struct {
	runner terminaltx.Runner
	logger logx.Logger
}

// NewService creates and configures a lifecycle Service.
func NewService(runner terminaltx.Runner, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{runner: runner, logger: logger}
}

// Fire applies a lifecycle event to a shipment.
func (s *Service) Fire(ctx context.Context, shipmentID int64, event Event) (domain.ShipmentStatus, error) {
	if shipmentID <= 0 {
		return "", apperr.ErrInvalid
	}

	var next domain.ShipmentStatus
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		var err error
		next, err = Fire(ctx, tx, shipmentID, event)
		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("shipment transition",
		logx.String("event", string(event)),
		logx.Int64("shipment_id", shipmentID),
		logx.String("status", string(next)),
	)
	return next, nil
}
