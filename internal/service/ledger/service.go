package ledger

import (
	"context"
	"errors"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
)

type counter interface {
	Inc()
}

// Service is the resource ledger: authoritative occupancy accounting for
// berths and yard stacks. Each public operation runs in its own transaction;
// callers that need to compose ledger moves with lifecycle transitions use
// the rule functions directly inside their own transaction.
type Service struct {
	runner             terminaltx.Runner
	logger             logx.Logger
	capacityRejections counter
}

// NewService creates and configures a ledger Service. The rejection counter
// may be nil.
func NewService(runner terminaltx.Runner, logger logx.Logger, capacityRejections counter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{runner: runner, logger: logger, capacityRejections: capacityRejections}
}

// ReserveBerth moors a vessel at a berth.
func (s *Service) ReserveBerth(ctx context.Context, vesselID, berthID int64) error {
	if vesselID <= 0 || berthID <= 0 {
		return apperr.ErrInvalid
	}
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return ReserveBerth(ctx, tx, vesselID, berthID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("berth reserved",
		logx.String("event", "berth_reserved"),
		logx.Int64("vessel_id", vesselID),
		logx.Int64("berth_id", berthID),
	)
	return nil
}

// ReleaseBerth frees a berth.
func (s *Service) ReleaseBerth(ctx context.Context, berthID int64) error {
	if berthID <= 0 {
		return apperr.ErrInvalid
	}
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return ReleaseBerth(ctx, tx, berthID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("berth released",
		logx.String("event", "berth_released"),
		logx.Int64("berth_id", berthID),
	)
	return nil
}

// PlaceContainer stores a container in a yard stack.
func (s *Service) PlaceContainer(ctx context.Context, yardStackID, containerID int64) error {
	if yardStackID <= 0 || containerID <= 0 {
		return apperr.ErrInvalid
	}
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return PlaceContainer(ctx, tx, yardStackID, containerID)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrCapacityExceeded) && s.capacityRejections != nil {
			s.capacityRejections.Inc()
		}
		return err
	}

	s.logger.Info("container placed",
		logx.String("event", "container_placed"),
		logx.Int64("yard_stack_id", yardStackID),
		logx.Int64("container_id", containerID),
	)
	return nil
}

// RemoveContainer takes a container out of a yard stack.
func (s *Service) RemoveContainer(ctx context.Context, yardStackID, containerID int64) error {
	if yardStackID <= 0 || containerID <= 0 {
		return apperr.ErrInvalid
	}
	return s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return RemoveContainer(ctx, tx, yardStackID, containerID)
	})
}

// SetBerthMaintenance takes a vacant berth out of rotation.
func (s *Service) SetBerthMaintenance(ctx context.Context, berthID int64) error {
	if berthID <= 0 {
		return apperr.ErrInvalid
	}
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return SetBerthMaintenance(ctx, tx, berthID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("berth under maintenance",
		logx.String("event", "berth_maintenance"),
		logx.Int64("berth_id", berthID),
	)
	return nil
}
