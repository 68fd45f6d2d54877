package archiver

import (
	"context"
	"time"

	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
)

const defaultBatchSize = 100

type counter interface {
	Inc()
}

// Service periodically closes out delivered shipments by stamping their
// archive time. Each sweep archives at most one batch per transaction so a
// long backlog never holds row locks for the whole run.
type Service struct {
	runner   terminaltx.Runner
	logger   logx.Logger
	interval time.Duration
	batch    int
	archived counter
	now      func() time.Time
}

// NewService creates and configures an archiver Service. The archived
// counter may be nil.
func NewService(runner terminaltx.Runner, logger logx.Logger, interval time.Duration, archived counter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		runner:   runner,
		logger:   logger,
		interval: interval,
		batch:    defaultBatchSize,
		archived: archived,
		now:      time.Now,
	}
}

// Run sweeps on the configured interval until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.logger.Error("archive sweep failed", logx.Err(err))
				continue
			}
			if n > 0 {
				s.logger.Info("shipments archived", logx.Int("count", n))
			}
		}
	}
}

// Sweep archives one batch of delivered shipments and reports how many were
// closed out.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	var archived int
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		ids, err := tx.ListDeliveredUnarchived(ctx, s.batch)
		if err != nil {
			return err
		}
		at := s.now()
		for _, id := range ids {
			if err := tx.ArchiveShipment(ctx, id, at); err != nil {
				return err
			}
		}
		archived = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.archived != nil {
		for i := 0; i < archived; i++ {
			s.archived.Inc()
		}
	}
	return archived, nil
}
