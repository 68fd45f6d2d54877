package customs

import (
	"context"
	"time"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
)

// Service is the customs gate: it files declarations, records one-shot
// decisions, and answers clearance eligibility.
type Service struct {
	runner terminaltx.Runner
	logger logx.Logger
	now    func() time.Time
}

// NewService creates and configures a customs Service.
func NewService(runner terminaltx.Runner, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		runner: runner,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CanClear reports whether the shipment's declaration permits clearance.
func (s *Service) CanClear(ctx context.Context, shipmentID int64) (bool, error) {
	if shipmentID <= 0 {
		return false, apperr.ErrInvalid
	}
	var ok bool
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		var err error
		ok, err = CanClear(ctx, tx, shipmentID)
		return err
	})
	return ok, err
}

// RecordDeclaration files the shipment's declaration with the given
// declaration date; the zero time means "now".
func (s *Service) RecordDeclaration(ctx context.Context, shipmentID int64, date time.Time) (*domain.CustomsDeclaration, error) {
	if shipmentID <= 0 {
		return nil, apperr.ErrInvalid
	}
	if date.IsZero() {
		date = s.now()
	}

	var d *domain.CustomsDeclaration
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		var err error
		d, err = RecordDeclaration(ctx, tx, shipmentID, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("declaration recorded",
		logx.String("event", "declaration_recorded"),
		logx.Int64("shipment_id", shipmentID),
		logx.Int64("declaration_id", d.ID),
		logx.Time("declared_at", d.DeclaredAt),
	)
	return d, nil
}

// Approve grants the declaration's one-shot decision.
func (s *Service) Approve(ctx context.Context, declarationID int64) error {
	return s.decide(ctx, declarationID, domain.DeclarationApproved)
}

// Reject denies the declaration's one-shot decision.
func (s *Service) Reject(ctx context.Context, declarationID int64) error {
	return s.decide(ctx, declarationID, domain.DeclarationRejected)
}

func (s *Service) decide(ctx context.Context, declarationID int64, verdict domain.DeclarationStatus) error {
	if declarationID <= 0 {
		return apperr.ErrInvalid
	}

	var d *domain.CustomsDeclaration
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		var err error
		d, err = decide(ctx, tx, declarationID, verdict)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("declaration decided",
		logx.String("event", "declaration_decided"),
		logx.Int64("declaration_id", declarationID),
		logx.Int64("shipment_id", d.ShipmentID),
		logx.String("verdict", string(verdict)),
	)
	return nil
}
