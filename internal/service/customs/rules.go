package customs

import (
	"context"
	"time"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/ports/terminaltx"
)

// CanClear reports whether the shipment may clear customs: a declaration
// exists and was approved. A missing or pending declaration is not an error,
// just a false answer.
func CanClear(ctx context.Context, tx terminaltx.Repository, shipmentID int64) (bool, error) {
	d, err := tx.GetDeclarationByShipment(ctx, shipmentID)
	if err != nil {
		return false, err
	}
	return d != nil && d.Status == domain.DeclarationApproved, nil
}

// RecordDeclaration files the single declaration for a shipment. Fails with
// ErrDuplicateDeclaration if one is already on file.
func RecordDeclaration(ctx context.Context, tx terminaltx.Repository, shipmentID int64, date time.Time) (*domain.CustomsDeclaration, error) {
	s, err := tx.GetShipmentForUpdate(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.ErrNotFound
	}

	existing, err := tx.GetDeclarationByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateDeclaration
	}

	d := &domain.CustomsDeclaration{
		ShipmentID: shipmentID,
		DeclaredAt: date,
		Status:     domain.DeclarationPending,
	}
	if err := tx.InsertDeclaration(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Approve grants the one-shot decision. Fails with ErrAlreadyDecided if the
// declaration was already approved or rejected.
func Approve(ctx context.Context, tx terminaltx.Repository, declarationID int64) (*domain.CustomsDeclaration, error) {
	return decide(ctx, tx, declarationID, domain.DeclarationApproved)
}

// Reject denies the one-shot decision; same rules as Approve.
func Reject(ctx context.Context, tx terminaltx.Repository, declarationID int64) (*domain.CustomsDeclaration, error) {
	return decide(ctx, tx, declarationID, domain.DeclarationRejected)
}

func decide(ctx context.Context, tx terminaltx.Repository, declarationID int64, verdict domain.DeclarationStatus) (*domain.CustomsDeclaration, error) {
	d, err := tx.GetDeclarationForUpdate(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	if d.Status.Decided() {
		return nil, apperr.ErrAlreadyDecided
	}

	if err := tx.UpdateDeclarationStatus(ctx, declarationID, verdict); err != nil {
		return nil, err
	}
	d.Status = verdict
	return d, nil
}
