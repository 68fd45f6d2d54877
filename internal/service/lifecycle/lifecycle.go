package lifecycle

import (
	"context"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/ports/terminaltx"
	"port-terminal-core/internal/service/customs"
)

// Event is a shipment lifecycle event.
type Event string

// List of shipment lifecycle events
const (
	EventDepart  Event = "depart"
	EventArrive  Event = "arrive"
	EventClear   Event = "clear"
	EventDeliver Event = "deliver"
)

type transition struct {
	from domain.ShipmentStatus
	to   domain.ShipmentStatus
}

// transitions is the single allowed path through the shipment state machine:
// no skips, no reversals.
var transitions = map[Event]transition{
	EventDepart:  {from: domain.ShipmentPending, to: domain.ShipmentInTransit},
	EventArrive:  {from: domain.ShipmentInTransit, to: domain.ShipmentAwaitingCustoms},
	EventClear:   {from: domain.ShipmentAwaitingCustoms, to: domain.ShipmentCleared},
	EventDeliver: {from: domain.ShipmentCleared, to: domain.ShipmentDelivered},
}

// Valid checks if the Event is a known lifecycle event.
func (e Event) Valid() bool {
	_, ok := transitions[e]
	return ok
}

// Fire applies a lifecycle event to a shipment inside the caller's
// transaction and returns the resulting status. The status row stays
// untouched on any failure: ErrTerminalState for delivered shipments,
// ErrInvalidTransition for a wrong from-state or a failed precondition.
func Fire(ctx context.Context, tx terminaltx.Repository, shipmentID int64, event Event) (domain.ShipmentStatus, error) {
	s, err := tx.GetShipmentForUpdate(ctx, shipmentID)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", apperr.ErrNotFound
	}
	if s.Status == domain.ShipmentDelivered {
		return "", apperr.ErrTerminalState
	}

	tr, ok := transitions[event]
	if !ok || s.Status != tr.from {
		return "", apperr.ErrInvalidTransition
	}

	if err := checkPrecondition(ctx, tx, s, event); err != nil {
		return "", err
	}

	if err := tx.UpdateShipmentStatus(ctx, shipmentID, tr.to); err != nil {
		return "", err
	}
	return tr.to, nil
}

func checkPrecondition(ctx context.Context, tx terminaltx.Repository, s *domain.Shipment, event Event) error {
	switch event {
	case EventDepart:
		return allContainersAboard(ctx, tx, s.ID)
	case EventArrive:
		return carryingVesselsBerthed(ctx, tx, s.ID)
	case EventClear:
		ok, err := customs.CanClear(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidTransition
		}
		return nil
	case EventDeliver:
		return allContainersReleased(ctx, tx, s.ID)
	default:
		return apperr.ErrInvalidTransition
	}
}

// allContainersAboard requires every container of the shipment to be loaded
// on a vessel before departure.
func allContainersAboard(ctx context.Context, tx terminaltx.Repository, shipmentID int64) error {
	containers, err := tx.ListContainersByShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	if len(containers) == 0 {
		return apperr.ErrInvalidTransition
	}
	for _, c := range containers {
		if _, ok := c.Location.Aboard(); !ok {
			return apperr.ErrInvalidTransition
		}
	}
	return nil
}

// carryingVesselsBerthed requires every vessel holding the shipment's
// containers to be moored; the resource ledger's berth links are the
// authority.
func carryingVesselsBerthed(ctx context.Context, tx terminaltx.Repository, shipmentID int64) error {
	containers, err := tx.ListContainersByShipment(ctx, shipmentID)
	if err != nil {
		return err
	}

	checked := map[int64]bool{}
	aboard := false
	for _, c := range containers {
		vesselID, ok := c.Location.Aboard()
		if !ok {
			continue
		}
		aboard = true
		if checked[vesselID] {
			continue
		}
		checked[vesselID] = true

		b, err := tx.FindBerthByVessel(ctx, vesselID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.ErrInvalidTransition
		}
	}
	if !aboard {
		return apperr.ErrInvalidTransition
	}
	return nil
}

// allContainersReleased requires every container of the shipment to be off
// vessels and out of the yard (picked up or final drop-off).
func allContainersReleased(ctx context.Context, tx terminaltx.Repository, shipmentID int64) error {
	containers, err := tx.ListContainersByShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	for _, c := range containers {
		if !c.Location.None() {
			return apperr.ErrInvalidTransition
		}
	}
	return nil
}
