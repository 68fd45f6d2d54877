package coordinator

import (
	"context"
	"errors"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/ports/terminaltx"
	"port-terminal-core/internal/service/customs"
	"port-terminal-core/internal/service/ledger"
	"port-terminal-core/internal/service/lifecycle"
)

type counter interface {
	Inc()
}

// Service is the allocation coordinator. Every operation runs as a single
// transaction composing ledger moves with lifecycle transitions, so a failed
// sub-step leaves no partial mutation behind.
type Service struct {
	runner        terminaltx.Runner
	logger        logx.Logger
	eventsHandled counter
}

// NewService creates and configures a coordinator Service. The events
// counter may be nil.
func NewService(runner terminaltx.Runner, logger logx.Logger, eventsHandled counter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{runner: runner, logger: logger, eventsHandled: eventsHandled}
}

// VesselArrives moors the vessel and moves every shipment aboard from
// IN_TRANSIT to AWAITING_CUSTOMS. A failed berth reservation aborts the call
// before any lifecycle transition is attempted. Shipments whose declaration
// was approved while in transit clear in the same call, since no later event
// carries that verdict again.
func (s *Service) VesselArrives(ctx context.Context, vesselID, berthID int64) error {
	if vesselID <= 0 || berthID <= 0 {
		return apperr.ErrInvalid
	}

	var arrived, cleared int
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		arrived, cleared = 0, 0

		if err := ledger.ReserveBerth(ctx, tx, vesselID, berthID); err != nil {
			return err
		}

		shipmentIDs, err := tx.ListShipmentsAboard(ctx, vesselID)
		if err != nil {
			return err
		}
		for _, shipmentID := range shipmentIDs {
			if _, err := lifecycle.Fire(ctx, tx, shipmentID, lifecycle.EventArrive); err != nil {
				return err
			}
			arrived++

			_, err := lifecycle.Fire(ctx, tx, shipmentID, lifecycle.EventClear)
			switch {
			case err == nil:
				cleared++
			case errors.Is(err, apperr.ErrInvalidTransition):
				// gate not approved yet, the shipment waits at customs
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("vessel arrived",
		logx.String("event", "vessel_arrived"),
		logx.Int64("vessel_id", vesselID),
		logx.Int64("berth_id", berthID),
		logx.Int("shipments", arrived),
		logx.Int("cleared", cleared),
	)
	return nil
}

// VesselDeparts frees the vessel's berth and moves every PENDING shipment
// loaded aboard to IN_TRANSIT. Shipments aboard in later states (inbound
// cargo not yet discharged) are left alone.
func (s *Service) VesselDeparts(ctx context.Context, vesselID int64) error {
	if vesselID <= 0 {
		return apperr.ErrInvalid
	}

	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		b, err := tx.FindBerthByVessel(ctx, vesselID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.ErrNotOccupied
		}
		if err := ledger.ReleaseBerth(ctx, tx, b.ID); err != nil {
			return err
		}

		shipmentIDs, err := tx.ListShipmentsAboard(ctx, vesselID)
		if err != nil {
			return err
		}
		for _, shipmentID := range shipmentIDs {
			sh, err := tx.GetShipmentForUpdate(ctx, shipmentID)
			if err != nil {
				return err
			}
			if sh == nil || sh.Status != domain.ShipmentPending {
				continue
			}
			if _, err := lifecycle.Fire(ctx, tx, shipmentID, lifecycle.EventDepart); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("vessel departed",
		logx.String("event", "vessel_departed"),
		logx.Int64("vessel_id", vesselID),
	)
	return nil
}

// ContainerDischarged moves a container from its vessel into a yard stack.
// The shipment stays AWAITING_CUSTOMS until cleared.
func (s *Service) ContainerDischarged(ctx context.Context, containerID, yardStackID int64) error {
	if containerID <= 0 || yardStackID <= 0 {
		return apperr.ErrInvalid
	}

	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		return ledger.PlaceContainer(ctx, tx, yardStackID, containerID)
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("container discharged",
		logx.String("event", "container_discharged"),
		logx.Int64("container_id", containerID),
		logx.Int64("yard_stack_id", yardStackID),
	)
	return nil
}

// CustomsApproved records the approval and attempts to clear the owning
// shipment. Clearance is a paperwork event: containers still aboard or in
// the yard do not block it. A shipment not yet awaiting customs keeps the
// approval on file; the clear is retried when its arrive transition lands.
// When every container already left the terminal, clearance was the last
// outstanding gate and the shipment delivers in the same call.
func (s *Service) CustomsApproved(ctx context.Context, declarationID int64) error {
	if declarationID <= 0 {
		return apperr.ErrInvalid
	}

	var (
		shipmentID int64
		cleared    bool
		delivered  bool
	)
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		cleared, delivered = false, false

		d, err := customs.Approve(ctx, tx, declarationID)
		if err != nil {
			return err
		}
		shipmentID = d.ShipmentID

		_, err = lifecycle.Fire(ctx, tx, d.ShipmentID, lifecycle.EventClear)
		switch {
		case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, apperr.ErrTerminalState):
			// approval stands even when the shipment cannot clear yet
			return nil
		case err != nil:
			return err
		}
		cleared = true

		_, err = lifecycle.Fire(ctx, tx, d.ShipmentID, lifecycle.EventDeliver)
		switch {
		case err == nil:
			delivered = true
			return nil
		case errors.Is(err, apperr.ErrInvalidTransition):
			// containers still on terminal grounds, pickups deliver later
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("customs approved",
		logx.String("event", "customs_approved"),
		logx.Int64("declaration_id", declarationID),
		logx.Int64("shipment_id", shipmentID),
		logx.Any("cleared", cleared),
		logx.Any("delivered", delivered),
	)
	return nil
}

// CustomsRejected records the rejection; the shipment stays AWAITING_CUSTOMS
// and can never clear on this declaration.
func (s *Service) CustomsRejected(ctx context.Context, declarationID int64) error {
	if declarationID <= 0 {
		return apperr.ErrInvalid
	}

	var shipmentID int64
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		d, err := customs.Reject(ctx, tx, declarationID)
		if err != nil {
			return err
		}
		shipmentID = d.ShipmentID
		return nil
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("customs rejected",
		logx.String("event", "customs_rejected"),
		logx.Int64("declaration_id", declarationID),
		logx.Int64("shipment_id", shipmentID),
	)
	return nil
}

// ContainerPickedUp releases a container from its yard stack to a truck and,
// when this was the shipment's last container on terminal grounds, delivers
// the shipment.
func (s *Service) ContainerPickedUp(ctx context.Context, containerID, truckID int64) error {
	if containerID <= 0 || truckID <= 0 {
		return apperr.ErrInvalid
	}

	var delivered bool
	err := s.runner.WithTx(ctx, func(tx terminaltx.Repository) error {
		c, err := tx.GetContainerForUpdate(ctx, containerID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.ErrNotFound
		}

		yardStackID, ok := c.Location.InYard()
		if !ok {
			return apperr.ErrNotFound
		}
		if err := ledger.RemoveContainer(ctx, tx, yardStackID, containerID); err != nil {
			return err
		}

		truck, err := tx.GetTruckForUpdate(ctx, truckID)
		if err != nil {
			return err
		}
		if truck == nil {
			return apperr.ErrNotFound
		}
		if truck.Loaded() {
			return apperr.ErrAlreadyAssigned
		}
		if err := tx.AssignTruck(ctx, truckID, containerID); err != nil {
			return err
		}

		remaining, err := tx.ListContainersByShipment(ctx, c.ShipmentID)
		if err != nil {
			return err
		}
		for _, other := range remaining {
			if !other.Location.None() {
				return nil
			}
		}

		sh, err := tx.GetShipmentForUpdate(ctx, c.ShipmentID)
		if err != nil {
			return err
		}
		if sh == nil || sh.Status != domain.ShipmentCleared {
			// last container left before clearance; delivery waits for the gate
			return nil
		}
		if _, err := lifecycle.Fire(ctx, tx, c.ShipmentID, lifecycle.EventDeliver); err != nil {
			return err
		}
		delivered = true
		return nil
	})
	if err != nil {
		return err
	}

	s.handled()
	s.logger.Info("container picked up",
		logx.String("event", "container_picked_up"),
		logx.Int64("container_id", containerID),
		logx.Int64("truck_id", truckID),
		logx.Any("delivered", delivered),
	)
	return nil
}

func (s *Service) handled() {
	if s.eventsHandled != nil {
		s.eventsHandled.Inc()
	}
}
