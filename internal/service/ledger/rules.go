package ledger

import (
	"context"
	"fmt"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/ports/terminaltx"
)

// The functions in this file are the ledger's occupancy rules. They run
// inside a caller-owned transaction so the allocation coordinator can compose
// them with lifecycle transitions atomically; any returned error must abort
// the whole transaction.

// ReserveBerth moors a vessel at an available berth. Fails with
// ErrResourceConflict if the berth is occupied or under maintenance and with
// ErrAlreadyAssigned if the vessel is already moored elsewhere.
func ReserveBerth(ctx context.Context, tx terminaltx.Repository, vesselID, berthID int64) error {
	b, err := tx.GetBerthForUpdate(ctx, berthID)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.ErrNotFound
	}

	v, err := tx.GetVessel(ctx, vesselID)
	if err != nil {
		return err
	}
	if v == nil {
		return apperr.ErrNotFound
	}

	current, err := tx.FindBerthByVessel(ctx, vesselID)
	if err != nil {
		return err
	}
	if current != nil {
		return apperr.ErrAlreadyAssigned
	}

	if b.Status != domain.BerthAvailable {
		return apperr.ErrResourceConflict
	}

	b.Status = domain.BerthOccupied
	b.VesselID = &vesselID
	return tx.UpdateBerth(ctx, b)
}

// ReleaseBerth frees a berth after the vessel casts off. Fails with
// ErrNotOccupied if the berth holds no vessel.
func ReleaseBerth(ctx context.Context, tx terminaltx.Repository, berthID int64) error {
	b, err := tx.GetBerthForUpdate(ctx, berthID)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.ErrNotFound
	}
	if !b.Occupied() {
		return apperr.ErrNotOccupied
	}

	b.Status = domain.BerthAvailable
	b.VesselID = nil
	return tx.UpdateBerth(ctx, b)
}

// PlaceContainer stores a container in a yard stack, clearing any prior
// vessel or yard association first. Fails with ErrCapacityExceeded when the
// stack is full; occupancy counters stay untouched on failure.
func PlaceContainer(ctx context.Context, tx terminaltx.Repository, yardStackID, containerID int64) error {
	y, err := tx.GetYardStackForUpdate(ctx, yardStackID)
	if err != nil {
		return err
	}
	if y == nil {
		return apperr.ErrNotFound
	}

	c, err := tx.GetContainerForUpdate(ctx, containerID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.ErrNotFound
	}

	if current, ok := c.Location.InYard(); ok && current == yardStackID {
		// already stored here, nothing to move
		return nil
	}

	if y.Full() {
		return apperr.ErrCapacityExceeded
	}

	if prevID, ok := c.Location.InYard(); ok {
		prev, err := tx.GetYardStackForUpdate(ctx, prevID)
		if err != nil {
			return err
		}
		if prev == nil || prev.Occupancy == 0 {
			return fmt.Errorf("yard stack %d does not account for container %d stored in it", prevID, containerID)
		}
		prev.Occupancy--
		if err := tx.UpdateYardStack(ctx, prev); err != nil {
			return err
		}
	}

	y.Occupancy++
	if err := tx.UpdateYardStack(ctx, y); err != nil {
		return err
	}
	return tx.UpdateContainerLocation(ctx, containerID, domain.InYardStack(yardStackID))
}

// RemoveContainer takes a container out of a yard stack. Fails with
// ErrNotFound if the container is not currently stored in that stack, and
// with a non-domain error when the occupancy counter contradicts the
// container's recorded location.
func RemoveContainer(ctx context.Context, tx terminaltx.Repository, yardStackID, containerID int64) error {
	y, err := tx.GetYardStackForUpdate(ctx, yardStackID)
	if err != nil {
		return err
	}
	if y == nil {
		return apperr.ErrNotFound
	}

	c, err := tx.GetContainerForUpdate(ctx, containerID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.ErrNotFound
	}

	current, ok := c.Location.InYard()
	if !ok || current != yardStackID {
		return apperr.ErrNotFound
	}

	if y.Occupancy == 0 {
		return fmt.Errorf("yard stack %d occupancy is zero while container %d is recorded in it", yardStackID, containerID)
	}
	y.Occupancy--
	if err := tx.UpdateYardStack(ctx, y); err != nil {
		return err
	}
	return tx.UpdateContainerLocation(ctx, containerID, domain.Unlocated())
}

// SetBerthMaintenance takes a vacant berth out of rotation. Fails with
// ErrResourceConflict while a vessel is moored.
func SetBerthMaintenance(ctx context.Context, tx terminaltx.Repository, berthID int64) error {
	b, err := tx.GetBerthForUpdate(ctx, berthID)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.ErrNotFound
	}
	if b.VesselID != nil {
		return apperr.ErrResourceConflict
	}

	b.Status = domain.BerthMaintenance
	b.VesselID = nil
	return tx.UpdateBerth(ctx, b)
}
