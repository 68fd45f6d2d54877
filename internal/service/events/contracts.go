//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

package events

import (
	"context"
)

// CoordinatorPort abstracts the subset of allocation coordinator operations
// needed by the Processor when handling terminal events
type CoordinatorPort interface {
	VesselArrives(ctx context.Context, vesselID, berthID int64) error
	VesselDeparts(ctx context.Context, vesselID int64) error
	ContainerDischarged(ctx context.Context, containerID, yardStackID int64) error
	CustomsApproved(ctx context.Context, declarationID int64) error
	CustomsRejected(ctx context.Context, declarationID int64) error
	ContainerPickedUp(ctx context.Context, containerID, truckID int64) error
}
