package terminaltx

import (
	"context"
	"time"

	"port-terminal-core/internal/domain"
)

// Repository is the transaction-scoped storage surface the orchestration
// core runs on. ForUpdate reads lock the underlying row for the duration of
// the transaction; lookups return nil (not an error) when the entity is
// absent.
type Repository interface {
	// Berths and vessels
	GetBerthForUpdate(ctx context.Context, berthID int64) (*domain.Berth, error)
	FindBerthByVessel(ctx context.Context, vesselID int64) (*domain.Berth, error)
	UpdateBerth(ctx context.Context, b *domain.Berth) error
	GetVessel(ctx context.Context, vesselID int64) (*domain.Vessel, error)

	// Yard stacks
	GetYardStackForUpdate(ctx context.Context, yardStackID int64) (*domain.YardStack, error)
	UpdateYardStack(ctx context.Context, y *domain.YardStack) error

	// Containers
	GetContainerForUpdate(ctx context.Context, containerID int64) (*domain.Container, error)
	UpdateContainerLocation(ctx context.Context, containerID int64, loc domain.Location) error
	ListContainersByShipment(ctx context.Context, shipmentID int64) ([]domain.Container, error)
	ListShipmentsAboard(ctx context.Context, vesselID int64) ([]int64, error)

	// Shipments
	GetShipmentForUpdate(ctx context.Context, shipmentID int64) (*domain.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, shipmentID int64, status domain.ShipmentStatus) error
	ArchiveShipment(ctx context.Context, shipmentID int64, at time.Time) error
	ListDeliveredUnarchived(ctx context.Context, limit int) ([]int64, error)

	// Customs declarations
	GetDeclarationByShipment(ctx context.Context, shipmentID int64) (*domain.CustomsDeclaration, error)
	GetDeclarationForUpdate(ctx context.Context, declarationID int64) (*domain.CustomsDeclaration, error)
	InsertDeclaration(ctx context.Context, d *domain.CustomsDeclaration) error
	UpdateDeclarationStatus(ctx context.Context, declarationID int64, status domain.DeclarationStatus) error

	// Trucks
	GetTruckForUpdate(ctx context.Context, truckID int64) (*domain.Truck, error)
	AssignTruck(ctx context.Context, truckID, containerID int64) error
}

// Runner opens a transaction and executes fn within it; fn returning an
// error rolls the whole transaction back.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
