package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/ports/terminaltx"
)

// TerminalRepo is the pgx-backed terminal repository. All orchestration
// happens through WithTx; row locks taken by the ForUpdate reads provide the
// per-entity serialization the core relies on.
type TerminalRepo struct {
	db *pgxpool.Pool
}

// NewTerminalRepo creates a new TerminalRepo.
func NewTerminalRepo(db *pgxpool.Pool) *TerminalRepo {
	return &TerminalRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *TerminalRepo) WithTx(ctx context.Context, fn func(tx terminaltx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo implements the transaction-scoped storage surface.
type TxRepo struct {
	tx pgx.Tx
}

var _ terminaltx.Repository = (*TxRepo)(nil)

// GetBerthForUpdate - loads a berth and locks its row.
func (r *TxRepo) GetBerthForUpdate(ctx context.Context, berthID int64) (*domain.Berth, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT berth_id, berth_number, status, vessel_id
        FROM berth
        WHERE berth_id = $1
        FOR UPDATE
    `, berthID)

	var b domain.Berth
	if err := row.Scan(&b.ID, &b.Number, &b.Status, &b.VesselID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get berth %d: %w", berthID, err)
	}
	return &b, nil
}

// FindBerthByVessel - finds the berth currently holding the vessel, locking it.
func (r *TxRepo) FindBerthByVessel(ctx context.Context, vesselID int64) (*domain.Berth, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT berth_id, berth_number, status, vessel_id
        FROM berth
        WHERE vessel_id = $1
        FOR UPDATE
    `, vesselID)

	var b domain.Berth
	if err := row.Scan(&b.ID, &b.Number, &b.Status, &b.VesselID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find berth by vessel %d: %w", vesselID, err)
	}
	return &b, nil
}

// UpdateBerth - writes berth status and vessel link.
func (r *TxRepo) UpdateBerth(ctx context.Context, b *domain.Berth) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE berth
        SET status = $2, vessel_id = $3
        WHERE berth_id = $1
    `, b.ID, string(b.Status), b.VesselID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrAlreadyAssigned
		}
		return fmt.Errorf("update berth %d: %w", b.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("berth %d: %w", b.ID, apperr.ErrNotFound)
	}
	return nil
}

// GetVessel - returns a vessel by its ID.
func (r *TxRepo) GetVessel(ctx context.Context, vesselID int64) (*domain.Vessel, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT vessel_id, vessel_name, imo_number
        FROM vessel
        WHERE vessel_id = $1
    `, vesselID)

	var v domain.Vessel
	if err := row.Scan(&v.ID, &v.Name, &v.IMONumber); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vessel %d: %w", vesselID, err)
	}
	return &v, nil
}

// GetYardStackForUpdate - loads a yard stack and locks its row.
func (r *TxRepo) GetYardStackForUpdate(ctx context.Context, yardStackID int64) (*domain.YardStack, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT yard_stack_id, stack_code, capacity, occupancy
        FROM yard_stack
        WHERE yard_stack_id = $1
        FOR UPDATE
    `, yardStackID)

	var y domain.YardStack
	if err := row.Scan(&y.ID, &y.Code, &y.Capacity, &y.Occupancy); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get yard stack %d: %w", yardStackID, err)
	}
	return &y, nil
}

// UpdateYardStack - writes the occupancy counter.
func (r *TxRepo) UpdateYardStack(ctx context.Context, y *domain.YardStack) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE yard_stack
        SET occupancy = $2
        WHERE yard_stack_id = $1
    `, y.ID, y.Occupancy)
	if err != nil {
		if IsCheckViolation(err) {
			return apperr.ErrCapacityExceeded
		}
		return fmt.Errorf("update yard stack %d: %w", y.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("yard stack %d: %w", y.ID, apperr.ErrNotFound)
	}
	return nil
}

// GetContainerForUpdate - loads a container and locks its row.
func (r *TxRepo) GetContainerForUpdate(ctx context.Context, containerID int64) (*domain.Container, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT container_id, shipment_id, container_number, container_type, size, vessel_id, yard_stack_id
        FROM container
        WHERE container_id = $1
        FOR UPDATE
    `, containerID)

	c, err := scanContainer(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container %d: %w", containerID, err)
	}
	return c, nil
}

// UpdateContainerLocation - writes the location union to the paired nullable
// columns; exactly one of them ends up non-null, or both null when released.
func (r *TxRepo) UpdateContainerLocation(ctx context.Context, containerID int64, loc domain.Location) error {
	var vesselID, yardStackID *int64
	if id, ok := loc.Aboard(); ok {
		vesselID = &id
	}
	if id, ok := loc.InYard(); ok {
		yardStackID = &id
	}

	ct, err := r.tx.Exec(ctx, `
        UPDATE container
        SET vessel_id = $2, yard_stack_id = $3
        WHERE container_id = $1
    `, containerID, vesselID, yardStackID)
	if err != nil {
		return fmt.Errorf("update container %d location: %w", containerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("container %d: %w", containerID, apperr.ErrNotFound)
	}
	return nil
}

// ListContainersByShipment - returns all containers of a shipment.
func (r *TxRepo) ListContainersByShipment(ctx context.Context, shipmentID int64) ([]domain.Container, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT container_id, shipment_id, container_number, container_type, size, vessel_id, yard_stack_id
        FROM container
        WHERE shipment_id = $1
        ORDER BY container_id
    `, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list containers of shipment %d: %w", shipmentID, err)
	}
	defer rows.Close()

	var out []domain.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ListShipmentsAboard - returns IDs of shipments with at least one container
// on the given vessel.
func (r *TxRepo) ListShipmentsAboard(ctx context.Context, vesselID int64) ([]int64, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT DISTINCT shipment_id
        FROM container
        WHERE vessel_id = $1
        ORDER BY shipment_id
    `, vesselID)
	if err != nil {
		return nil, fmt.Errorf("list shipments aboard vessel %d: %w", vesselID, err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// GetShipmentForUpdate - loads a shipment and locks its row.
func (r *TxRepo) GetShipmentForUpdate(ctx context.Context, shipmentID int64) (*domain.Shipment, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT shipment_id, client_id, status, bill_of_lading_no, origin, destination, declared_value, archived_at
        FROM shipment
        WHERE shipment_id = $1
        FOR UPDATE
    `, shipmentID)

	var s domain.Shipment
	err := row.Scan(&s.ID, &s.ClientID, &s.Status, &s.BillOfLadingNo,
		&s.Origin, &s.Destination, &s.DeclaredValue, &s.ArchivedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment %d: %w", shipmentID, err)
	}
	return &s, nil
}

// UpdateShipmentStatus - writes the shipment status.
func (r *TxRepo) UpdateShipmentStatus(ctx context.Context, shipmentID int64, status domain.ShipmentStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE shipment
        SET status = $2
        WHERE shipment_id = $1
    `, shipmentID, string(status))
	if err != nil {
		return fmt.Errorf("update shipment %d status: %w", shipmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("shipment %d: %w", shipmentID, apperr.ErrNotFound)
	}
	return nil
}

// ArchiveShipment - stamps the logical close-out time.
func (r *TxRepo) ArchiveShipment(ctx context.Context, shipmentID int64, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE shipment
        SET archived_at = $2
        WHERE shipment_id = $1 AND archived_at IS NULL
    `, shipmentID, at)
	if err != nil {
		return fmt.Errorf("archive shipment %d: %w", shipmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("shipment %d: %w", shipmentID, apperr.ErrNotFound)
	}
	return nil
}

// ListDeliveredUnarchived - returns delivered shipments not yet closed out.
func (r *TxRepo) ListDeliveredUnarchived(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT shipment_id
        FROM shipment
        WHERE status = $1 AND archived_at IS NULL
        ORDER BY shipment_id
        LIMIT $2
        FOR UPDATE
    `, string(domain.ShipmentDelivered), limit)
	if err != nil {
		return nil, fmt.Errorf("list delivered shipments: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// GetDeclarationByShipment - returns the shipment's declaration, if any.
func (r *TxRepo) GetDeclarationByShipment(ctx context.Context, shipmentID int64) (*domain.CustomsDeclaration, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT declaration_id, shipment_id, declaration_date, status
        FROM customs_declaration
        WHERE shipment_id = $1
    `, shipmentID)

	var d domain.CustomsDeclaration
	if err := row.Scan(&d.ID, &d.ShipmentID, &d.DeclaredAt, &d.Status); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get declaration of shipment %d: %w", shipmentID, err)
	}
	return &d, nil
}

// GetDeclarationForUpdate - loads a declaration and locks its row.
func (r *TxRepo) GetDeclarationForUpdate(ctx context.Context, declarationID int64) (*domain.CustomsDeclaration, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT declaration_id, shipment_id, declaration_date, status
        FROM customs_declaration
        WHERE declaration_id = $1
        FOR UPDATE
    `, declarationID)

	var d domain.CustomsDeclaration
	if err := row.Scan(&d.ID, &d.ShipmentID, &d.DeclaredAt, &d.Status); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get declaration %d: %w", declarationID, err)
	}
	return &d, nil
}

// InsertDeclaration - files the 1:1 declaration for a shipment.
func (r *TxRepo) InsertDeclaration(ctx context.Context, d *domain.CustomsDeclaration) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO customs_declaration (shipment_id, declaration_date, status)
        VALUES ($1, $2, $3)
        RETURNING declaration_id
    `, d.ShipmentID, d.DeclaredAt, string(d.Status)).Scan(&d.ID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrDuplicateDeclaration
		}
		return fmt.Errorf("insert declaration for shipment %d: %w", d.ShipmentID, err)
	}
	return nil
}

// UpdateDeclarationStatus - writes the decision.
func (r *TxRepo) UpdateDeclarationStatus(ctx context.Context, declarationID int64, status domain.DeclarationStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE customs_declaration
        SET status = $2
        WHERE declaration_id = $1
    `, declarationID, string(status))
	if err != nil {
		return fmt.Errorf("update declaration %d: %w", declarationID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("declaration %d: %w", declarationID, apperr.ErrNotFound)
	}
	return nil
}

// GetTruckForUpdate - loads a truck and locks its row.
func (r *TxRepo) GetTruckForUpdate(ctx context.Context, truckID int64) (*domain.Truck, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT truck_id, plate_no, container_id
        FROM truck
        WHERE truck_id = $1
        FOR UPDATE
    `, truckID)

	var t domain.Truck
	if err := row.Scan(&t.ID, &t.PlateNo, &t.ContainerID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get truck %d: %w", truckID, err)
	}
	return &t, nil
}

// AssignTruck - records the truck↔container pickup link.
func (r *TxRepo) AssignTruck(ctx context.Context, truckID, containerID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE truck
        SET container_id = $2
        WHERE truck_id = $1
    `, truckID, containerID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrAlreadyAssigned
		}
		return fmt.Errorf("assign truck %d: %w", truckID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("truck %d: %w", truckID, apperr.ErrNotFound)
	}
	return nil
}

func scanContainer(row pgx.Row) (*domain.Container, error) {
	var (
		c           domain.Container
		vesselID    *int64
		yardStackID *int64
	)
	err := row.Scan(&c.ID, &c.ShipmentID, &c.Number, &c.Type, &c.Size, &vesselID, &yardStackID)
	if err != nil {
		return nil, err
	}
	switch {
	case vesselID != nil:
		c.Location = domain.AboardVessel(*vesselID)
	case yardStackID != nil:
		c.Location = domain.InYardStack(*yardStackID)
	default:
		c.Location = domain.Unlocated()
	}
	return &c, nil
}
