package testutil

import (
	"context"
	"sync"
	"time"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/ports/terminaltx"
)

// MemRepo is an in-memory terminal store for service tests. WithTx snapshots
// the state up front and restores it when fn fails, giving tests the same
// no-partial-effect behavior the pgx runner provides via rollback.
type MemRepo struct {
	mu sync.Mutex

	berths       map[int64]*domain.Berth
	vessels      map[int64]*domain.Vessel
	stacks       map[int64]*domain.YardStack
	containers   map[int64]*domain.Container
	shipments    map[int64]*domain.Shipment
	declarations map[int64]*domain.CustomsDeclaration
	trucks       map[int64]*domain.Truck

	nextDeclarationID int64

	// FailOn, when set, makes the named tx operation return the given error.
	FailOn map[string]error
}

// NewMemRepo returns an empty in-memory store.
func NewMemRepo() *MemRepo {
	return &MemRepo{
		berths:            map[int64]*domain.Berth{},
		vessels:           map[int64]*domain.Vessel{},
		stacks:            map[int64]*domain.YardStack{},
		containers:        map[int64]*domain.Container{},
		shipments:         map[int64]*domain.Shipment{},
		declarations:      map[int64]*domain.CustomsDeclaration{},
		trucks:            map[int64]*domain.Truck{},
		nextDeclarationID: 1,
		FailOn:            map[string]error{},
	}
}

// WithTx executes fn against the store, restoring the pre-call state when fn
// returns an error. The store mutex also serializes transactions, which is a
// legal (if coarse) implementation of per-entity serialization.
func (m *MemRepo) WithTx(_ context.Context, fn func(tx terminaltx.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

var _ terminaltx.Runner = (*MemRepo)(nil)

// Seed helpers. Each stores a copy.

func (m *MemRepo) AddBerth(b domain.Berth) *MemRepo {
	if b.VesselID != nil {
		v := *b.VesselID
		b.VesselID = &v
	}
	m.berths[b.ID] = &b
	return m
}

func (m *MemRepo) AddVessel(v domain.Vessel) *MemRepo {
	m.vessels[v.ID] = &v
	return m
}

func (m *MemRepo) AddYardStack(y domain.YardStack) *MemRepo {
	m.stacks[y.ID] = &y
	return m
}

func (m *MemRepo) AddContainer(c domain.Container) *MemRepo {
	m.containers[c.ID] = &c
	return m
}

func (m *MemRepo) AddShipment(s domain.Shipment) *MemRepo {
	m.shipments[s.ID] = &s
	return m
}

func (m *MemRepo) AddDeclaration(d domain.CustomsDeclaration) *MemRepo {
	m.declarations[d.ID] = &d
	if d.ID >= m.nextDeclarationID {
		m.nextDeclarationID = d.ID + 1
	}
	return m
}

func (m *MemRepo) AddTruck(t domain.Truck) *MemRepo {
	if t.ContainerID != nil {
		c := *t.ContainerID
		t.ContainerID = &c
	}
	m.trucks[t.ID] = &t
	return m
}

// State accessors for assertions. Each returns a copy.

func (m *MemRepo) Berth(id int64) domain.Berth {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := *m.berths[id]
	if b.VesselID != nil {
		v := *b.VesselID
		b.VesselID = &v
	}
	return b
}

func (m *MemRepo) YardStack(id int64) domain.YardStack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.stacks[id]
}

func (m *MemRepo) Container(id int64) domain.Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.containers[id]
}

func (m *MemRepo) Shipment(id int64) domain.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *m.shipments[id]
	if s.ArchivedAt != nil {
		at := *s.ArchivedAt
		s.ArchivedAt = &at
	}
	return s
}

func (m *MemRepo) Declaration(id int64) domain.CustomsDeclaration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.declarations[id]
}

func (m *MemRepo) DeclarationByShipment(shipmentID int64) (domain.CustomsDeclaration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.declarations {
		if d.ShipmentID == shipmentID {
			return *d, true
		}
	}
	return domain.CustomsDeclaration{}, false
}

func (m *MemRepo) Truck(id int64) domain.Truck {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *m.trucks[id]
	if t.ContainerID != nil {
		c := *t.ContainerID
		t.ContainerID = &c
	}
	return t
}

type memState struct {
	berths       map[int64]*domain.Berth
	vessels      map[int64]*domain.Vessel
	stacks       map[int64]*domain.YardStack
	containers   map[int64]*domain.Container
	shipments    map[int64]*domain.Shipment
	declarations map[int64]*domain.CustomsDeclaration
	trucks       map[int64]*domain.Truck
	nextDeclID   int64
}

func (m *MemRepo) snapshot() memState {
	s := memState{
		berths:       make(map[int64]*domain.Berth, len(m.berths)),
		vessels:      make(map[int64]*domain.Vessel, len(m.vessels)),
		stacks:       make(map[int64]*domain.YardStack, len(m.stacks)),
		containers:   make(map[int64]*domain.Container, len(m.containers)),
		shipments:    make(map[int64]*domain.Shipment, len(m.shipments)),
		declarations: make(map[int64]*domain.CustomsDeclaration, len(m.declarations)),
		trucks:       make(map[int64]*domain.Truck, len(m.trucks)),
		nextDeclID:   m.nextDeclarationID,
	}
	for id, b := range m.berths {
		cp := *b
		if b.VesselID != nil {
			v := *b.VesselID
			cp.VesselID = &v
		}
		s.berths[id] = &cp
	}
	for id, v := range m.vessels {
		cp := *v
		s.vessels[id] = &cp
	}
	for id, y := range m.stacks {
		cp := *y
		s.stacks[id] = &cp
	}
	for id, c := range m.containers {
		cp := *c
		s.containers[id] = &cp
	}
	for id, sh := range m.shipments {
		cp := *sh
		if sh.ArchivedAt != nil {
			at := *sh.ArchivedAt
			cp.ArchivedAt = &at
		}
		s.shipments[id] = &cp
	}
	for id, d := range m.declarations {
		cp := *d
		s.declarations[id] = &cp
	}
	for id, t := range m.trucks {
		cp := *t
		if t.ContainerID != nil {
			c := *t.ContainerID
			cp.ContainerID = &c
		}
		s.trucks[id] = &cp
	}
	return s
}

func (m *MemRepo) restore(s memState) {
	m.berths = s.berths
	m.vessels = s.vessels
	m.stacks = s.stacks
	m.containers = s.containers
	m.shipments = s.shipments
	m.declarations = s.declarations
	m.trucks = s.trucks
	m.nextDeclarationID = s.nextDeclID
}

type memTx struct {
	m *MemRepo
}

var _ terminaltx.Repository = (*memTx)(nil)

func (t *memTx) fail(op string) error {
	if err, ok := t.m.FailOn[op]; ok {
		return err
	}
	return nil
}

func (t *memTx) GetBerthForUpdate(_ context.Context, berthID int64) (*domain.Berth, error) {
	if err := t.fail("GetBerthForUpdate"); err != nil {
		return nil, err
	}
	b, ok := t.m.berths[berthID]
	if !ok {
		return nil, nil
	}
	cp := *b
	if b.VesselID != nil {
		v := *b.VesselID
		cp.VesselID = &v
	}
	return &cp, nil
}

func (t *memTx) FindBerthByVessel(_ context.Context, vesselID int64) (*domain.Berth, error) {
	if err := t.fail("FindBerthByVessel"); err != nil {
		return nil, err
	}
	for _, b := range t.m.berths {
		if b.VesselID != nil && *b.VesselID == vesselID {
			cp := *b
			v := *b.VesselID
			cp.VesselID = &v
			return &cp, nil
		}
	}
	return nil, nil
}

func (t *memTx) UpdateBerth(_ context.Context, b *domain.Berth) error {
	if err := t.fail("UpdateBerth"); err != nil {
		return err
	}
	if _, ok := t.m.berths[b.ID]; !ok {
		return apperr.ErrNotFound
	}
	if b.VesselID != nil {
		for id, other := range t.m.berths {
			if id != b.ID && other.VesselID != nil && *other.VesselID == *b.VesselID {
				return apperr.ErrAlreadyAssigned
			}
		}
	}
	cp := *b
	if b.VesselID != nil {
		v := *b.VesselID
		cp.VesselID = &v
	}
	t.m.berths[b.ID] = &cp
	return nil
}

func (t *memTx) GetVessel(_ context.Context, vesselID int64) (*domain.Vessel, error) {
	if err := t.fail("GetVessel"); err != nil {
		return nil, err
	}
	v, ok := t.m.vessels[vesselID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (t *memTx) GetYardStackForUpdate(_ context.Context, yardStackID int64) (*domain.YardStack, error) {
	if err := t.fail("GetYardStackForUpdate"); err != nil {
		return nil, err
	}
	y, ok := t.m.stacks[yardStackID]
	if !ok {
		return nil, nil
	}
	cp := *y
	return &cp, nil
}

func (t *memTx) UpdateYardStack(_ context.Context, y *domain.YardStack) error {
	if err := t.fail("UpdateYardStack"); err != nil {
		return err
	}
	if _, ok := t.m.stacks[y.ID]; !ok {
		return apperr.ErrNotFound
	}
	if y.Occupancy < 0 || y.Occupancy > y.Capacity {
		return apperr.ErrCapacityExceeded
	}
	cp := *y
	t.m.stacks[y.ID] = &cp
	return nil
}

func (t *memTx) GetContainerForUpdate(_ context.Context, containerID int64) (*domain.Container, error) {
	if err := t.fail("GetContainerForUpdate"); err != nil {
		return nil, err
	}
	c, ok := t.m.containers[containerID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (t *memTx) UpdateContainerLocation(_ context.Context, containerID int64, loc domain.Location) error {
	if err := t.fail("UpdateContainerLocation"); err != nil {
		return err
	}
	c, ok := t.m.containers[containerID]
	if !ok {
		return apperr.ErrNotFound
	}
	c.Location = loc
	return nil
}

func (t *memTx) ListContainersByShipment(_ context.Context, shipmentID int64) ([]domain.Container, error) {
	if err := t.fail("ListContainersByShipment"); err != nil {
		return nil, err
	}
	var out []domain.Container
	for _, c := range t.m.containers {
		if c.ShipmentID == shipmentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (t *memTx) ListShipmentsAboard(_ context.Context, vesselID int64) ([]int64, error) {
	if err := t.fail("ListShipmentsAboard"); err != nil {
		return nil, err
	}
	seen := map[int64]bool{}
	var out []int64
	for _, c := range t.m.containers {
		if id, ok := c.Location.Aboard(); ok && id == vesselID && !seen[c.ShipmentID] {
			seen[c.ShipmentID] = true
			out = append(out, c.ShipmentID)
		}
	}
	return out, nil
}

func (t *memTx) GetShipmentForUpdate(_ context.Context, shipmentID int64) (*domain.Shipment, error) {
	if err := t.fail("GetShipmentForUpdate"); err != nil {
		return nil, err
	}
	s, ok := t.m.shipments[shipmentID]
	if !ok {
		return nil, nil
	}
	cp := *s
	if s.ArchivedAt != nil {
		at := *s.ArchivedAt
		cp.ArchivedAt = &at
	}
	return &cp, nil
}

func (t *memTx) UpdateShipmentStatus(_ context.Context, shipmentID int64, status domain.ShipmentStatus) error {
	if err := t.fail("UpdateShipmentStatus"); err != nil {
		return err
	}
	s, ok := t.m.shipments[shipmentID]
	if !ok {
		return apperr.ErrNotFound
	}
	s.Status = status
	return nil
}

func (t *memTx) ArchiveShipment(_ context.Context, shipmentID int64, at time.Time) error {
	if err := t.fail("ArchiveShipment"); err != nil {
		return err
	}
	s, ok := t.m.shipments[shipmentID]
	if !ok {
		return apperr.ErrNotFound
	}
	s.ArchivedAt = &at
	return nil
}

func (t *memTx) ListDeliveredUnarchived(_ context.Context, limit int) ([]int64, error) {
	if err := t.fail("ListDeliveredUnarchived"); err != nil {
		return nil, err
	}
	var out []int64
	for id, s := range t.m.shipments {
		if s.Status == domain.ShipmentDelivered && s.ArchivedAt == nil {
			out = append(out, id)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (t *memTx) GetDeclarationByShipment(_ context.Context, shipmentID int64) (*domain.CustomsDeclaration, error) {
	if err := t.fail("GetDeclarationByShipment"); err != nil {
		return nil, err
	}
	for _, d := range t.m.declarations {
		if d.ShipmentID == shipmentID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (t *memTx) GetDeclarationForUpdate(_ context.Context, declarationID int64) (*domain.CustomsDeclaration, error) {
	if err := t.fail("GetDeclarationForUpdate"); err != nil {
		return nil, err
	}
	d, ok := t.m.declarations[declarationID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (t *memTx) InsertDeclaration(_ context.Context, d *domain.CustomsDeclaration) error {
	if err := t.fail("InsertDeclaration"); err != nil {
		return err
	}
	for _, existing := range t.m.declarations {
		if existing.ShipmentID == d.ShipmentID {
			return apperr.ErrDuplicateDeclaration
		}
	}
	d.ID = t.m.nextDeclarationID
	t.m.nextDeclarationID++
	cp := *d
	t.m.declarations[d.ID] = &cp
	return nil
}

func (t *memTx) UpdateDeclarationStatus(_ context.Context, declarationID int64, status domain.DeclarationStatus) error {
	if err := t.fail("UpdateDeclarationStatus"); err != nil {
		return err
	}
	d, ok := t.m.declarations[declarationID]
	if !ok {
		return apperr.ErrNotFound
	}
	d.Status = status
	return nil
}

func (t *memTx) GetTruckForUpdate(_ context.Context, truckID int64) (*domain.Truck, error) {
	if err := t.fail("GetTruckForUpdate"); err != nil {
		return nil, err
	}
	tr, ok := t.m.trucks[truckID]
	if !ok {
		return nil, nil
	}
	cp := *tr
	if tr.ContainerID != nil {
		c := *tr.ContainerID
		cp.ContainerID = &c
	}
	return &cp, nil
}

func (t *memTx) AssignTruck(_ context.Context, truckID, containerID int64) error {
	if err := t.fail("AssignTruck"); err != nil {
		return err
	}
	tr, ok := t.m.trucks[truckID]
	if !ok {
		return apperr.ErrNotFound
	}
	for id, other := range t.m.trucks {
		if id != truckID && other.ContainerID != nil && *other.ContainerID == containerID {
			return apperr.ErrAlreadyAssigned
		}
	}
	tr.ContainerID = &containerID
	return nil
}
