package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/service/lifecycle"
	"port-terminal-core/internal/testutil"
)

func int64p(v int64) *int64 { return &v }

// newRepo seeds one shipment with two containers aboard a berthed vessel.
func newRepo(status domain.ShipmentStatus) *testutil.MemRepo {
	repo := testutil.NewMemRepo()
	repo.AddVessel(domain.Vessel{ID: 1, Name: "Global Voyager 330", IMONumber: "9811111"})
	repo.AddBerth(domain.Berth{ID: 1, Number: "B001", Status: domain.BerthOccupied, VesselID: int64p(1)})
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: status, BillOfLadingNo: "BLD000000001"})
	repo.AddContainer(domain.Container{ID: 1, ShipmentID: 1, Number: "ABCU1234560", Type: domain.ContainerDry, Size: 20, Location: domain.AboardVessel(1)})
	repo.AddContainer(domain.Container{ID: 2, ShipmentID: 1, Number: "MSKU0000002", Type: domain.ContainerReefer, Size: 40, Location: domain.AboardVessel(1)})
	return repo
}

func TestService_Fire_Depart(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentPending)
	s := lifecycle.NewService(repo, logx.Nop())

	next, err := s.Fire(context.Background(), 1, lifecycle.EventDepart)
	require.NoError(t, err)
	require.Equal(t, domain.ShipmentInTransit, next)
	require.Equal(t, domain.ShipmentInTransit, repo.Shipment(1).Status)
}

func TestService_Fire_Depart_ContainerAshoreBlocks(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentPending)
	repo.AddContainer(domain.Container{ID: 3, ShipmentID: 1, Type: domain.ContainerDry, Size: 20, Location: domain.Unlocated()})
	s := lifecycle.NewService(repo, logx.Nop())

	_, err := s.Fire(context.Background(), 1, lifecycle.EventDepart)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.ShipmentPending, repo.Shipment(1).Status)
}

func TestService_Fire_Arrive(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentInTransit)
	s := lifecycle.NewService(repo, logx.Nop())

	next, err := s.Fire(context.Background(), 1, lifecycle.EventArrive)
	require.NoError(t, err)
	require.Equal(t, domain.ShipmentAwaitingCustoms, next)
}

func TestService_Fire_Arrive_UnberthedVesselBlocks(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	repo.AddVessel(domain.Vessel{ID: 1, Name: "Marine Horizon 118", IMONumber: "9822222"})
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: domain.ShipmentInTransit, BillOfLadingNo: "BLD000000001"})
	repo.AddContainer(domain.Container{ID: 1, ShipmentID: 1, Type: domain.ContainerDry, Size: 20, Location: domain.AboardVessel(1)})
	s := lifecycle.NewService(repo, logx.Nop())

	_, err := s.Fire(context.Background(), 1, lifecycle.EventArrive)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.ShipmentInTransit, repo.Shipment(1).Status)
}

func TestService_Fire_Clear_GateGoverns(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentAwaitingCustoms)
	s := lifecycle.NewService(repo, logx.Nop())
	ctx := context.Background()

	// no declaration on file: gate is false, status unchanged
	_, err := s.Fire(ctx, 1, lifecycle.EventClear)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.ShipmentAwaitingCustoms, repo.Shipment(1).Status)

	repo.AddDeclaration(domain.CustomsDeclaration{ID: 1, ShipmentID: 1, DeclaredAt: time.Now().UTC(), Status: domain.DeclarationPending})
	_, err = s.Fire(ctx, 1, lifecycle.EventClear)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)

	repo.AddDeclaration(domain.CustomsDeclaration{ID: 1, ShipmentID: 1, DeclaredAt: time.Now().UTC(), Status: domain.DeclarationApproved})
	next, err := s.Fire(ctx, 1, lifecycle.EventClear)
	require.NoError(t, err)
	require.Equal(t, domain.ShipmentCleared, next)
}

func TestService_Fire_Clear_RejectedDeclarationNeverClears(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentAwaitingCustoms)
	repo.AddDeclaration(domain.CustomsDeclaration{ID: 1, ShipmentID: 1, DeclaredAt: time.Now().UTC(), Status: domain.DeclarationRejected})
	s := lifecycle.NewService(repo, logx.Nop())

	_, err := s.Fire(context.Background(), 1, lifecycle.EventClear)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.ShipmentAwaitingCustoms, repo.Shipment(1).Status)
}

func TestService_Fire_Deliver(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: domain.ShipmentCleared, BillOfLadingNo: "BLD000000001"})
	repo.AddContainer(domain.Container{ID: 1, ShipmentID: 1, Type: domain.ContainerDry, Size: 20, Location: domain.Unlocated()})
	s := lifecycle.NewService(repo, logx.Nop())

	next, err := s.Fire(context.Background(), 1, lifecycle.EventDeliver)
	require.NoError(t, err)
	require.Equal(t, domain.ShipmentDelivered, next)
}

func TestService_Fire_Deliver_StoredContainerBlocks(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: domain.ShipmentCleared, BillOfLadingNo: "BLD000000001"})
	repo.AddContainer(domain.Container{ID: 1, ShipmentID: 1, Type: domain.ContainerDry, Size: 20, Location: domain.InYardStack(3)})
	s := lifecycle.NewService(repo, logx.Nop())

	_, err := s.Fire(context.Background(), 1, lifecycle.EventDeliver)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.ShipmentCleared, repo.Shipment(1).Status)
}

func TestService_Fire_NoSkipsNoReversals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status domain.ShipmentStatus
		event  lifecycle.Event
	}{
		{"skip to clear from pending", domain.ShipmentPending, lifecycle.EventClear},
		{"skip to deliver from transit", domain.ShipmentInTransit, lifecycle.EventDeliver},
		{"reverse depart from customs", domain.ShipmentAwaitingCustoms, lifecycle.EventDepart},
		{"reverse arrive from cleared", domain.ShipmentCleared, lifecycle.EventArrive},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(tc.status)
			s := lifecycle.NewService(repo, logx.Nop())

			_, err := s.Fire(context.Background(), 1, tc.event)
			require.ErrorIs(t, err, apperr.ErrInvalidTransition)
			require.Equal(t, tc.status, repo.Shipment(1).Status)
		})
	}
}

func TestService_Fire_TerminalState(t *testing.T) {
	t.Parallel()

	repo := newRepo(domain.ShipmentDelivered)
	s := lifecycle.NewService(repo, logx.Nop())
	ctx := context.Background()

	for _, ev := range []lifecycle.Event{lifecycle.EventDepart, lifecycle.EventArrive, lifecycle.EventClear, lifecycle.EventDeliver} {
		_, err := s.Fire(ctx, 1, ev)
		require.ErrorIs(t, err, apperr.ErrTerminalState)
	}
	require.Equal(t, domain.ShipmentDelivered, repo.Shipment(1).Status)
}

func TestService_Fire_UnknownShipment(t *testing.T) {
	t.Parallel()

	s := lifecycle.NewService(testutil.NewMemRepo(), logx.Nop())
	_, err := s.Fire(context.Background(), 7, lifecycle.EventDepart)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEvent_Valid(t *testing.T) {
	t.Parallel()

	for _, ev := range []lifecycle.Event{lifecycle.EventDepart, lifecycle.EventArrive, lifecycle.EventClear, lifecycle.EventDeliver} {
		require.True(t, ev.Valid())
	}
	require.False(t, lifecycle.Event("teleport").Valid())
}
