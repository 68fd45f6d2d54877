package archiver_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/service/archiver"
	"port-terminal-core/internal/testutil"
)

func TestService_Sweep(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: domain.ShipmentDelivered, BillOfLadingNo: "BLD000000001"})
	repo.AddShipment(domain.Shipment{ID: 2, ClientID: 1, Status: domain.ShipmentDelivered, BillOfLadingNo: "BLD000000002"})
	repo.AddShipment(domain.Shipment{ID: 3, ClientID: 1, Status: domain.ShipmentCleared, BillOfLadingNo: "BLD000000003"})

	s := archiver.NewService(repo, logx.Nop(), time.Minute, nil)

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	sh1, sh2, sh3 := repo.Shipment(1), repo.Shipment(2), repo.Shipment(3)
	require.True(t, sh1.Archived())
	require.True(t, sh2.Archived())
	require.False(t, sh3.Archived())

	// second sweep finds nothing left
	n, err = s.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestService_Sweep_StorageFailure(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	repo.AddShipment(domain.Shipment{ID: 1, ClientID: 1, Status: domain.ShipmentDelivered, BillOfLadingNo: "BLD000000001"})
	repo.FailOn["ArchiveShipment"] = errors.New("connection reset")

	s := archiver.NewService(repo, logx.Nop(), time.Minute, nil)

	_, err := s.Sweep(context.Background())
	require.Error(t, err)
	sh := repo.Shipment(1)
	require.False(t, sh.Archived())
}

func TestService_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	repo := testutil.NewMemRepo()
	s := archiver.NewService(repo, logx.Nop(), 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("archiver did not stop on cancel")
	}
}
