package customs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"port-terminal-core/internal/apperr"
	"port-terminal-core/internal/domain"
	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/service/customs"
	"port-terminal-core/internal/testutil"
)

func newRepo() *testutil.MemRepo {
	repo := testutil.NewMemRepo()
	repo.AddShipment(domain.Shipment{
		ID:             1,
		ClientID:       1,
		Status:         domain.ShipmentAwaitingCustoms,
		BillOfLadingNo: "BLD000000001",
		DeclaredValue:  25000,
	})
	return repo
}

func TestService_RecordDeclaration(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	declared := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	d, err := s.RecordDeclaration(context.Background(), 1, declared)
	require.NoError(t, err)
	require.Equal(t, int64(1), d.ShipmentID)
	require.Equal(t, domain.DeclarationPending, d.Status)
	require.True(t, d.DeclaredAt.Equal(declared))

	stored, ok := repo.DeclarationByShipment(1)
	require.True(t, ok)
	require.Equal(t, d.ID, stored.ID)
}

func TestService_RecordDeclaration_Duplicate(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	ctx := context.Background()

	_, err := s.RecordDeclaration(ctx, 1, time.Time{})
	require.NoError(t, err)

	_, err = s.RecordDeclaration(ctx, 1, time.Time{})
	require.ErrorIs(t, err, apperr.ErrDuplicateDeclaration)
}

func TestService_RecordDeclaration_UnknownShipment(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())

	_, err := s.RecordDeclaration(context.Background(), 99, time.Time{})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_CanClear(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	ctx := context.Background()

	// no declaration: false, not an error
	ok, err := s.CanClear(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	d, err := s.RecordDeclaration(ctx, 1, time.Time{})
	require.NoError(t, err)

	// pending declaration: still false
	ok, err = s.CanClear(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Approve(ctx, d.ID))

	ok, err = s.CanClear(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestService_CanClear_RejectedStaysFalse(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	ctx := context.Background()

	d, err := s.RecordDeclaration(ctx, 1, time.Time{})
	require.NoError(t, err)
	require.NoError(t, s.Reject(ctx, d.ID))

	ok, err := s.CanClear(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestService_Approve_OneShot(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	ctx := context.Background()

	d, err := s.RecordDeclaration(ctx, 1, time.Time{})
	require.NoError(t, err)

	require.NoError(t, s.Approve(ctx, d.ID))
	require.ErrorIs(t, s.Approve(ctx, d.ID), apperr.ErrAlreadyDecided)
	require.ErrorIs(t, s.Reject(ctx, d.ID), apperr.ErrAlreadyDecided)
	require.Equal(t, domain.DeclarationApproved, repo.Declaration(d.ID).Status)
}

func TestService_Reject_OneShot(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())
	ctx := context.Background()

	d, err := s.RecordDeclaration(ctx, 1, time.Time{})
	require.NoError(t, err)

	require.NoError(t, s.Reject(ctx, d.ID))
	require.ErrorIs(t, s.Reject(ctx, d.ID), apperr.ErrAlreadyDecided)
	require.ErrorIs(t, s.Approve(ctx, d.ID), apperr.ErrAlreadyDecided)
}

func TestService_Decide_UnknownDeclaration(t *testing.T) {
	t.Parallel()

	repo := newRepo()
	s := customs.NewService(repo, logx.Nop())

	require.ErrorIs(t, s.Approve(context.Background(), 42), apperr.ErrNotFound)
	require.ErrorIs(t, s.Reject(context.Background(), 42), apperr.ErrNotFound)
}
