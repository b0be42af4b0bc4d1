package table

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/kitchenpos/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTable(t *testing.T, guests int, empty bool) *table.OrderTable {
	t.Helper()
	tbl, err := table.NewOrderTable(guests, empty)
	require.NoError(t, err)
	return tbl
}

func groupedTable(t *testing.T) *table.OrderTable {
	t.Helper()
	tbl := newTable(t, 0, false)
	gid := uuid.New()
	tbl.TableGroupID = &gid
	return tbl
}

func setupTableService() (*TableService, *testutil.Repos, *testutil.RecordingPublisher) {
	repos := testutil.NewRepos()
	pub := &testutil.RecordingPublisher{}
	return NewTableService(repos.Tables, repos.Scope(), pub, zap.NewNop()), repos, pub
}

func TestTableService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		repos.Tables.On("Save", ctx, mock.AnythingOfType("*table.OrderTable")).Return(nil)

		resp, err := svc.Create(ctx, CreateTableRequest{NumberOfGuests: 0, Empty: true})
		require.NoError(t, err)
		assert.True(t, resp.Empty)
		assert.Nil(t, resp.TableGroupID)
	})

	t.Run("negative guests", func(t *testing.T) {
		svc, _, _ := setupTableService()
		_, err := svc.Create(ctx, CreateTableRequest{NumberOfGuests: -1})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestTableService_ChangeEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("occupies an empty table", func(t *testing.T) {
		svc, repos, pub := setupTableService()
		tbl := newTable(t, 0, true)
		repos.Tables.On("FindByIDForUpdate", ctx, tbl.ID).Return(tbl, nil)
		repos.Orders.On("FindActiveTableIDs", ctx, []uuid.UUID{tbl.ID}).Return([]uuid.UUID{}, nil)
		repos.Tables.On("Save", ctx, tbl).Return(nil)

		resp, err := svc.ChangeEmpty(ctx, tbl.ID, false)
		require.NoError(t, err)
		assert.False(t, resp.Empty)
		assert.Equal(t, []string{table.EventTypeTableOccupancyChanged}, pub.EventTypes())
		repos.AssertExpectations(t)
	})

	t.Run("unknown table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		id := uuid.New()
		repos.Tables.On("FindByIDForUpdate", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.ChangeEmpty(ctx, id, true)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("grouped table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		tbl := groupedTable(t)
		repos.Tables.On("FindByIDForUpdate", ctx, tbl.ID).Return(tbl, nil)

		_, err := svc.ChangeEmpty(ctx, tbl.ID, true)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		repos.Orders.AssertNotCalled(t, "FindActiveTableIDs", mock.Anything, mock.Anything)
		repos.Tables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("table with an order in progress", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		tbl := newTable(t, 2, false)
		repos.Tables.On("FindByIDForUpdate", ctx, tbl.ID).Return(tbl, nil)
		repos.Orders.On("FindActiveTableIDs", ctx, []uuid.UUID{tbl.ID}).Return([]uuid.UUID{tbl.ID}, nil)

		_, err := svc.ChangeEmpty(ctx, tbl.ID, true)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		repos.Tables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTableService_ChangeNumberOfGuests(t *testing.T) {
	ctx := context.Background()

	t.Run("updates occupied table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		tbl := newTable(t, 0, false)
		repos.Tables.On("FindByIDForUpdate", ctx, tbl.ID).Return(tbl, nil)
		repos.Tables.On("Save", ctx, tbl).Return(nil)

		resp, err := svc.ChangeNumberOfGuests(ctx, tbl.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.NumberOfGuests)
	})

	t.Run("negative count is checked before lookup", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		_, err := svc.ChangeNumberOfGuests(ctx, uuid.New(), -1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		repos.AssertExpectations(t)
	})

	t.Run("unknown table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		id := uuid.New()
		repos.Tables.On("FindByIDForUpdate", ctx, id).Return(nil, shared.ErrNotFound)
		_, err := svc.ChangeNumberOfGuests(ctx, id, 2)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("empty table", func(t *testing.T) {
		svc, repos, _ := setupTableService()
		tbl := newTable(t, 0, true)
		repos.Tables.On("FindByIDForUpdate", ctx, tbl.ID).Return(tbl, nil)
		_, err := svc.ChangeNumberOfGuests(ctx, tbl.ID, 2)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}
