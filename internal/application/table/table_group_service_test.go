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

func setupGroupService() (*TableGroupService, *testutil.Repos, *testutil.RecordingPublisher) {
	repos := testutil.NewRepos()
	pub := &testutil.RecordingPublisher{}
	return NewTableGroupService(repos.Groups, repos.Tables, repos.Scope(), pub, zap.NewNop()), repos, pub
}

func TestTableGroupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("groups two empty tables", func(t *testing.T) {
		svc, repos, pub := setupGroupService()
		t1, t2 := newTable(t, 0, true), newTable(t, 0, true)
		ids := []uuid.UUID{t1.ID, t2.ID}

		repos.Tables.On("FindByIDsForUpdate", ctx, ids).Return([]*table.OrderTable{t1, t2}, nil)
		repos.Groups.On("Save", ctx, mock.AnythingOfType("*table.TableGroup")).Return(nil)
		repos.Tables.On("SaveAll", ctx, []*table.OrderTable{t1, t2}).Return(nil)

		resp, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: ids})
		require.NoError(t, err)
		require.Len(t, resp.OrderTables, 2)
		for _, m := range resp.OrderTables {
			require.NotNil(t, m.TableGroupID)
			assert.Equal(t, resp.ID, *m.TableGroupID)
			assert.False(t, m.Empty)
		}
		assert.Equal(t, []string{table.EventTypeTableGroupFormed}, pub.EventTypes())
		repos.AssertExpectations(t)
	})

	t.Run("fewer than two tables fails before lookup", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		_, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: []uuid.UUID{uuid.New()}})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		repos.AssertExpectations(t)
	})

	t.Run("duplicate id fails before lookup", func(t *testing.T) {
		svc, _, _ := setupGroupService()
		id := uuid.New()
		_, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: []uuid.UUID{id, id}})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("unknown table", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		t1 := newTable(t, 0, true)
		ids := []uuid.UUID{t1.ID, uuid.New()}
		repos.Tables.On("FindByIDsForUpdate", ctx, ids).Return([]*table.OrderTable{t1}, nil)

		_, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: ids})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		repos.Groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("occupied table", func(t *testing.T) {
		svc, repos, pub := setupGroupService()
		t1, t2 := newTable(t, 0, true), newTable(t, 2, false)
		ids := []uuid.UUID{t1.ID, t2.ID}
		repos.Tables.On("FindByIDsForUpdate", ctx, ids).Return([]*table.OrderTable{t1, t2}, nil)

		_, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: ids})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		repos.Tables.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
		assert.Empty(t, pub.EventTypes())
	})

	t.Run("already grouped table", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		t1, t2 := newTable(t, 0, true), newTable(t, 0, true)
		other := uuid.New()
		t2.TableGroupID = &other
		ids := []uuid.UUID{t1.ID, t2.ID}
		repos.Tables.On("FindByIDsForUpdate", ctx, ids).Return([]*table.OrderTable{t1, t2}, nil)

		_, err := svc.Create(ctx, CreateTableGroupRequest{OrderTableIDs: ids})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func formedGroup(t *testing.T) (*table.TableGroup, []*table.OrderTable) {
	t.Helper()
	t1, t2 := newTable(t, 0, true), newTable(t, 0, true)
	g, err := table.FormGroup([]uuid.UUID{t1.ID, t2.ID}, []*table.OrderTable{t1, t2})
	require.NoError(t, err)
	g.ClearDomainEvents()
	return g, []*table.OrderTable{t1, t2}
}

func TestTableGroupService_Ungroup(t *testing.T) {
	ctx := context.Background()

	t.Run("releases members", func(t *testing.T) {
		svc, repos, pub := setupGroupService()
		g, members := formedGroup(t)
		repos.Groups.On("FindByID", ctx, g.ID).Return(g, nil)
		repos.Tables.On("FindByTableGroupIDForUpdate", ctx, g.ID).Return(members, nil)
		repos.Orders.On("FindActiveTableIDs", ctx, []uuid.UUID{members[0].ID, members[1].ID}).Return([]uuid.UUID{}, nil)
		repos.Tables.On("SaveAll", ctx, members).Return(nil)

		require.NoError(t, svc.Ungroup(ctx, g.ID))
		for _, m := range members {
			assert.Nil(t, m.TableGroupID)
			assert.False(t, m.Empty)
		}
		assert.Equal(t, []string{table.EventTypeTableGroupDissolved}, pub.EventTypes())
		repos.AssertExpectations(t)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		id := uuid.New()
		repos.Groups.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Ungroup(ctx, id)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("member with order in progress", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		g, members := formedGroup(t)
		repos.Groups.On("FindByID", ctx, g.ID).Return(g, nil)
		repos.Tables.On("FindByTableGroupIDForUpdate", ctx, g.ID).Return(members, nil)
		repos.Orders.On("FindActiveTableIDs", ctx, mock.Anything).Return([]uuid.UUID{members[1].ID}, nil)

		err := svc.Ungroup(ctx, g.ID)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		for _, m := range members {
			assert.NotNil(t, m.TableGroupID)
		}
		repos.Tables.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("group without current members is a no-op", func(t *testing.T) {
		svc, repos, _ := setupGroupService()
		g, _ := formedGroup(t)
		repos.Groups.On("FindByID", ctx, g.ID).Return(g, nil)
		repos.Tables.On("FindByTableGroupIDForUpdate", ctx, g.ID).Return([]*table.OrderTable{}, nil)

		require.NoError(t, svc.Ungroup(ctx, g.ID))
		repos.Orders.AssertNotCalled(t, "FindActiveTableIDs", mock.Anything, mock.Anything)
	})
}

func TestTableGroupService_Get(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := setupGroupService()
	g, members := formedGroup(t)
	repos.Groups.On("FindByID", ctx, g.ID).Return(g, nil)
	repos.Tables.On("FindByTableGroupID", ctx, g.ID).Return(members, nil)

	resp, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.TableIDs, resp.TableIDs)
	assert.Len(t, resp.OrderTables, 2)
}
