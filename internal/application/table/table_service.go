package table

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/table"
	"go.uber.org/zap"
)

// TableService manages table occupancy and guest counts
type TableService struct {
	tableRepo table.OrderTableRepository
	txScope   scope.TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewTableService creates a new TableService
func NewTableService(
	tableRepo table.OrderTableRepository,
	txScope scope.TransactionScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		txScope:   txScope,
		publisher: publisher,
		logger:    logger,
	}
}

// Create registers a new ungrouped table
func (s *TableService) Create(ctx context.Context, req CreateTableRequest) (*TableResponse, error) {
	t, err := table.NewOrderTable(req.NumberOfGuests, req.Empty)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		return repos.OrderTableRepo().Save(ctx, t)
	}); err != nil {
		return nil, err
	}
	resp := ToTableResponse(t)
	return &resp, nil
}

// List returns all tables in insertion order
func (s *TableService) List(ctx context.Context) ([]TableResponse, error) {
	tables, err := s.tableRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]TableResponse, len(tables))
	for i := range tables {
		result[i] = ToTableResponse(&tables[i])
	}
	return result, nil
}

// ChangeEmpty sets a table's occupancy. A grouped table, or one with an
// order still COOKING or MEAL, cannot change.
func (s *TableService) ChangeEmpty(ctx context.Context, tableID uuid.UUID, empty bool) (*TableResponse, error) {
	var t *table.OrderTable
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		var err error
		t, err = lockTable(ctx, repos, tableID)
		if err != nil {
			return err
		}

		active := false
		if !t.IsGrouped() {
			ids, err := repos.OrderRepo().FindActiveTableIDs(ctx, []uuid.UUID{t.ID})
			if err != nil {
				return err
			}
			active = len(ids) > 0
		}

		if err := t.ChangeEmpty(empty, active); err != nil {
			return err
		}
		return repos.OrderTableRepo().Save(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, t)

	resp := ToTableResponse(t)
	return &resp, nil
}

// ChangeNumberOfGuests records the guest count of an occupied table
func (s *TableService) ChangeNumberOfGuests(ctx context.Context, tableID uuid.UUID, guests int) (*TableResponse, error) {
	if err := table.ValidateNumberOfGuests(guests); err != nil {
		return nil, err
	}

	var t *table.OrderTable
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		var err error
		t, err = lockTable(ctx, repos, tableID)
		if err != nil {
			return err
		}
		if err := t.ChangeNumberOfGuests(guests); err != nil {
			return err
		}
		return repos.OrderTableRepo().Save(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	resp := ToTableResponse(t)
	return &resp, nil
}

// lockTable loads a table with a row lock, translating a missing row into
// a reference error
func lockTable(ctx context.Context, repos scope.TransactionalRepositories, id uuid.UUID) (*table.OrderTable, error) {
	t, err := repos.OrderTableRepo().FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ReferenceNotFound("Table %s not found", id)
		}
		return nil, err
	}
	return t, nil
}
