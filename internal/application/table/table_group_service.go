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

// TableGroupService joins tables into groups and releases them
type TableGroupService struct {
	groupRepo table.TableGroupRepository
	tableRepo table.OrderTableRepository
	txScope   scope.TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewTableGroupService creates a new TableGroupService
func NewTableGroupService(
	groupRepo table.TableGroupRepository,
	tableRepo table.OrderTableRepository,
	txScope scope.TransactionScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TableGroupService {
	return &TableGroupService{
		groupRepo: groupRepo,
		tableRepo: tableRepo,
		txScope:   txScope,
		publisher: publisher,
		logger:    logger,
	}
}

// Create joins the given empty, ungrouped tables into a new group. The
// requested tables stay locked from the moment they are read until the
// group and every member update commit.
func (s *TableGroupService) Create(ctx context.Context, req CreateTableGroupRequest) (*TableGroupResponse, error) {
	if err := table.ValidateGroupRequest(req.OrderTableIDs); err != nil {
		return nil, err
	}

	var (
		group   *table.TableGroup
		members []*table.OrderTable
	)
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		var err error
		members, err = repos.OrderTableRepo().FindByIDsForUpdate(ctx, req.OrderTableIDs)
		if err != nil {
			return err
		}

		group, err = table.FormGroup(req.OrderTableIDs, members)
		if err != nil {
			return err
		}

		if err := repos.TableGroupRepo().Save(ctx, group); err != nil {
			return err
		}
		return repos.OrderTableRepo().SaveAll(ctx, members)
	})
	if err != nil {
		return nil, err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, group)
	s.logger.Info("table group formed",
		zap.String("table_group_id", group.ID.String()),
		zap.Int("table_count", len(members)),
	)

	resp := ToTableGroupResponse(group, members)
	return &resp, nil
}

// Get returns a group with its current members
func (s *TableGroupService) Get(ctx context.Context, groupID uuid.UUID) (*TableGroupResponse, error) {
	group, err := findGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.tableRepo.FindByTableGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	resp := ToTableGroupResponse(group, members)
	return &resp, nil
}

// Ungroup releases every member of the group. If any member still has an
// order in COOKING or MEAL nothing is changed. The group record is kept.
func (s *TableGroupService) Ungroup(ctx context.Context, groupID uuid.UUID) error {
	var group *table.TableGroup
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		var err error
		group, err = findGroup(ctx, repos.TableGroupRepo(), groupID)
		if err != nil {
			return err
		}

		members, err := repos.OrderTableRepo().FindByTableGroupIDForUpdate(ctx, groupID)
		if err != nil {
			return err
		}

		active := make(map[uuid.UUID]bool)
		if len(members) > 0 {
			ids := make([]uuid.UUID, len(members))
			for i, m := range members {
				ids[i] = m.ID
			}
			activeIDs, err := repos.OrderRepo().FindActiveTableIDs(ctx, ids)
			if err != nil {
				return err
			}
			for _, id := range activeIDs {
				active[id] = true
			}
		}

		if err := group.Dissolve(members, active); err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		return repos.OrderTableRepo().SaveAll(ctx, members)
	})
	if err != nil {
		return err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, group)
	return nil
}

func findGroup(ctx context.Context, repo table.TableGroupRepository, id uuid.UUID) (*table.TableGroup, error) {
	group, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ReferenceNotFound("Table group %s not found", id)
		}
		return nil, err
	}
	return group, nil
}
