package catalog

import (
	"context"
	"fmt"

	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/catalog"
)

// MenuGroupService handles menu group operations
type MenuGroupService struct {
	menuGroupRepo catalog.MenuGroupRepository
	txScope       scope.TransactionScope
}

// NewMenuGroupService creates a new MenuGroupService
func NewMenuGroupService(menuGroupRepo catalog.MenuGroupRepository, txScope scope.TransactionScope) *MenuGroupService {
	return &MenuGroupService{
		menuGroupRepo: menuGroupRepo,
		txScope:       txScope,
	}
}

// Create creates a new menu group
func (s *MenuGroupService) Create(ctx context.Context, req CreateMenuGroupRequest) (*MenuGroupResponse, error) {
	group, err := catalog.NewMenuGroup(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		return repos.MenuGroupRepo().Save(ctx, group)
	}); err != nil {
		return nil, fmt.Errorf("failed to save menu group: %w", err)
	}

	resp := ToMenuGroupResponse(group)
	return &resp, nil
}

// List returns all menu groups in insertion order
func (s *MenuGroupService) List(ctx context.Context) ([]MenuGroupResponse, error) {
	groups, err := s.menuGroupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MenuGroupResponse, len(groups))
	for i := range groups {
		result[i] = ToMenuGroupResponse(&groups[i])
	}
	return result, nil
}
