package catalog

import (
	"context"

	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MenuService handles menu operations
type MenuService struct {
	menuRepo  catalog.MenuRepository
	txScope   scope.TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewMenuService creates a new MenuService
func NewMenuService(
	menuRepo catalog.MenuRepository,
	txScope scope.TransactionScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		txScope:   txScope,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a menu after resolving its group and products. The menu and
// its product lines are written in one transaction.
func (s *MenuService) Create(ctx context.Context, req CreateMenuRequest) (*MenuResponse, error) {
	lines := make([]catalog.MenuProductLine, len(req.MenuProducts))
	for i, mp := range req.MenuProducts {
		lines[i] = catalog.MenuProductLine{ProductID: mp.ProductID, Quantity: mp.Quantity}
	}

	draft, err := catalog.NewMenuDraft(req.Name, req.Price, req.MenuGroupID, lines)
	if err != nil {
		return nil, err
	}

	var menu *catalog.Menu
	err = s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		exists, err := repos.MenuGroupRepo().ExistsByID(ctx, draft.MenuGroupID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ReferenceNotFound("Menu group %s not found", draft.MenuGroupID)
		}

		products, err := repos.ProductRepo().FindByIDs(ctx, draft.ProductIDs())
		if err != nil {
			return err
		}

		menu, err = draft.Build(products)
		if err != nil {
			return err
		}
		return repos.MenuRepo().Save(ctx, menu)
	})
	if err != nil {
		return nil, err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, menu)

	resp := ToMenuResponse(menu)
	return &resp, nil
}

// List returns all menus with their products in insertion order
func (s *MenuService) List(ctx context.Context) ([]MenuResponse, error) {
	menus, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MenuResponse, len(menus))
	for i := range menus {
		result[i] = ToMenuResponse(&menus[i])
	}
	return result, nil
}
