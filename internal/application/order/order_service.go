package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService places orders and drives their status lifecycle
type OrderService struct {
	orderRepo order.OrderRepository
	txScope   scope.TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	txScope scope.TransactionScope,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		publisher: publisher,
		logger:    logger,
	}
}

// Create places a COOKING order for an occupied table. The table row stays
// locked until the order commits, so the table cannot be emptied meanwhile.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	lines := make([]order.LineRequest, len(req.OrderLineItems))
	for i, li := range req.OrderLineItems {
		lines[i] = order.LineRequest{MenuID: li.MenuID, Quantity: li.Quantity}
	}
	if err := order.ValidateLines(lines); err != nil {
		return nil, err
	}

	var o *order.Order
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		menus, err := repos.MenuRepo().FindByIDs(ctx, order.MenuIDs(lines))
		if err != nil {
			return err
		}
		if len(menus) != len(lines) {
			return shared.InvalidInput("Order references %d menus, %d found", len(lines), len(menus))
		}

		t, err := repos.OrderTableRepo().FindByIDForUpdate(ctx, req.OrderTableID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ReferenceNotFound("Table %s not found", req.OrderTableID)
			}
			return err
		}

		o, err = order.PlaceOrder(t, lines, menus)
		if err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns all orders with their line items in insertion order
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]OrderResponse, len(orders))
	for i := range orders {
		result[i] = ToOrderResponse(&orders[i])
	}
	return result, nil
}

// ChangeOrderStatus overwrites the status of an order that is not yet
// completed
func (s *OrderService) ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, req ChangeOrderStatusRequest) (*OrderResponse, error) {
	var o *order.Order
	err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		var err error
		o, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ReferenceNotFound("Order %s not found", orderID)
			}
			return err
		}
		if err := o.ChangeStatus(req.OrderStatus); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	scope.PublishEvents(ctx, s.publisher, s.logger, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}
