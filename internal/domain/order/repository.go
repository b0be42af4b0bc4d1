package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Orders are always loaded with their line items.
type OrderRepository interface {
	// FindByIDForUpdate loads the order and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns every order in insertion order
	FindAll(ctx context.Context) ([]Order, error)

	// FindActiveTableIDs returns the subset of tableIDs that have an order
	// in one of the active statuses
	FindActiveTableIDs(ctx context.Context, tableIDs []uuid.UUID) ([]uuid.UUID, error)

	// Save persists the order together with its line items
	Save(ctx context.Context, order *Order) error
}
