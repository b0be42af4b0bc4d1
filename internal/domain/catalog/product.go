package catalog

import (
	"errors"
	"strings"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is a sellable item with a fixed price. Products are never
// modified after creation.
type Product struct {
	shared.BaseAggregateRoot
	Name  string
	Price valueobject.Price
}

// NewProduct creates a new product. A nil price is treated as absent.
func NewProduct(name string, price *decimal.Decimal) (*Product, error) {
	if err := validateName("Product", name); err != nil {
		return nil, err
	}
	p, err := requirePrice("Product", price)
	if err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             p,
	}
	return product, nil
}

// requirePrice rejects absent, negative and over-precise prices
func requirePrice(kind string, price *decimal.Decimal) (valueobject.Price, error) {
	if price == nil {
		return valueobject.Price{}, shared.InvalidInput("%s price is required", kind)
	}
	p, err := valueobject.NewPrice(*price)
	if errors.Is(err, valueobject.ErrPriceScale) {
		return valueobject.Price{}, shared.InvalidInput("%s price cannot have more than %d decimal places", kind, valueobject.PriceScale)
	}
	if err != nil {
		return valueobject.Price{}, shared.InvalidInput("%s price cannot be negative", kind)
	}
	return p, nil
}

const maxNameLength = 255

func validateName(kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInput("%s name cannot be empty", kind)
	}
	if len(name) > maxNameLength {
		return shared.InvalidInput("%s name cannot exceed %d characters", kind, maxNameLength)
	}
	return nil
}
