package catalog

import (
	"context"
	"fmt"

	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/catalog"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	txScope     scope.TransactionScope
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, txScope scope.TransactionScope) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		txScope:     txScope,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.txScope.Execute(ctx, func(repos scope.TransactionalRepositories) error {
		return repos.ProductRepo().Save(ctx, product)
	}); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns all products in insertion order
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ProductResponse, len(products))
	for i := range products {
		result[i] = ToProductResponse(&products[i])
	}
	return result, nil
}
