package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// CreateProductInput is the already-validated product payload.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Photo       string
}

// ProductService defines catalog use cases.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
