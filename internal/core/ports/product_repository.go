package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Photo       *string
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.Photo == nil
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductCache is an optional read-through cache in front of ProductRepository.
// A miss is reported as (nil, false, nil).
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool, error)
	Set(ctx context.Context, p *domain.Product) error
	GetList(ctx context.Context) ([]*domain.Product, bool, error)
	SetList(ctx context.Context, products []*domain.Product) error
	// Invalidate drops the entry for id (when non-empty) and the cached list.
	Invalidate(ctx context.Context, id string) error
}
