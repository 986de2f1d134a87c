package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache // nil disables caching
	events ports.EventSink
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, events ports.EventSink, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, events: events, logger: logger}
}

// List returns the whole catalog, served from cache when possible.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.GetList(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("product list cache read failed")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("product list cache write failed")
		}
	}
	return products, nil
}

// Get returns a single product, served from cache when possible.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		p, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		} else if ok {
			return p, nil
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A write that lands between FindByID and Set can be overwritten here by
	// the older copy. It stays stale for at most one cache TTL.
	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		}
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Photo:       in.Photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.invalidate(ctx, "")
	s.events.Enqueue(domain.NewEvent(domain.EventProductCreated, created.ID, productPayload(created)))
	s.logger.Info().Str("product_id", created.ID).Str("title", created.Title).Msg("product created")

	return created, nil
}

// Update applies only the supplied fields.
func (s *ProductService) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.events.Enqueue(domain.NewEvent(domain.EventProductUpdated, updated.ID, productPayload(updated)))
	s.logger.Info().Str("product_id", updated.ID).Msg("product updated")

	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.events.Enqueue(domain.NewEvent(domain.EventProductDeleted, id, nil))
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

func productPayload(p *domain.Product) map[string]any {
	return map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"photo":       p.Photo,
	}
}
