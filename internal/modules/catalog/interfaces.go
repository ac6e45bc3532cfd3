package catalog

import (
	"context"

	"vendorhub/internal/domain"
	"vendorhub/internal/modules/events"
	"vendorhub/internal/repository"
)

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	SetStatus(ctx context.Context, id int64, status domain.ReviewStatus, reviewerID int64) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]domain.Product, int64, error)
}

// VendorGate answers the only question the catalog asks about vendors:
// is this one allowed to list products right now.
type VendorGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

type EventPublisher interface {
	Publish(event events.Event)
}
