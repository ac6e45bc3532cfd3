package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vendorhub/internal/domain"
	"vendorhub/internal/modules/events"
	"vendorhub/internal/repository"
)

// Service owns the catalog approval workflow. Products follow the same
// pending/approved/rejected lifecycle as vendors, but only approved
// vendors may create them in the first place.
type Service struct {
	products ProductRepositoryInterface
	vendors  VendorGate
	bus      EventPublisher
}

func NewService(products ProductRepositoryInterface, vendors VendorGate, bus EventPublisher) *Service {
	return &Service{products: products, vendors: vendors, bus: bus}
}

func (s *Service) publish(eventType string, payload interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.New(eventType, payload))
}

// CreateProduct creates a pending listing for the acting vendor. The
// vendor's status is checked at submission time; a later vendor
// rejection does not retract already created products.
func (s *Service) CreateProduct(ctx context.Context, actor domain.Actor, req CreateProductRequest) (*domain.Product, error) {
	if actor.Role != domain.RoleVendor || actor.VendorID == 0 {
		return nil, ErrForbidden
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	v, err := s.vendors.GetByID(ctx, actor.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if v.Status != domain.StatusApproved {
		return nil, ErrVendorNotApproved
	}

	p := &domain.Product{
		VendorID: actor.VendorID,
		Name:     req.Name,
		Price:    req.Price,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publish(events.TypeProductSubmitted, p)
	return p, nil
}

// ReviewProduct applies a reviewer decision. Re-reviewing is allowed;
// the latest decision stands.
func (s *Service) ReviewProduct(ctx context.Context, actor domain.Actor, productID int64, decision domain.Decision) (*domain.Product, error) {
	if !actor.IsReviewer() {
		return nil, ErrForbidden
	}
	status, ok := decision.Status()
	if !ok {
		return nil, ErrInvalidDecision
	}

	p, err := s.products.SetStatus(ctx, productID, status, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.publish(events.TypeProductReviewed, p)
	return p, nil
}

// GetProduct enforces role-scoped visibility: vendors see only their own
// listings, warehouse managers only approved ones, reviewers everything.
func (s *Service) GetProduct(ctx context.Context, actor domain.Actor, productID int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	switch {
	case actor.IsReviewer():
		return p, nil
	case actor.Role == domain.RoleVendor:
		if p.VendorID != actor.VendorID {
			return nil, ErrProductNotFound
		}
		return p, nil
	case actor.Role == domain.RoleWarehouseManager:
		if p.Status != domain.StatusApproved {
			return nil, ErrProductNotFound
		}
		return p, nil
	}
	return nil, ErrForbidden
}

// ListProducts applies the same visibility scoping as GetProduct. The
// status filter is only honored for roles that may see that status.
func (s *Service) ListProducts(ctx context.Context, actor domain.Actor, status *domain.ReviewStatus, page, limit int) (*ProductPage, error) {
	filter := repository.ProductFilter{Status: status}

	switch {
	case actor.IsReviewer():
		// no scoping
	case actor.Role == domain.RoleVendor:
		if actor.VendorID == 0 {
			return nil, ErrForbidden
		}
		vendorID := actor.VendorID
		filter.VendorID = &vendorID
	case actor.Role == domain.RoleWarehouseManager:
		approved := domain.StatusApproved
		filter.Status = &approved
	default:
		return nil, ErrForbidden
	}

	page, limit = repository.NormalizePage(page, limit)
	products, total, err := s.products.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Page: page, Limit: limit}, nil
}
