package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vendorhub/internal/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func toDomainProduct(m productRow) *domain.Product {
	return &domain.Product{
		ID:         m.ID,
		VendorID:   m.VendorID,
		Name:       m.Name,
		Price:      m.Price,
		Status:     domain.ReviewStatus(m.Status),
		ReviewedBy: m.ReviewedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ProductFilter narrows List; a nil field means "any".
type ProductFilter struct {
	VendorID *int64
	Status   *domain.ReviewStatus
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := productRow{
		VendorID: p.VendorID,
		Name:     p.Name,
		Price:    p.Price,
		Status:   string(domain.StatusPending),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProduct(m)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productRow
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainProduct(m), nil
}

func (r *ProductRepository) SetStatus(ctx context.Context, id int64, status domain.ReviewStatus, reviewerID int64) (*domain.Product, error) {
	var m productRow
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", m.ID).Updates(map[string]any{
		"status":      string(status),
		"reviewed_by": reviewerID,
		"updated_at":  now,
	}).Error; err != nil {
		return nil, err
	}

	m.Status = string(status)
	m.ReviewedBy = &reviewerID
	m.UpdatedAt = now
	return toDomainProduct(m), nil
}

// List expects page and limit already normalized by the caller, see
// NormalizePage.
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter, page, limit int) ([]domain.Product, int64, error) {
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&productRow{})
	if filter.VendorID != nil {
		q = q.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []productRow
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, m := range rows {
		products = append(products, *toDomainProduct(m))
	}
	return products, total, nil
}
