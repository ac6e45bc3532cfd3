package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vendorhub/internal/domain"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func toDomainVendor(m vendorRow) *domain.Vendor {
	return &domain.Vendor{
		ID:         m.ID,
		IdentityID: m.IdentityID,
		LegalName:  m.LegalName,
		Status:     domain.ReviewStatus(m.Status),
		ReviewedBy: m.ReviewedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDomainDocument(m documentRow) *domain.Document {
	return &domain.Document{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Kind:        domain.DocumentKind(m.Kind),
		StoragePath: m.StoragePath,
		Status:      domain.ReviewStatus(m.Status),
		ReviewedBy:  m.ReviewedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// lockForUpdate adds a row lock on PostgreSQL; SQLite serializes writers
// on its own and rejects the clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var m vendorRow
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainVendor(m), nil
}

func (r *VendorRepository) GetByIdentityID(ctx context.Context, identityID int64) (*domain.Vendor, error) {
	var m vendorRow
	if err := r.db.WithContext(ctx).Where("identity_id = ?", identityID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainVendor(m), nil
}

// SetStatus is the explicit reviewer override: it writes the decision
// as-is without consulting documents. Most recent explicit action wins.
func (r *VendorRepository) SetStatus(ctx context.Context, vendorID int64, status domain.ReviewStatus, reviewerID int64) (*domain.Vendor, error) {
	var out *domain.Vendor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m vendorRow
		if err := lockForUpdate(tx).First(&m, vendorID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&vendorRow{}).Where("id = ?", m.ID).Updates(map[string]any{
			"status":      string(status),
			"reviewed_by": reviewerID,
			"updated_at":  now,
		}).Error; err != nil {
			return err
		}

		m.Status = string(status)
		m.ReviewedBy = &reviewerID
		m.UpdatedAt = now
		out = toDomainVendor(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPending expects page and limit already normalized by the caller,
// see NormalizePage.
func (r *VendorRepository) ListPending(ctx context.Context, page, limit int) ([]domain.Vendor, int64, error) {
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&vendorRow{}).Where("status = ?", string(domain.StatusPending))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []vendorRow
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]domain.Vendor, 0, len(rows))
	for _, m := range rows {
		vendors = append(vendors, *toDomainVendor(m))
	}
	return vendors, total, nil
}

func (r *VendorRepository) CreateDocument(ctx context.Context, d *domain.Document) error {
	m := documentRow{
		VendorID:    d.VendorID,
		Kind:        string(d.Kind),
		StoragePath: d.StoragePath,
		Status:      string(domain.StatusPending),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*d = *toDomainDocument(m)
	return nil
}

func (r *VendorRepository) ListDocuments(ctx context.Context, vendorID int64) ([]domain.Document, error) {
	var rows []documentRow
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, m := range rows {
		docs = append(docs, *toDomainDocument(m))
	}
	return docs, nil
}

// ReviewDocument writes the document decision and recomputes the vendor
// aggregate in one transaction, with the vendor row locked so two
// concurrent reviews cannot interleave on a stale document snapshot.
// Returns the updated document and the vendor status after recompute.
func (r *VendorRepository) ReviewDocument(ctx context.Context, docID int64, status domain.ReviewStatus, reviewerID int64) (*domain.Document, domain.ReviewStatus, error) {
	var (
		outDoc       *domain.Document
		vendorStatus domain.ReviewStatus
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d documentRow
		if err := tx.First(&d, docID).Error; err != nil {
			return err
		}

		var v vendorRow
		if err := lockForUpdate(tx).First(&v, d.VendorID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&documentRow{}).Where("id = ?", d.ID).Updates(map[string]any{
			"status":      string(status),
			"reviewed_by": reviewerID,
			"updated_at":  now,
		}).Error; err != nil {
			return err
		}

		var all []documentRow
		if err := tx.Where("vendor_id = ?", v.ID).
			Order("created_at ASC, id ASC").
			Find(&all).Error; err != nil {
			return err
		}

		docs := make([]domain.Document, 0, len(all))
		for _, m := range all {
			docs = append(docs, *toDomainDocument(m))
		}
		agg := domain.AggregateVendorStatus(docs)

		if agg != domain.ReviewStatus(v.Status) {
			if err := tx.Model(&vendorRow{}).Where("id = ?", v.ID).Updates(map[string]any{
				"status":     string(agg),
				"updated_at": now,
			}).Error; err != nil {
				return err
			}
		}

		d.Status = string(status)
		d.ReviewedBy = &reviewerID
		d.UpdatedAt = now
		outDoc = toDomainDocument(d)
		vendorStatus = agg
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return outDoc, vendorStatus, nil
}
