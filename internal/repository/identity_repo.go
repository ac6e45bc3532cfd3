package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"vendorhub/internal/domain"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func toDomainIdentity(m identityRow) *domain.Identity {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Identity{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		VendorID:     m.VendorID,
		Phone:        phone,
		Verified:     m.Verified,
		VerifiedAt:   m.VerifiedAt,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toIdentityRow(u *domain.Identity) identityRow {
	var phone *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	return identityRow{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		VendorID:     u.VendorID,
		Phone:        phone,
		Verified:     u.Verified,
		VerifiedAt:   u.VerifiedAt,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *IdentityRepository) Create(ctx context.Context, u *domain.Identity) error {
	m := toIdentityRow(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateDuplicate(err)
	}
	*u = *toDomainIdentity(m)
	return nil
}

// CreateWithVendor creates a vendor-role identity together with its
// pending Vendor row and the back-reference, all in one transaction.
func (r *IdentityRepository) CreateWithVendor(ctx context.Context, u *domain.Identity, legalName string) (*domain.Vendor, error) {
	var vendor *domain.Vendor

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toIdentityRow(u)
		if err := tx.Create(&m).Error; err != nil {
			return translateDuplicate(err)
		}

		v := vendorRow{
			IdentityID: m.ID,
			LegalName:  legalName,
			Status:     string(domain.StatusPending),
		}
		if err := tx.Create(&v).Error; err != nil {
			return translateDuplicate(err)
		}

		if err := tx.Model(&identityRow{}).Where("id = ?", m.ID).
			Update("vendor_id", v.ID).Error; err != nil {
			return err
		}
		m.VendorID = &v.ID

		*u = *toDomainIdentity(m)
		vendor = toDomainVendor(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	var m identityRow
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainIdentity(m), nil
}

func (r *IdentityRepository) GetByEmailRole(ctx context.Context, email string, role domain.Role) (*domain.Identity, error) {
	var m identityRow
	err := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), string(role)).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomainIdentity(m), nil
}

func (r *IdentityRepository) ExistsByEmailRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identityRow{}).
		Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), string(role)).
		Count(&count).Error
	return count > 0, err
}

func (r *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identityRow{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// GetUnverifiedByEmail returns the most recent unverified identity for
// the email, any role. Used to resolve OTP resend requests.
func (r *IdentityRepository) GetUnverifiedByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var m identityRow
	err := r.db.WithContext(ctx).
		Where("email = ? AND verified = ?", strings.ToLower(strings.TrimSpace(email)), false).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomainIdentity(m), nil
}
