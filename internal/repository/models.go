package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type identityRow struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Email        string     `gorm:"column:email;index:idx_identities_email_role,unique"`
	Role         string     `gorm:"column:role;index:idx_identities_email_role,unique"`
	PasswordHash string     `gorm:"column:password_hash"`
	VendorID     *int64     `gorm:"column:vendor_id"`
	Phone        *string    `gorm:"column:phone"`
	Verified     bool       `gorm:"column:verified"`
	VerifiedAt   *time.Time `gorm:"column:verified_at"`
	Active       bool       `gorm:"column:active"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (identityRow) TableName() string { return "identities" }

type otpChallengeRow struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	IdentityID int64      `gorm:"column:identity_id"`
	Email      string     `gorm:"column:email;uniqueIndex:idx_otp_email_live,where:consumed_at IS NULL"`
	CodeHash   string     `gorm:"column:code_hash"`
	ExpiresAt  time.Time  `gorm:"column:expires_at"`
	ConsumedAt *time.Time `gorm:"column:consumed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (otpChallengeRow) TableName() string { return "otp_challenges" }

type vendorRow struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	IdentityID int64     `gorm:"column:identity_id;uniqueIndex:idx_vendors_identity"`
	LegalName  string    `gorm:"column:legal_name"`
	Status     string    `gorm:"column:status;index:idx_vendors_status"`
	ReviewedBy *int64    `gorm:"column:reviewed_by"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (vendorRow) TableName() string { return "vendors" }

type documentRow struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	VendorID    int64     `gorm:"column:vendor_id;index:idx_documents_vendor"`
	Kind        string    `gorm:"column:kind"`
	StoragePath string    `gorm:"column:storage_path"`
	Status      string    `gorm:"column:status"`
	ReviewedBy  *int64    `gorm:"column:reviewed_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (documentRow) TableName() string { return "documents" }

type productRow struct {
	ID         int64           `gorm:"column:id;primaryKey"`
	VendorID   int64           `gorm:"column:vendor_id;index:idx_products_vendor"`
	Name       string          `gorm:"column:name"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Status     string          `gorm:"column:status;index:idx_products_status"`
	ReviewedBy *int64          `gorm:"column:reviewed_by"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (productRow) TableName() string { return "products" }

// AutoMigrate creates the schema for every row model. Used by cmd/seed,
// dev startup and tests; production schemas are managed externally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identityRow{},
		&otpChallengeRow{},
		&vendorRow{},
		&documentRow{},
		&productRow{},
	)
}
