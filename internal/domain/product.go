package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a vendor listing. Review is independent of the vendor's own
// status: an approved vendor may still have individual products rejected.
type Product struct {
	ID         int64           `json:"id"`
	VendorID   int64           `json:"vendor_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Status     ReviewStatus    `json:"status"`
	ReviewedBy *int64          `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
