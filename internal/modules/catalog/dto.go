package catalog

import (
	"github.com/shopspring/decimal"

	"vendorhub/internal/domain"
)

type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required,min=2,max=200"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

type ReviewRequest struct {
	Decision domain.Decision `json:"decision" binding:"required"`
}

type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
