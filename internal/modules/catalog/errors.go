package catalog

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVendorNotApproved = errors.New("vendor is not approved for listing products")
	ErrForbidden         = errors.New("operation not allowed for this account")
	ErrInvalidDecision   = errors.New("decision must be approve or reject")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
)
