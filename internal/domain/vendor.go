package domain

import "time"

type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the review status a decision transitions an entity into.
func (d Decision) Status() (ReviewStatus, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionReject:
		return StatusRejected, true
	}
	return "", false
}

type DocumentKind string

const (
	DocBusinessLicense DocumentKind = "business_license"
	DocTaxCertificate  DocumentKind = "tax_certificate"
	DocIdentityProof   DocumentKind = "identity_proof"
)

// RequiredDocumentKinds must all exist and be approved before a vendor's
// aggregate status may become approved.
var RequiredDocumentKinds = []DocumentKind{
	DocBusinessLicense,
	DocTaxCertificate,
	DocIdentityProof,
}

func (k DocumentKind) Valid() bool {
	for _, r := range RequiredDocumentKinds {
		if k == r {
			return true
		}
	}
	return false
}

// Vendor is the tenant entity a vendor-role identity is bound to.
// Status starts pending and changes only by reviewer action or by the
// document aggregation rule.
type Vendor struct {
	ID         int64        `json:"id"`
	IdentityID int64        `json:"identity_id"`
	LegalName  string       `json:"legal_name"`
	Status     ReviewStatus `json:"status"`
	ReviewedBy *int64       `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Document is one uploaded compliance file. Its status is independent of
// the parent vendor's aggregate status.
type Document struct {
	ID          int64        `json:"id"`
	VendorID    int64        `json:"vendor_id"`
	Kind        DocumentKind `json:"kind"`
	StoragePath string       `json:"storage_path"`
	Status      ReviewStatus `json:"status"`
	ReviewedBy  *int64       `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// AggregateVendorStatus computes the document-derived vendor status:
// rejected wins over everything, approved requires every required kind
// present and approved, anything else stays pending.
func AggregateVendorStatus(docs []Document) ReviewStatus {
	latest := make(map[DocumentKind]ReviewStatus, len(docs))
	for _, d := range docs {
		// later uploads of the same kind supersede earlier ones
		latest[d.Kind] = d.Status
	}

	for _, st := range latest {
		if st == StatusRejected {
			return StatusRejected
		}
	}

	for _, kind := range RequiredDocumentKinds {
		if latest[kind] != StatusApproved {
			return StatusPending
		}
	}
	return StatusApproved
}
