package events

import "time"

// Event types pushed to connected reviewer dashboards.
const (
	TypeVendorRegistered    = "vendor.registered"
	TypeDocumentSubmitted   = "document.submitted"
	TypeDocumentReviewed    = "document.reviewed"
	TypeVendorStatusChanged = "vendor.status_changed"
	TypeProductSubmitted    = "product.submitted"
	TypeProductReviewed     = "product.reviewed"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

func New(eventType string, payload interface{}) Event {
	return Event{Type: eventType, Payload: payload, At: time.Now()}
}
