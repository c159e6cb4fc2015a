package models

import "time"

// Event types
const (
	EventTypeInvoiceCreated  = "INVOICE_CREATED"
	EventTypePartCreated     = "PART_CREATED"
	EventTypePartUpdated     = "PART_UPDATED"
	EventTypePartDeleted     = "PART_DELETED"
	EventTypeCustomerChanged = "CUSTOMER_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// InvoiceCreatedEvent published after an invoice is persisted
type InvoiceCreatedEvent struct {
	BaseEvent
	InvoiceID     string         `json:"invoice_id"`
	InvoiceNumber string         `json:"invoice_number"`
	CustomerID    string         `json:"customer_id"`
	GrandTotal    float64        `json:"grand_total"`
	Items         []LineItemData `json:"items"`
}

// PartChangedEvent published after a catalog mutation. For deletes only
// the part ID is meaningful.
type PartChangedEvent struct {
	BaseEvent
	PartID     string `json:"part_id"`
	PartNumber string `json:"part_number,omitempty"`
}

// CustomerChangedEvent published after a customer mutation
type CustomerChangedEvent struct {
	BaseEvent
	CustomerID string `json:"customer_id"`
}

// LineItemData represents line item data in events
type LineItemData struct {
	PartID    string  `json:"part_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
}
