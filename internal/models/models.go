package models

import "time"

// Part represents a purchasable item in the shop catalog
type Part struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	PartNumber      string    `db:"part_number" json:"partNumber"`
	Description     string    `db:"description" json:"description,omitempty"`
	Category        string    `db:"category" json:"category"`
	UnitPrice       float64   `db:"unit_price" json:"unitPrice"`
	CostPrice       float64   `db:"cost_price" json:"costPrice"`
	StockQuantity   int       `db:"stock_quantity" json:"stockQuantity"`
	Manufacturer    string    `db:"manufacturer" json:"manufacturer"`
	StorageLocation string    `db:"storage_location" json:"storageLocation,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Address is the postal address of a customer
type Address struct {
	Street  string `db:"street" json:"street"`
	City    string `db:"city" json:"city"`
	State   string `db:"state" json:"state"`
	ZipCode string `db:"zip_code" json:"zipCode"`
	Country string `db:"country" json:"country"`
}

// Customer represents a customer of the shop
type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// InvoiceLineItem is one priced row of an invoice. Name, number and price
// are copied from the part when the line is built so the line survives
// later catalog edits.
type InvoiceLineItem struct {
	PartID     string  `db:"part_id" json:"partId"`
	PartName   string  `db:"part_name" json:"partName"`
	PartNumber string  `db:"part_number" json:"partNumber"`
	Quantity   int     `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unitPrice"`
	Discount   float64 `db:"discount" json:"discount"`
	LineTotal  float64 `db:"line_total" json:"lineTotal"`
}

// Totals is the aggregate of an invoice's line items plus tax
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TaxAmount     float64 `json:"taxAmount"`
	DiscountTotal float64 `json:"discountTotal"`
	GrandTotal    float64 `json:"grandTotal"`
}

// Invoice represents a persisted bill. The customer is an embedded
// snapshot, not a reference: editing the customer afterwards does not
// touch existing invoices.
type Invoice struct {
	ID            string            `db:"id" json:"id"`
	InvoiceNumber string            `db:"invoice_number" json:"invoiceNumber"`
	Customer      Customer          `json:"customer"`
	Items         []InvoiceLineItem `json:"items"`
	Subtotal      float64           `db:"subtotal" json:"subtotal"`
	TaxRate       float64           `db:"tax_rate" json:"taxRate"`
	TaxAmount     float64           `db:"tax_amount" json:"taxAmount"`
	DiscountTotal float64           `db:"discount_total" json:"discountTotal"`
	GrandTotal    float64           `db:"grand_total" json:"grandTotal"`
	PaymentMethod string            `db:"payment_method" json:"paymentMethod"`
	Notes         string            `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
	DueDate       time.Time         `db:"due_date" json:"dueDate"`
}

// Payment methods
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCheck    = "CHECK"
)

// User is a staff account for the admin app
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
