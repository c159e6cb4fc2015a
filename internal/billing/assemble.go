package billing

import (
	"strings"
	"time"

	"autoparts-service/internal/models"

	"github.com/google/uuid"
)

// Assemble combines a customer, the accumulated line items and a tax
// rate into a fully populated invoice ready for persistence. It has no
// side effects of its own: saving the invoice and invalidating any
// cached lists is the caller's responsibility.
//
// The customer is embedded as a deep snapshot, so mutating the customer
// record afterwards does not alter the assembled invoice. A blank
// invoice number gets a generated one; uniqueness is by convention only
// and is not checked here.
func Assemble(
	customer *models.Customer,
	items []models.InvoiceLineItem,
	taxRatePercent float64,
	paymentMethod string,
	notes string,
	invoiceNumber string,
	dueDate time.Time,
) (*models.Invoice, error) {
	if customer == nil {
		return nil, ErrMissingCustomer
	}
	if len(items) == 0 {
		return nil, ErrEmptyInvoice
	}

	if strings.TrimSpace(invoiceNumber) == "" {
		invoiceNumber = NewInvoiceNumber()
	}

	totals := ComputeTotals(items, taxRatePercent)

	itemsCopy := make([]models.InvoiceLineItem, len(items))
	copy(itemsCopy, items)

	return &models.Invoice{
		InvoiceNumber: invoiceNumber,
		Customer:      *customer,
		Items:         itemsCopy,
		Subtotal:      totals.Subtotal,
		TaxRate:       taxRatePercent,
		TaxAmount:     totals.TaxAmount,
		DiscountTotal: totals.DiscountTotal,
		GrandTotal:    totals.GrandTotal,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		CreatedAt:     time.Now(),
		DueDate:       dueDate,
	}, nil
}

// NewInvoiceNumber generates a human-readable invoice number. Collisions
// are astronomically unlikely but not prevented.
func NewInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}
