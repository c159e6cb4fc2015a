package billing

import (
	"testing"
	"time"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleMissingCustomer(t *testing.T) {
	items := []models.InvoiceLineItem{{LineTotal: 10}}

	_, err := Assemble(nil, items, 8, models.PaymentMethodCash, "", "", time.Time{})
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestAssembleEmptyInvoice(t *testing.T) {
	customer := &models.Customer{ID: "c1", Name: "Jordan Motors"}

	_, err := Assemble(customer, nil, 8, models.PaymentMethodCash, "", "", time.Time{})
	assert.ErrorIs(t, err, ErrEmptyInvoice)
}

func TestAssemblePopulatesInvoice(t *testing.T) {
	customer := &models.Customer{
		ID:   "c1",
		Name: "Jordan Motors",
		Address: models.Address{
			Street: "14 Main St", City: "Springfield", State: "IL",
			ZipCode: "62701", Country: "US",
		},
	}
	items := []models.InvoiceLineItem{
		{PartID: "p1", Quantity: 2, UnitPrice: 49.99, LineTotal: 99.98},
		{PartID: "p2", Quantity: 1, UnitPrice: 12.99, LineTotal: 12.99},
	}
	dueDate := time.Now().Add(30 * 24 * time.Hour)

	before := time.Now()
	inv, err := Assemble(customer, items, 8, models.PaymentMethodCard, "rush order", "INV-0042", dueDate)
	require.NoError(t, err)

	assert.Equal(t, "INV-0042", inv.InvoiceNumber)
	assert.Equal(t, models.PaymentMethodCard, inv.PaymentMethod)
	assert.Equal(t, "rush order", inv.Notes)
	assert.Equal(t, dueDate, inv.DueDate)
	assert.InDelta(t, 112.97, inv.Subtotal, 1e-9)
	assert.InDelta(t, 9.0376, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 122.0076, inv.GrandTotal, 1e-9)
	assert.False(t, inv.CreatedAt.Before(before))
	require.Len(t, inv.Items, 2)
}

func TestAssembleSnapshotsCustomer(t *testing.T) {
	customer := &models.Customer{ID: "c1", Name: "Jordan Motors", Phone: "555-0101"}
	items := []models.InvoiceLineItem{{PartID: "p1", Quantity: 1, UnitPrice: 10, LineTotal: 10}}

	inv, err := Assemble(customer, items, 0, models.PaymentMethodCash, "", "", time.Time{})
	require.NoError(t, err)

	// Mutating the source record afterwards must not alter the invoice.
	customer.Name = "Renamed"
	customer.Phone = "555-9999"
	assert.Equal(t, "Jordan Motors", inv.Customer.Name)
	assert.Equal(t, "555-0101", inv.Customer.Phone)

	// Same for the line item slice.
	items[0].Quantity = 99
	assert.Equal(t, 1, inv.Items[0].Quantity)
}

func TestAssembleGeneratesInvoiceNumber(t *testing.T) {
	customer := &models.Customer{ID: "c1", Name: "Jordan Motors"}
	items := []models.InvoiceLineItem{{PartID: "p1", Quantity: 1, UnitPrice: 10, LineTotal: 10}}

	inv, err := Assemble(customer, items, 0, models.PaymentMethodCash, "", "  ", time.Time{})
	require.NoError(t, err)

	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, inv.InvoiceNumber)
}
