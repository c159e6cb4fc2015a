package billing

import (
	"testing"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsSubtotalMatchesLineSum(t *testing.T) {
	items := []models.InvoiceLineItem{
		{UnitPrice: 49.99, Quantity: 2, LineTotal: 99.98},
		{UnitPrice: 12.99, Quantity: 1, LineTotal: 12.99},
		{UnitPrice: 7.25, Quantity: 3, Discount: 1.5, LineTotal: 20.25},
	}

	totals := ComputeTotals(items, 10)

	var want float64
	for _, item := range items {
		want += item.LineTotal
	}
	assert.InDelta(t, want, totals.Subtotal, 1e-9)
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	items := []models.InvoiceLineItem{
		{LineTotal: 99.98},
		{LineTotal: 12.99},
	}

	totals := ComputeTotals(items, 0)
	assert.Zero(t, totals.TaxAmount)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []models.InvoiceLineItem{
		{LineTotal: 45.5, Discount: 2},
		{LineTotal: 10, Discount: 0},
	}

	first := ComputeTotals(items, 7.5)
	second := ComputeTotals(items, 7.5)
	assert.Equal(t, first, second)
}

func TestComputeTotalsScenario(t *testing.T) {
	items := []models.InvoiceLineItem{
		{UnitPrice: 49.99, Quantity: 2, Discount: 0, LineTotal: 99.98},
		{UnitPrice: 12.99, Quantity: 1, Discount: 0, LineTotal: 12.99},
	}

	totals := ComputeTotals(items, 8)

	assert.InDelta(t, 112.97, totals.Subtotal, 1e-9)
	assert.InDelta(t, 9.0376, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 0, totals.DiscountTotal, 1e-9)
	assert.InDelta(t, 122.0076, totals.GrandTotal, 1e-9)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, 8)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.DiscountTotal)
	assert.Zero(t, totals.GrandTotal)
}

func TestComputeTotalsOutOfRangeTaxRateComputedLiterally(t *testing.T) {
	items := []models.InvoiceLineItem{{LineTotal: 100}}

	totals := ComputeTotals(items, 150)
	assert.InDelta(t, 150, totals.TaxAmount, 1e-9)

	totals = ComputeTotals(items, -10)
	assert.InDelta(t, -10, totals.TaxAmount, 1e-9)
}

func TestComputeTotalsReportsDiscountSeparately(t *testing.T) {
	// Per-line discounts are already inside lineTotal; the discount total
	// is reported on its own and additionally subtracted in grandTotal.
	items := []models.InvoiceLineItem{
		{UnitPrice: 20, Quantity: 1, Discount: 5, LineTotal: 15},
	}

	totals := ComputeTotals(items, 0)

	assert.InDelta(t, 15, totals.Subtotal, 1e-9)
	assert.InDelta(t, 5, totals.DiscountTotal, 1e-9)
	assert.InDelta(t, 10, totals.GrandTotal, 1e-9)
}
