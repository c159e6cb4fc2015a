package billing

import (
	"autoparts-service/internal/models"
)

// ComputeTotals aggregates a list of line items plus a tax rate into the
// invoice totals. The function is pure and total: it never fails, holds
// no state across calls, and computes a tax rate outside [0,100]
// literally (range validation is the caller's job).
//
// DiscountTotal reports the sum of per-line discounts separately even
// though each discount is already baked into its lineTotal; callers must
// not subtract it a second time from the subtotal.
func ComputeTotals(items []models.InvoiceLineItem, taxRatePercent float64) models.Totals {
	var subtotal, discountTotal float64
	for _, item := range items {
		subtotal += item.LineTotal
		discountTotal += item.Discount
	}

	taxAmount := subtotal * taxRatePercent / 100

	return models.Totals{
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		DiscountTotal: discountTotal,
		GrandTotal:    subtotal + taxAmount - discountTotal,
	}
}
