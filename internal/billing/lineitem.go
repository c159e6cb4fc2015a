package billing

import (
	"autoparts-service/internal/models"
)

// BuildLine turns a (part, quantity, discount) selection into a priced
// invoice line. The part is resolved against the given catalog snapshot
// and its name, number and unit price are copied at this instant, so a
// later catalog edit never retroactively changes an already-built line.
//
// Discount is an absolute currency amount, not a percentage. A discount
// larger than quantity*price produces a negative line total; that is
// accepted as-is, the total is never clamped.
func BuildLine(catalog []models.Part, partID string, quantity int, discount float64) (models.InvoiceLineItem, error) {
	if quantity <= 0 {
		return models.InvoiceLineItem{}, ErrInvalidQuantity
	}
	if discount < 0 {
		return models.InvoiceLineItem{}, ErrInvalidDiscount
	}

	var part *models.Part
	for i := range catalog {
		if catalog[i].ID == partID {
			part = &catalog[i]
			break
		}
	}
	if part == nil {
		return models.InvoiceLineItem{}, ErrInvalidSelection
	}

	return models.InvoiceLineItem{
		PartID:     part.ID,
		PartName:   part.Name,
		PartNumber: part.PartNumber,
		Quantity:   quantity,
		UnitPrice:  part.UnitPrice,
		Discount:   discount,
		LineTotal:  part.UnitPrice*float64(quantity) - discount,
	}, nil
}

// RemoveLine returns a copy of items with the line at index removed.
// The input slice is never mutated; relative order of the remaining
// lines is preserved.
func RemoveLine(items []models.InvoiceLineItem, index int) ([]models.InvoiceLineItem, error) {
	if index < 0 || index >= len(items) {
		return nil, ErrIndexOutOfRange
	}

	out := make([]models.InvoiceLineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}
