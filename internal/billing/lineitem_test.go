package billing

import (
	"testing"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Part {
	return []models.Part{
		{ID: "p1", Name: "Brake Pad", PartNumber: "BP-2041", Category: "Brakes", UnitPrice: 49.99},
		{ID: "p2", Name: "Oil Filter", PartNumber: "OF-113", Category: "Filters", UnitPrice: 12.99},
	}
}

func TestBuildLineCopiesPartSnapshot(t *testing.T) {
	catalog := testCatalog()

	line, err := BuildLine(catalog, "p1", 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "p1", line.PartID)
	assert.Equal(t, "Brake Pad", line.PartName)
	assert.Equal(t, "BP-2041", line.PartNumber)
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 49.99, line.UnitPrice, 1e-9)
	assert.InDelta(t, 99.98, line.LineTotal, 1e-9)

	// A later catalog price change must not affect the built line.
	catalog[0].UnitPrice = 99.99
	assert.InDelta(t, 49.99, line.UnitPrice, 1e-9)
}

func TestBuildLineUnknownPart(t *testing.T) {
	_, err := BuildLine(testCatalog(), "nope", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestBuildLineQuantityValidation(t *testing.T) {
	catalog := testCatalog()

	_, err := BuildLine(catalog, "p1", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BuildLine(catalog, "p1", -1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BuildLine(catalog, "p1", 1, 0)
	assert.NoError(t, err)
}

func TestBuildLineNegativeDiscountRejected(t *testing.T) {
	_, err := BuildLine(testCatalog(), "p1", 1, -0.01)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestBuildLineNegativeTotalAccepted(t *testing.T) {
	// Discount exceeding quantity*price is accepted unclamped.
	line, err := BuildLine(testCatalog(), "p2", 1, 20)
	require.NoError(t, err)
	assert.InDelta(t, -7.01, line.LineTotal, 1e-9)
}

func TestRemoveLinePreservesOrder(t *testing.T) {
	items := []models.InvoiceLineItem{
		{PartID: "a"}, {PartID: "b"}, {PartID: "c"},
	}

	out, err := RemoveLine(items, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].PartID)
	assert.Equal(t, "c", out[1].PartID)

	// Input is untouched.
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].PartID)
}

func TestRemoveLineIndexOutOfRange(t *testing.T) {
	items := []models.InvoiceLineItem{{PartID: "a"}}

	_, err := RemoveLine(items, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = RemoveLine(items, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = RemoveLine(nil, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
