package customers

import (
	"context"
	"errors"
	"testing"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	customers []models.Customer
	err       error
}

func (s *stubLoader) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customers, nil
}

func sampleCustomers() []models.Customer {
	return []models.Customer{
		{
			ID: "c1", Name: "Jordan Motors", Phone: "555-0101",
			Address: models.Address{Street: "14 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"},
		},
		{
			ID: "c2", Name: "Avery Garage", Phone: "555-0202",
			Address: models.Address{Street: "9 Elm Ave", City: "Portland", State: "OR", ZipCode: "97201", Country: "US"},
		},
	}
}

func TestSearchMatchesAddressFields(t *testing.T) {
	d := NewDirectory(&stubLoader{customers: sampleCustomers()})
	require.NoError(t, d.Reload(context.Background()))

	results := d.Search("springfield")
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)

	results = d.Search("97201")
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].ID)

	results = d.Search("elm")
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].ID)

	// Both customers share the country.
	assert.Len(t, d.Search("us"), 2)
}

func TestSearchByNameAndPhone(t *testing.T) {
	d := NewDirectory(&stubLoader{customers: sampleCustomers()})
	require.NoError(t, d.Reload(context.Background()))

	require.Len(t, d.Search("avery"), 1)
	require.Len(t, d.Search("555-0101"), 1)
	assert.Empty(t, d.Search("nonexistent"))
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	loader := &stubLoader{customers: sampleCustomers()}
	d := NewDirectory(loader)
	require.NoError(t, d.Reload(context.Background()))

	loader.err = errors.New("server unavailable")
	require.Error(t, d.Reload(context.Background()))
	assert.Len(t, d.Snapshot(), 2)
}

func TestLoadedDistinguishesEmptyFromCold(t *testing.T) {
	d := NewDirectory(&stubLoader{customers: []models.Customer{}})
	assert.False(t, d.Loaded())

	require.NoError(t, d.Reload(context.Background()))
	assert.True(t, d.Loaded())
	assert.Empty(t, d.Snapshot())
}

func TestSelectionSurvivesReload(t *testing.T) {
	loader := &stubLoader{customers: sampleCustomers()}
	d := NewDirectory(loader)
	require.NoError(t, d.Reload(context.Background()))

	selected, ok := d.Find("c1")
	require.True(t, ok)

	// Record still present after reload: selection resolvable.
	require.NoError(t, d.Reload(context.Background()))
	_, ok = d.Find(selected.ID)
	assert.True(t, ok)

	// Record deleted externally: selection gone after reload.
	loader.customers = sampleCustomers()[1:]
	require.NoError(t, d.Reload(context.Background()))
	_, ok = d.Find(selected.ID)
	assert.False(t, ok)
}
