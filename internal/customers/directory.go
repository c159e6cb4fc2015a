package customers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"autoparts-service/internal/models"
)

// Loader fetches the full customer list from the backing source.
type Loader interface {
	LoadCustomers(ctx context.Context) ([]models.Customer, error)
}

// Directory is an in-memory read-through cache of the customer list
// with substring search across name, phone and every address field.
// Like the catalog index it keeps the last known good snapshot when a
// reload fails.
type Directory struct {
	loader Loader

	mu        sync.RWMutex
	customers []models.Customer
	loaded    bool
}

// NewDirectory creates an empty directory over the given loader
func NewDirectory(loader Loader) *Directory {
	return &Directory{loader: loader}
}

// Reload fetches the full customer list and replaces the cached
// snapshot. On failure the previous snapshot stays untouched.
func (d *Directory) Reload(ctx context.Context) error {
	customers, err := d.loader.LoadCustomers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}

	d.mu.Lock()
	d.customers = customers
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// Loaded reports whether the directory holds a snapshot. An empty
// customer list still counts as loaded.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Snapshot returns the current cached customers
func (d *Directory) Snapshot() []models.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Customer, len(d.customers))
	copy(out, d.customers)
	return out
}

// Find resolves a customer by ID against the current snapshot. A
// caller holding a selection checks here after a reload: the selection
// survives unless that specific record is gone.
func (d *Directory) Find(id string) (*models.Customer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.customers {
		if d.customers[i].ID == id {
			customer := d.customers[i]
			return &customer, true
		}
	}
	return nil, false
}

// Search returns all customers where query is a case-insensitive
// substring of the name, phone or any address field. Empty query
// returns the full set.
func (d *Directory) Search(query string) []models.Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return d.Snapshot()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Customer, 0)
	for _, customer := range d.customers {
		if matchesCustomer(customer, query) {
			out = append(out, customer)
		}
	}
	return out
}

func matchesCustomer(c models.Customer, query string) bool {
	fields := []string{
		c.Name, c.Phone,
		c.Address.Street, c.Address.City, c.Address.State,
		c.Address.ZipCode, c.Address.Country,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
