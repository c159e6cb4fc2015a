package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"autoparts-service/internal/models"

	"github.com/google/uuid"
)

// customerRow flattens the nested address for sqlx scanning
type customerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Street    string    `db:"street"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	ZipCode   string    `db:"zip_code"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r customerRow) toModel() models.Customer {
	return models.Customer{
		ID:    r.ID,
		Name:  r.Name,
		Phone: r.Phone,
		Address: models.Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
			Country: r.Country,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// LoadCustomers retrieves all customers
func (s *Store) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	rows := []customerRow{}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM customers ORDER BY name, id")
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, len(rows))
	for i, row := range rows {
		customers[i] = row.toModel()
	}
	return customers, nil
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var row customerRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	customer := row.toModel()
	return &customer, nil
}

// CreateCustomer inserts a new customer, assigning its ID
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.ID = uuid.New().String()

	query := `
		INSERT INTO customers (id, name, phone, street, city, state, zip_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		customer.ID, customer.Name, customer.Phone,
		customer.Address.Street, customer.Address.City, customer.Address.State,
		customer.Address.ZipCode, customer.Address.Country)
	return row.Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

// UpdateCustomer replaces all mutable fields of a customer
func (s *Store) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, street = $3, city = $4, state = $5,
			zip_code = $6, country = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		customer.Name, customer.Phone,
		customer.Address.Street, customer.Address.City, customer.Address.State,
		customer.Address.ZipCode, customer.Address.Country, customer.ID)

	err := row.Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("customer %s: %w", customer.ID, ErrNotFound)
	}
	return err
}

// DeleteCustomer removes a customer. Existing invoices keep their
// embedded snapshot and are unaffected.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}
