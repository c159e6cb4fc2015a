package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"autoparts-service/internal/models"

	"github.com/google/uuid"
)

// invoiceRow flattens the embedded customer snapshot for sqlx scanning
type invoiceRow struct {
	ID            string    `db:"id"`
	InvoiceNumber string    `db:"invoice_number"`
	CustomerID    string    `db:"customer_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	Street        string    `db:"street"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	ZipCode       string    `db:"zip_code"`
	Country       string    `db:"country"`
	Subtotal      float64   `db:"subtotal"`
	TaxRate       float64   `db:"tax_rate"`
	TaxAmount     float64   `db:"tax_amount"`
	DiscountTotal float64   `db:"discount_total"`
	GrandTotal    float64   `db:"grand_total"`
	PaymentMethod string    `db:"payment_method"`
	Notes         string    `db:"notes"`
	CreatedAt     time.Time `db:"created_at"`
	DueDate       time.Time `db:"due_date"`
}

func (r invoiceRow) toModel(items []models.InvoiceLineItem) models.Invoice {
	return models.Invoice{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		Customer: models.Customer{
			ID:    r.CustomerID,
			Name:  r.CustomerName,
			Phone: r.CustomerPhone,
			Address: models.Address{
				Street:  r.Street,
				City:    r.City,
				State:   r.State,
				ZipCode: r.ZipCode,
				Country: r.Country,
			},
		},
		Items:         items,
		Subtotal:      r.Subtotal,
		TaxRate:       r.TaxRate,
		TaxAmount:     r.TaxAmount,
		DiscountTotal: r.DiscountTotal,
		GrandTotal:    r.GrandTotal,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		DueDate:       r.DueDate,
	}
}

// CreateInvoice persists an assembled invoice and its line items in one
// transaction and assigns the invoice ID. Stock for each sold part is
// decremented within the same transaction; stock floors at zero rather
// than blocking the sale.
func (s *Store) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	invoice.ID = uuid.New().String()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (id, invoice_number, customer_id, customer_name,
			customer_phone, street, city, state, zip_code, country,
			subtotal, tax_rate, tax_amount, discount_total, grand_total,
			payment_method, notes, created_at, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		invoice.ID, invoice.InvoiceNumber,
		invoice.Customer.ID, invoice.Customer.Name, invoice.Customer.Phone,
		invoice.Customer.Address.Street, invoice.Customer.Address.City,
		invoice.Customer.Address.State, invoice.Customer.Address.ZipCode,
		invoice.Customer.Address.Country,
		invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount,
		invoice.DiscountTotal, invoice.GrandTotal,
		invoice.PaymentMethod, invoice.Notes, invoice.CreatedAt, invoice.DueDate)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i, item := range invoice.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_id, position, part_id, part_name,
				part_number, quantity, unit_price, discount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			invoice.ID, i, item.PartID, item.PartName, item.PartNumber,
			item.Quantity, item.UnitPrice, item.Discount, item.LineTotal)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE parts
			SET stock_quantity = GREATEST(stock_quantity - $1, 0), updated_at = NOW()
			WHERE id = $2`,
			item.Quantity, item.PartID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
	}

	return tx.Commit()
}

// GetInvoiceByID retrieves an invoice with its line items in insertion order
func (s *Store) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	var row invoiceRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM invoices WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	items := []models.InvoiceLineItem{}
	err = s.db.SelectContext(ctx, &items, `
		SELECT part_id, part_name, part_number, quantity, unit_price, discount, line_total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, err
	}

	invoice := row.toModel(items)
	return &invoice, nil
}

// ListInvoices retrieves invoices newest first, without line items
func (s *Store) ListInvoices(ctx context.Context, limit int) ([]models.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}

	rows := []invoiceRow{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoices ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}

	invoices := make([]models.Invoice, len(rows))
	for i, row := range rows {
		invoices[i] = row.toModel(nil)
	}
	return invoices, nil
}
