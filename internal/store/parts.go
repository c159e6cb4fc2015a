package store

import (
	"context"
	"database/sql"
	"fmt"

	"autoparts-service/internal/models"

	"github.com/google/uuid"
)

// LoadParts retrieves the full part catalog
func (s *Store) LoadParts(ctx context.Context) ([]models.Part, error) {
	parts := []models.Part{}
	err := s.db.SelectContext(ctx, &parts, "SELECT * FROM parts ORDER BY name, id")
	return parts, err
}

// GetPartByID retrieves a part by ID
func (s *Store) GetPartByID(ctx context.Context, id string) (*models.Part, error) {
	var part models.Part
	err := s.db.GetContext(ctx, &part, "SELECT * FROM parts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// CreatePart inserts a new part, assigning its ID
func (s *Store) CreatePart(ctx context.Context, part *models.Part) error {
	part.ID = uuid.New().String()

	query := `
		INSERT INTO parts (id, name, part_number, description, category, unit_price,
			cost_price, stock_quantity, manufacturer, storage_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		part.ID, part.Name, part.PartNumber, part.Description, part.Category,
		part.UnitPrice, part.CostPrice, part.StockQuantity, part.Manufacturer,
		part.StorageLocation)
	return row.Scan(&part.CreatedAt, &part.UpdatedAt)
}

// UpdatePart replaces all mutable fields of a part
func (s *Store) UpdatePart(ctx context.Context, part *models.Part) error {
	query := `
		UPDATE parts
		SET name = $1, part_number = $2, description = $3, category = $4,
			unit_price = $5, cost_price = $6, stock_quantity = $7,
			manufacturer = $8, storage_location = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		part.Name, part.PartNumber, part.Description, part.Category,
		part.UnitPrice, part.CostPrice, part.StockQuantity, part.Manufacturer,
		part.StorageLocation, part.ID)

	err := row.Scan(&part.CreatedAt, &part.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("part %s: %w", part.ID, ErrNotFound)
	}
	return err
}

// DeletePart removes a part from the catalog
func (s *Store) DeletePart(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM parts WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	return nil
}
