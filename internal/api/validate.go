package api

import (
	"errors"
	"strings"

	"autoparts-service/internal/models"
)

// validatePart checks the server-side entity rules for parts
func validatePart(part *models.Part) error {
	part.Name = strings.TrimSpace(part.Name)
	part.PartNumber = strings.TrimSpace(part.PartNumber)
	part.Category = strings.TrimSpace(part.Category)
	part.Manufacturer = strings.TrimSpace(part.Manufacturer)

	switch {
	case part.Name == "":
		return errors.New("name is required")
	case part.PartNumber == "":
		return errors.New("partNumber is required")
	case part.Category == "":
		return errors.New("category is required")
	case part.Manufacturer == "":
		return errors.New("manufacturer is required")
	case part.UnitPrice < 0:
		return errors.New("unitPrice cannot be negative")
	case part.CostPrice < 0:
		return errors.New("costPrice cannot be negative")
	case part.StockQuantity < 0:
		return errors.New("stockQuantity cannot be negative")
	}
	return nil
}

// validateCustomer checks the server-side entity rules for customers.
// All address subfields are required for persistence.
func validateCustomer(customer *models.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)

	switch {
	case customer.Name == "":
		return errors.New("name is required")
	case customer.Phone == "":
		return errors.New("phone is required")
	case strings.TrimSpace(customer.Address.Street) == "":
		return errors.New("address.street is required")
	case strings.TrimSpace(customer.Address.City) == "":
		return errors.New("address.city is required")
	case strings.TrimSpace(customer.Address.State) == "":
		return errors.New("address.state is required")
	case strings.TrimSpace(customer.Address.ZipCode) == "":
		return errors.New("address.zipCode is required")
	case strings.TrimSpace(customer.Address.Country) == "":
		return errors.New("address.country is required")
	}
	return nil
}
