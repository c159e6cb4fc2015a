package service

import (
	"context"
	"fmt"
	"time"

	"autoparts-service/internal/broker"
	"autoparts-service/internal/customers"
	"autoparts-service/internal/models"
	"autoparts-service/internal/redisclient"
	"autoparts-service/internal/store"
	"autoparts-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService manages the customer directory with the same cache
// lifecycle as the catalog.
type CustomerService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	directory      *customers.Directory
	logger         *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *CustomerService {
	return &CustomerService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		directory:      customers.NewDirectory(store),
		logger:         util.GetLogger(),
	}
}

// Directory exposes the customer directory
func (s *CustomerService) Directory() *customers.Directory {
	return s.directory
}

// ReloadDirectory refreshes the in-memory directory from the store
func (s *CustomerService) ReloadDirectory(ctx context.Context) error {
	if err := s.directory.Reload(ctx); err != nil {
		util.CustomerReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	util.CustomerReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

// ListCustomers returns all customers, from the redis cache when warm
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.ListCustomers")
	defer span.End()

	if cached, found, err := s.redis.GetCustomers(ctx); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Customer cache read failed, falling back to store", zap.Error(err))
	}

	list, err := s.store.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	if err := s.redis.SetCustomers(ctx, list); err != nil {
		s.logger.Warn("Failed to cache customers", zap.Error(err))
	}
	return list, nil
}

// SearchCustomers searches the in-memory directory
func (s *CustomerService) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	if !s.directory.Loaded() {
		if err := s.ReloadDirectory(ctx); err != nil {
			return nil, err
		}
	}
	return s.directory.Search(query), nil
}

// GetCustomer retrieves one customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.GetCustomerByID(ctx, id)
}

// CreateCustomer persists a new customer and invalidates cached copies
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	ctx, span := util.StartSpan(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	util.CustomerMutationsTotal.WithLabelValues("create").Inc()
	s.afterMutation(ctx, customer.ID)
	return nil
}

// UpdateCustomer persists changes to a customer. Invoices created
// earlier keep their embedded snapshot.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	ctx, span := util.StartSpan(ctx, "CustomerService.UpdateCustomer")
	defer span.End()

	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	util.CustomerMutationsTotal.WithLabelValues("update").Inc()
	s.afterMutation(ctx, customer.ID)
	return nil
}

// DeleteCustomer removes a customer and invalidates cached copies
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "CustomerService.DeleteCustomer")
	defer span.End()

	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	util.CustomerMutationsTotal.WithLabelValues("delete").Inc()
	s.afterMutation(ctx, id)
	return nil
}

func (s *CustomerService) afterMutation(ctx context.Context, customerID string) {
	if err := s.redis.InvalidateCustomers(ctx); err != nil {
		s.logger.Warn("Failed to invalidate customer cache", zap.Error(err))
	}

	if err := s.ReloadDirectory(ctx); err != nil {
		s.logger.Warn("Failed to reload customer directory", zap.Error(err))
	}

	event := &models.CustomerChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCustomerChanged,
			Timestamp: time.Now(),
		},
		CustomerID: customerID,
	}
	if err := s.eventPublisher.PublishCustomerChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish CustomerChanged event", zap.Error(err))
	}
}
