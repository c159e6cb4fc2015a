package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoparts-service/internal/billing"
	"autoparts-service/internal/broker"
	"autoparts-service/internal/models"
	"autoparts-service/internal/store"
	"autoparts-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService turns invoice requests into persisted invoices via the
// pure billing core. Validation failures block persistence entirely; a
// partial invoice is never written.
type InvoiceService struct {
	store          *store.Store
	catalogService *CatalogService
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	store *store.Store,
	catalogService *CatalogService,
	eventPublisher *broker.EventPublisher,
) *InvoiceService {
	return &InvoiceService{
		store:          store,
		catalogService: catalogService,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID    string            `json:"customerId" binding:"required"`
	Items         []LineItemRequest `json:"items" binding:"required"`
	TaxRate       float64           `json:"taxRate"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Notes         string            `json:"notes"`
	InvoiceNumber string            `json:"invoiceNumber"`
	DueDate       time.Time         `json:"dueDate"`
}

// LineItemRequest represents one requested invoice line
type LineItemRequest struct {
	PartID   string  `json:"partId" binding:"required"`
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount"`
}

// CreateInvoice builds line items against the current catalog snapshot,
// assembles the invoice and persists it
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error) {
	ctx, span := util.StartSpan(ctx, "InvoiceService.CreateInvoice")
	defer span.End()

	if len(req.Items) == 0 {
		util.InvoicesFailedTotal.WithLabelValues("empty_invoice").Inc()
		return nil, billing.ErrEmptyInvoice
	}

	customer, err := s.store.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.InvoicesFailedTotal.WithLabelValues("missing_customer").Inc()
		} else {
			util.InvoicesFailedTotal.WithLabelValues("customer_lookup").Inc()
		}
		return nil, customerLookupError(req.CustomerID, err)
	}

	if !s.catalogService.Index().Loaded() {
		if err := s.catalogService.ReloadIndex(ctx); err != nil {
			util.InvoicesFailedTotal.WithLabelValues("catalog_unavailable").Inc()
			return nil, err
		}
	}
	snapshot := s.catalogService.Index().Snapshot()

	items := make([]models.InvoiceLineItem, 0, len(req.Items))
	for _, lineReq := range req.Items {
		line, err := billing.BuildLine(snapshot, lineReq.PartID, lineReq.Quantity, lineReq.Discount)
		if err != nil {
			util.InvoicesFailedTotal.WithLabelValues("invalid_line").Inc()
			return nil, fmt.Errorf("line for part %s: %w", lineReq.PartID, err)
		}
		items = append(items, line)
	}

	invoice, err := billing.Assemble(customer, items, req.TaxRate,
		req.PaymentMethod, req.Notes, req.InvoiceNumber, req.DueDate)
	if err != nil {
		util.InvoicesFailedTotal.WithLabelValues("assembly").Inc()
		return nil, err
	}

	start := time.Now()
	if err := s.store.CreateInvoice(ctx, invoice); err != nil {
		util.InvoicesFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}
	util.InvoicePersistLatency.Observe(time.Since(start).Seconds())
	util.InvoicesCreatedTotal.Inc()

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("grand_total", invoice.GrandTotal))

	// Stock changed, so cached catalog copies are stale now.
	s.catalogService.InvalidateCache(ctx)

	eventItems := make([]models.LineItemData, len(invoice.Items))
	for i, item := range invoice.Items {
		eventItems[i] = models.LineItemData{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}

	event := &models.InvoiceCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeInvoiceCreated,
			Timestamp: time.Now(),
		},
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerID:    invoice.Customer.ID,
		GrandTotal:    invoice.GrandTotal,
		Items:         eventItems,
	}
	if err := s.eventPublisher.PublishInvoiceCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish InvoiceCreated event", zap.Error(err))
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return s.store.GetInvoiceByID(ctx, id)
}

// ListInvoices retrieves recent invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, limit int) ([]models.Invoice, error) {
	return s.store.ListInvoices(ctx, limit)
}

// customerLookupError classifies a failed customer lookup: a missing
// record means the invoice has no customer, anything else is a store
// failure that must reach the caller with its message intact.
func customerLookupError(customerID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return billing.ErrMissingCustomer
	}
	return fmt.Errorf("failed to load customer %s: %w", customerID, err)
}

// IsValidationError reports whether err is a recoverable input error
// rather than a collaborator failure
func IsValidationError(err error) bool {
	for _, kind := range []error{
		billing.ErrInvalidSelection,
		billing.ErrInvalidQuantity,
		billing.ErrInvalidDiscount,
		billing.ErrIndexOutOfRange,
		billing.ErrMissingCustomer,
		billing.ErrEmptyInvoice,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
