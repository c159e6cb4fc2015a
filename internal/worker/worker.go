package worker

import (
	"context"
	"log"

	"autoparts-service/internal/broker"
	"autoparts-service/internal/models"
	"autoparts-service/internal/service"
)

// CacheWorker keeps the in-memory index and directory of this replica
// in step with mutations performed elsewhere, by consuming the shop
// event topic and reloading whatever the event invalidated.
type CacheWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewCacheWorker creates a worker wired to the catalog and customer services
func NewCacheWorker(
	consumer *broker.Consumer,
	catalogService *service.CatalogService,
	customerService *service.CustomerService,
) *CacheWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnPartChanged(func(ctx context.Context, event *models.PartChangedEvent) error {
		log.Printf("Part changed (%s), reloading catalog index", event.EventType)
		return catalogService.ReloadIndex(ctx)
	})

	eventHandler.OnCustomerChanged(func(ctx context.Context, event *models.CustomerChangedEvent) error {
		log.Printf("Customer %s changed, reloading directory", event.CustomerID)
		return customerService.ReloadDirectory(ctx)
	})

	// Invoices decrement stock, so the catalog snapshot is stale too.
	eventHandler.OnInvoiceCreated(func(ctx context.Context, event *models.InvoiceCreatedEvent) error {
		log.Printf("Invoice %s created, reloading catalog index", event.InvoiceNumber)
		return catalogService.ReloadIndex(ctx)
	})

	return &CacheWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *CacheWorker) Start(ctx context.Context) error {
	log.Println("Starting cache worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CacheWorker) Stop() error {
	log.Println("Stopping cache worker...")
	return w.consumer.Close()
}
