package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"autoparts-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishInvoiceCreated publishes InvoiceCreated event
func (ep *EventPublisher) PublishInvoiceCreated(ctx context.Context, event *models.InvoiceCreatedEvent) error {
	key := fmt.Sprintf("invoice-%s", event.InvoiceID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPartChanged publishes PartChanged event after a catalog mutation
func (ep *EventPublisher) PublishPartChanged(ctx context.Context, event *models.PartChangedEvent) error {
	key := fmt.Sprintf("part-%s", event.PartID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishCustomerChanged publishes CustomerChanged event
func (ep *EventPublisher) PublishCustomerChanged(ctx context.Context, event *models.CustomerChangedEvent) error {
	key := fmt.Sprintf("customer-%s", event.CustomerID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered handlers
type EventHandler struct {
	onPartChanged     func(context.Context, *models.PartChangedEvent) error
	onCustomerChanged func(context.Context, *models.CustomerChangedEvent) error
	onInvoiceCreated  func(context.Context, *models.InvoiceCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnPartChanged registers a handler for catalog mutation events
func (eh *EventHandler) OnPartChanged(handler func(context.Context, *models.PartChangedEvent) error) {
	eh.onPartChanged = handler
}

// OnCustomerChanged registers a handler for customer mutation events
func (eh *EventHandler) OnCustomerChanged(handler func(context.Context, *models.CustomerChangedEvent) error) {
	eh.onCustomerChanged = handler
}

// OnInvoiceCreated registers a handler for invoice creation events
func (eh *EventHandler) OnInvoiceCreated(handler func(context.Context, *models.InvoiceCreatedEvent) error) {
	eh.onInvoiceCreated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypePartCreated, models.EventTypePartUpdated, models.EventTypePartDeleted:
		if eh.onPartChanged != nil {
			var event models.PartChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PartChanged event: %w", err)
			}
			return eh.onPartChanged(ctx, &event)
		}

	case models.EventTypeCustomerChanged:
		if eh.onCustomerChanged != nil {
			var event models.CustomerChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CustomerChanged event: %w", err)
			}
			return eh.onCustomerChanged(ctx, &event)
		}

	case models.EventTypeInvoiceCreated:
		if eh.onInvoiceCreated != nil {
			var event models.InvoiceCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal InvoiceCreated event: %w", err)
			}
			return eh.onInvoiceCreated(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
