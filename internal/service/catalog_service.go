package service

import (
	"context"
	"fmt"
	"time"

	"autoparts-service/internal/broker"
	"autoparts-service/internal/catalog"
	"autoparts-service/internal/models"
	"autoparts-service/internal/redisclient"
	"autoparts-service/internal/store"
	"autoparts-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the part catalog: CRUD through the store, a
// redis snapshot cache invalidated after every mutation, and the
// in-memory search index.
type CatalogService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	index          *catalog.Index
	logger         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *CatalogService {
	return &CatalogService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		index:          catalog.NewIndex(store),
		logger:         util.GetLogger(),
	}
}

// Index exposes the search index for collaborators that resolve parts
func (s *CatalogService) Index() *catalog.Index {
	return s.index
}

// ReloadIndex refreshes the in-memory index from the store. On failure
// the previous snapshot stays available.
func (s *CatalogService) ReloadIndex(ctx context.Context) error {
	if err := s.index.Reload(ctx); err != nil {
		util.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	util.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

// ListParts returns the full catalog, from the redis cache when warm
func (s *CatalogService) ListParts(ctx context.Context) ([]models.Part, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListParts")
	defer span.End()

	if cached, found, err := s.redis.GetCatalog(ctx); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Catalog cache read failed, falling back to store", zap.Error(err))
	}

	parts, err := s.store.LoadParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := s.redis.SetCatalog(ctx, parts); err != nil {
		s.logger.Warn("Failed to cache catalog", zap.Error(err))
	}
	return parts, nil
}

// SearchParts searches the in-memory index, lazily loading it when the
// service has not served a catalog request yet
func (s *CatalogService) SearchParts(ctx context.Context, query string) ([]models.Part, error) {
	if !s.index.Loaded() {
		if err := s.ReloadIndex(ctx); err != nil {
			return nil, err
		}
	}
	return s.index.Search(query), nil
}

// CreatePart persists a new part and invalidates cached copies
func (s *CatalogService) CreatePart(ctx context.Context, part *models.Part) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreatePart")
	defer span.End()

	if err := s.store.CreatePart(ctx, part); err != nil {
		return fmt.Errorf("failed to create part: %w", err)
	}

	util.PartMutationsTotal.WithLabelValues("create").Inc()
	s.afterMutation(ctx, part.ID, part.PartNumber, models.EventTypePartCreated)
	return nil
}

// UpdatePart persists changes to a part and invalidates cached copies.
// Already-created invoices keep their line item snapshots.
func (s *CatalogService) UpdatePart(ctx context.Context, part *models.Part) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdatePart")
	defer span.End()

	if err := s.store.UpdatePart(ctx, part); err != nil {
		return fmt.Errorf("failed to update part: %w", err)
	}

	util.PartMutationsTotal.WithLabelValues("update").Inc()
	s.afterMutation(ctx, part.ID, part.PartNumber, models.EventTypePartUpdated)
	return nil
}

// DeletePart removes a part and invalidates cached copies
func (s *CatalogService) DeletePart(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeletePart")
	defer span.End()

	if err := s.store.DeletePart(ctx, id); err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}

	util.PartMutationsTotal.WithLabelValues("delete").Inc()
	s.afterMutation(ctx, id, "", models.EventTypePartDeleted)
	return nil
}

// InvalidateCache drops the redis snapshot and refreshes the local
// index, e.g. after an invoice decremented stock. Cache upkeep never
// fails the operation that triggered it.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if err := s.redis.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}

	if err := s.ReloadIndex(ctx); err != nil {
		s.logger.Warn("Failed to reload catalog index", zap.Error(err))
	}
}

// afterMutation invalidates cached copies and tells other replicas
func (s *CatalogService) afterMutation(ctx context.Context, partID, partNumber, eventType string) {
	s.InvalidateCache(ctx)

	event := &models.PartChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		PartID:     partID,
		PartNumber: partNumber,
	}
	if err := s.eventPublisher.PublishPartChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish PartChanged event", zap.Error(err))
	}
}
