// Package tracking contains the application services composing the order
// store, the platform tracking provider and the assistant.
package tracking

import (
	"context"

	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/domain/integration"
	"github.com/ordertrack/backend/internal/domain/order"
)

// OrderService handles order registration and enriched retrieval
type OrderService struct {
	repo      order.Repository
	provider  integration.TrackingProvider
	assistant integration.Assistant
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(repo order.Repository, provider integration.TrackingProvider, assistant integration.Assistant, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:      repo,
		provider:  provider,
		assistant: assistant,
		logger:    logger,
	}
}

// UpsertOrderRequest carries the caller-supplied order fields
type UpsertOrderRequest struct {
	OrderID      string
	Platform     string
	TrackingInfo *order.TrackingInfo
}

// Upsert registers an order, fully replacing any prior record for the same
// identifier.
func (s *OrderService) Upsert(ctx context.Context, req UpsertOrderRequest) (order.Order, error) {
	o, err := order.New(req.OrderID, req.Platform, req.TrackingInfo)
	if err != nil {
		return order.Order{}, err
	}
	return s.repo.Upsert(ctx, o)
}

// Get retrieves an order and enriches it. For platforms with a tracking
// adapter the snapshot is refreshed and written back; a refresh failure is
// logged and the stored (possibly stale or absent) snapshot is served
// instead. When a status is present, an analysis is attached transiently;
// it is recomputed on every fetch and never persisted.
func (s *OrderService) Get(ctx context.Context, orderID string) (order.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	platform := integration.PlatformCode(o.Platform)
	if s.provider != nil && s.provider.Supports(platform) {
		info, err := s.provider.Track(ctx, platform, o.OrderID)
		if err != nil {
			s.logger.Warn("tracking refresh failed, serving stored snapshot",
				zap.String("order_id", o.OrderID),
				zap.String("platform", o.Platform),
				zap.Error(err),
			)
		} else {
			o.TrackingInfo = info
			if _, err := s.repo.Upsert(ctx, o); err != nil {
				s.logger.Warn("failed to persist refreshed tracking info",
					zap.String("order_id", o.OrderID),
					zap.Error(err),
				)
			}
		}
	}

	if s.assistant != nil && o.TrackingInfo != nil && o.TrackingInfo.Status != "" {
		o.AIAnalysis = s.assistant.AnalyzeStatus(ctx, o.TrackingInfo.Status)
	}

	return o, nil
}
