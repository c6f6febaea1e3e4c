package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/application/tracking"
	"github.com/ordertrack/backend/internal/domain/order"
	"github.com/ordertrack/backend/internal/interfaces/http/dto"
	"github.com/ordertrack/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order registration and retrieval endpoints
type OrderHandler struct {
	BaseHandler
	service *tracking.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *tracking.OrderService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("/:orderId", h.Get)
	}
}

// Create registers an order or replaces an existing one with the same id
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsValidationError(err) {
			h.BadRequest(c, "orderId and platform are required")
		} else {
			h.BadRequest(c, "Invalid request body")
		}
		return
	}

	o, err := h.service.Upsert(c.Request.Context(), tracking.UpsertOrderRequest{
		OrderID:      req.OrderID,
		Platform:     req.Platform,
		TrackingInfo: req.TrackingInfo,
	})
	if err != nil {
		h.logger.Warn("order upsert rejected",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, o)
}

// Get returns an order with a freshly simulated tracking snapshot and,
// when a status is available, an assistant analysis of it
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("orderId")

	o, err := h.service.Get(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			h.NotFound(c, "Order not found")
			return
		}
		h.logger.Error("order retrieval failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		h.HandleDomainError(c, err)
		return
	}

	h.OK(c, o)
}
