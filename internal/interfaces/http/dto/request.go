package dto

import "github.com/ordertrack/backend/internal/domain/order"

// CreateOrderRequest is the body for registering or replacing an order
type CreateOrderRequest struct {
	OrderID      string              `json:"orderId" binding:"required"`
	Platform     string              `json:"platform" binding:"required"`
	TrackingInfo *order.TrackingInfo `json:"trackingInfo"`
}

// AskRequest is the body for a free-form assistant question
type AskRequest struct {
	Question string `json:"question" binding:"required"`
	OrderID  string `json:"orderId"`
}
