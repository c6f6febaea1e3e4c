package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordertrack/backend/internal/domain/order"
	"github.com/ordertrack/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// OK sends a 200 response with the given body
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given body
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// BadRequest sends a 400 error response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// NotFound sends a 404 error response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))
}

// InternalError sends a 500 error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(message))
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderIDRequired), errors.Is(err, order.ErrPlatformRequired):
		h.BadRequest(c, "orderId and platform are required")
	case errors.Is(err, order.ErrNotFound):
		h.NotFound(c, "Order not found")
	default:
		h.InternalError(c, "Internal server error")
	}
}
