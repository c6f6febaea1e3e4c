package handler

import (
	"github.com/gin-gonic/gin"
)

// SystemHandler handles basic service endpoints
type SystemHandler struct {
	BaseHandler
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.Ping)
}

// Ping is a trivial liveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	h.OK(c, gin.H{"message": "pong"})
}
