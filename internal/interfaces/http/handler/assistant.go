package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/application/tracking"
	"github.com/ordertrack/backend/internal/interfaces/http/dto"
	"github.com/ordertrack/backend/internal/interfaces/http/middleware"
)

// AssistantHandler handles the conversational assistant endpoint
type AssistantHandler struct {
	BaseHandler
	service *tracking.AssistantService
	logger  *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(service *tracking.AssistantService, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers assistant routes on the API group
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask-ai", h.Ask)
}

// Ask answers a free-form question, optionally grounded on a stored order
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsValidationError(err) {
			h.BadRequest(c, "Question is required")
		} else {
			h.BadRequest(c, "Invalid request body")
		}
		return
	}

	answer, err := h.service.Ask(c.Request.Context(), req.Question, req.OrderID)
	if err != nil {
		h.logger.Error("assistant request failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		h.InternalError(c, "Error processing your question")
		return
	}

	h.OK(c, dto.AnswerResponse{Answer: answer})
}
