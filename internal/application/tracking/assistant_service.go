package tracking

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/domain/integration"
	"github.com/ordertrack/backend/internal/domain/order"
)

// AssistantService answers free-form customer questions about orders
type AssistantService struct {
	repo      order.Repository
	assistant integration.Assistant
	logger    *zap.Logger
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(repo order.Repository, assistant integration.Assistant, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		repo:      repo,
		assistant: assistant,
		logger:    logger,
	}
}

// Ask answers a question, embedding the serialized order record when the
// identifier is known. An absent or unknown identifier is not an error; the
// assistant answers with a no-additional-info placeholder instead. Assistant
// failures propagate: this path has no fallback content.
func (s *AssistantService) Ask(ctx context.Context, question, orderID string) (string, error) {
	orderContext := ""
	if orderID != "" {
		o, err := s.repo.Get(ctx, orderID)
		switch {
		case err == nil:
			if payload, merr := json.Marshal(o); merr == nil {
				orderContext = string(payload)
			}
		case errors.Is(err, order.ErrNotFound):
			// Unknown order degrades to the placeholder context.
		default:
			s.logger.Warn("order lookup failed, answering without context",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
	}

	return s.assistant.AnswerQuestion(ctx, question, orderContext)
}
