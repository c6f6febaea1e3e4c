package integration

import (
	"context"
	"errors"
)

var (
	// ErrAssistantUnavailable indicates the assistant service could not be reached
	ErrAssistantUnavailable = errors.New("integration: assistant temporarily unavailable")
	// ErrAssistantRequestFailed indicates the assistant service rejected the request
	ErrAssistantRequestFailed = errors.New("integration: assistant request failed")
	// ErrAssistantInvalidResponse indicates the assistant returned an unparseable response
	ErrAssistantInvalidResponse = errors.New("integration: invalid assistant response")
)

// Assistant wraps the external text-completion service. The two operations
// carry deliberately different failure policies: status analysis is
// best-effort enrichment and never fails, while question answering has no
// fallback content and must surface errors.
type Assistant interface {
	// AnalyzeStatus explains a delivery status in plain language. On any
	// upstream failure it returns a fixed fallback string; it never errors.
	AnalyzeStatus(ctx context.Context, statusText string) string
	// AnswerQuestion answers a free-form question about an order, given the
	// serialized order record (or a placeholder when unknown). Upstream
	// failures propagate to the caller.
	AnswerQuestion(ctx context.Context, question, orderContext string) (string, error)
}
