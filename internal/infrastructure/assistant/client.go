// Package assistant wraps the external text-completion service used to
// explain delivery statuses and answer customer questions.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the completion
// endpoint (1MB)
const maxResponseSize = 1 << 20

// FallbackAnalysis is returned whenever status analysis fails. Analysis is
// best-effort enrichment; the fetch that requested it still succeeds.
const FallbackAnalysis = "Análise não disponível no momento"

// NoOrderContext is embedded in the Q&A prompt when the order is unknown.
const NoOrderContext = "Nenhuma informação adicional sobre o pedido"

// Config holds settings for the completion endpoint
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Validate applies defaults for unset fields. An empty API key is allowed so
// the service can start without a credential; calls will then fail upstream
// and be handled by each call site's failure policy.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-3.5-turbo"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	return nil
}

// Client calls the completion endpoint. It implements integration.Assistant
// with two deliberately asymmetric operations: AnalyzeStatus swallows
// upstream failures behind a fallback string, AnswerQuestion propagates them.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption is a functional option for Client
type ClientOption func(*Client)

// WithLogger sets the logger used for swallowed analysis failures
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client (useful in tests)
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new assistant client with the given configuration
func NewClient(config *Config, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AnalyzeStatus asks the assistant to explain a delivery status: what it
// means, potential problems, suggestions for the customer, and a lifecycle
// classification. On any failure it logs and returns FallbackAnalysis.
func (c *Client) AnalyzeStatus(ctx context.Context, statusText string) string {
	prompt := fmt.Sprintf(`Analise o seguinte status de entrega e forneça:
1. Uma explicação simples do que significa
2. Se há algum problema potencial
3. Sugestões para o cliente
4. Classifique em: recebido, processamento, transporte, entrega, entregue

Status: %q`, statusText)

	answer, err := c.complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("status analysis unavailable, using fallback",
			zap.String("status", statusText),
			zap.Error(err),
		)
		return FallbackAnalysis
	}
	return answer
}

// AnswerQuestion asks the assistant to answer a free-form question about an
// order. There is no fallback content for this path; failures propagate.
func (c *Client) AnswerQuestion(ctx context.Context, question, orderContext string) (string, error) {
	if orderContext == "" {
		orderContext = NoOrderContext
	}

	prompt := fmt.Sprintf(`Você é um assistente de rastreamento de pedidos chamado Riquelme.
Responda à seguinte pergunta sobre um pedido de e-commerce de forma amigável e útil.

Informações do pedido (se disponível): %s

Pergunta: %q

Responda em português brasileiro de forma natural.`, orderContext, question)

	return c.complete(ctx, prompt)
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete performs a single chat-completion request with the configured
// model and temperature and returns the first choice's content.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", integration.ErrAssistantUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("assistant: failed to read response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("%w: HTTP %d", integration.ErrAssistantRequestFailed, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", integration.ErrAssistantInvalidResponse, err)
	}

	if resp.StatusCode >= 400 {
		if parsed.Error != nil {
			return "", fmt.Errorf("%w: %s - %s", integration.ErrAssistantRequestFailed, parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", integration.ErrAssistantRequestFailed, resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", integration.ErrAssistantInvalidResponse)
	}
	return parsed.Choices[0].Message.Content, nil
}

// Ensure Client implements Assistant interface
var _ integration.Assistant = (*Client)(nil)
