package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordertrack/backend/internal/domain/integration"
)

// completionStub records the last request and replies with a canned answer
// or a failure.
type completionStub struct {
	answer     string
	statusCode int
	lastBody   chatCompletionRequest
}

func (s *completionStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&s.lastBody))

		if s.statusCode != 0 {
			w.WriteHeader(s.statusCode)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": s.answer}},
			},
		})
	}
}

func newTestClient(t *testing.T, stub *completionStub) *Client {
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	c, err := NewClient(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return c
}

func TestAnalyzeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the upstream answer", func(t *testing.T) {
		stub := &completionStub{answer: "Seu pedido está a caminho."}
		c := newTestClient(t, stub)

		got := c.AnalyzeStatus(ctx, "Em trânsito")
		assert.Equal(t, "Seu pedido está a caminho.", got)
	})

	t.Run("prompt carries the status text", func(t *testing.T) {
		stub := &completionStub{answer: "ok"}
		c := newTestClient(t, stub)

		c.AnalyzeStatus(ctx, "Out for delivery")

		require.Len(t, stub.lastBody.Messages, 1)
		assert.Contains(t, stub.lastBody.Messages[0].Content, `"Out for delivery"`)
		assert.Contains(t, stub.lastBody.Messages[0].Content, "status de entrega")
		assert.Equal(t, "gpt-3.5-turbo", stub.lastBody.Model)
		assert.InDelta(t, 0.7, stub.lastBody.Temperature, 0.001)
	})

	t.Run("falls back on upstream error", func(t *testing.T) {
		stub := &completionStub{statusCode: http.StatusInternalServerError}
		c := newTestClient(t, stub)

		got := c.AnalyzeStatus(ctx, "Enviado")
		assert.Equal(t, FallbackAnalysis, got)
	})

	t.Run("falls back when the endpoint is unreachable", func(t *testing.T) {
		c, err := NewClient(&Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		got := c.AnalyzeStatus(ctx, "Enviado")
		assert.Equal(t, FallbackAnalysis, got)
	})
}

func TestAnswerQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the upstream answer", func(t *testing.T) {
		stub := &completionStub{answer: "Olá! Seu pedido chega em breve."}
		c := newTestClient(t, stub)

		got, err := c.AnswerQuestion(ctx, "Quando chega?", `{"orderId":"PED-1"}`)
		require.NoError(t, err)
		assert.Equal(t, "Olá! Seu pedido chega em breve.", got)
	})

	t.Run("prompt carries question and order context", func(t *testing.T) {
		stub := &completionStub{answer: "ok"}
		c := newTestClient(t, stub)

		_, err := c.AnswerQuestion(ctx, "Onde está meu pedido?", `{"orderId":"PED-1"}`)
		require.NoError(t, err)

		require.Len(t, stub.lastBody.Messages, 1)
		content := stub.lastBody.Messages[0].Content
		assert.Contains(t, content, "Riquelme")
		assert.Contains(t, content, `"Onde está meu pedido?"`)
		assert.Contains(t, content, `{"orderId":"PED-1"}`)
	})

	t.Run("substitutes placeholder when order context is empty", func(t *testing.T) {
		stub := &completionStub{answer: "ok"}
		c := newTestClient(t, stub)

		_, err := c.AnswerQuestion(ctx, "Quando chega?", "")
		require.NoError(t, err)
		assert.Contains(t, stub.lastBody.Messages[0].Content, NoOrderContext)
	})

	t.Run("propagates upstream errors", func(t *testing.T) {
		stub := &completionStub{statusCode: http.StatusTooManyRequests}
		c := newTestClient(t, stub)

		_, err := c.AnswerQuestion(ctx, "Quando chega?", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, integration.ErrAssistantRequestFailed)
	})

	t.Run("propagates transport errors", func(t *testing.T) {
		c, err := NewClient(&Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		_, err = c.AnswerQuestion(ctx, "Quando chega?", "")
		assert.ErrorIs(t, err, integration.ErrAssistantUnavailable)
	})
}

func TestComplete(t *testing.T) {
	t.Run("empty choices is an invalid response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		t.Cleanup(srv.Close)

		c, err := NewClient(&Config{APIKey: "k", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.complete(context.Background(), "prompt")
		assert.ErrorIs(t, err, integration.ErrAssistantInvalidResponse)
	})

	t.Run("sends bearer authorization", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
		}))
		t.Cleanup(srv.Close)

		c, err := NewClient(&Config{APIKey: "secret", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.001)
	assert.NotZero(t, cfg.Timeout)
}
