package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 60 * time.Second

	providerName = "openai"
)

// HTTPClient is an HTTP client for the OpenAI Chat Completions API.
type HTTPClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  llmhttp.Logger
}

// NewHTTPClient creates a new OpenAI HTTP client.
func NewHTTPClient(apiKey, model string) *HTTPClient {
	return &HTTPClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

// SetTimeout sets the HTTP timeout.
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetLogger attaches a structured logger for API call logging.
func (c *HTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// CallOptions contains options for the API call.
type CallOptions struct {
	Temperature float64
	MaxTokens   int
}

// APIResponse represents the parsed response from the API.
type APIResponse struct {
	Text         string
	TokensIn     int
	TokensOut    int
	Model        string
	FinishReason string
}

// Call makes a single request to the Chat Completions API. The tool runs
// once per pipeline step, so there is no retry here; the caller decides
// whether a failure is fatal.
func (c *HTTPClient) Call(ctx context.Context, messages []Message, opts CallOptions) (*APIResponse, error) {
	reqBody := ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logRequest(ctx, c.logger, providerName, c.model, c.apiKey, messages)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		callErr := transportError(ctx, providerName, err)
		logError(ctx, c.logger, providerName, c.model, start, callErr)
		return nil, callErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		callErr := mapErrorResponse(providerName, resp.StatusCode, body)
		logError(ctx, c.logger, providerName, c.model, start, callErr)
		return nil, callErr
	}

	apiResp, err := decodeChatResponse(providerName, body)
	if err != nil {
		logError(ctx, c.logger, providerName, c.model, start, err)
		return nil, err
	}

	logResponse(ctx, c.logger, providerName, c.model, start, resp.StatusCode, apiResp)
	return apiResp, nil
}

// transportError classifies a failed round trip.
func transportError(ctx context.Context, provider string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return llmhttp.NewTimeoutError(provider, "request timed out")
	}
	return llmhttp.NewTimeoutError(provider, err.Error())
}

// decodeChatResponse parses a 2xx body into an APIResponse.
func decodeChatResponse(provider string, body []byte) (*APIResponse, error) {
	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, llmhttp.NewInvalidResponseError(provider, fmt.Sprintf("failed to parse response: %v", err))
	}

	if len(chatResp.Choices) == 0 {
		return nil, llmhttp.NewInvalidResponseError(provider, "no choices in response")
	}

	text := chatResp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, llmhttp.NewInvalidResponseError(provider, "empty completion text")
	}

	return &APIResponse{
		Text:         text,
		TokensIn:     chatResp.Usage.PromptTokens,
		TokensOut:    chatResp.Usage.CompletionTokens,
		Model:        chatResp.Model,
		FinishReason: chatResp.Choices[0].FinishReason,
	}, nil
}

// mapErrorResponse converts HTTP error responses to typed errors.
func mapErrorResponse(provider string, statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
		if errResp.Error.Code == "content_filter" {
			return llmhttp.NewContentFilteredError(provider, message)
		}
	} else if len(body) > 0 && len(body) < 200 {
		// Short non-JSON bodies are usually proxy errors worth surfacing
		message = string(body)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(provider, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(provider, message)
	case http.StatusNotFound:
		return llmhttp.NewModelNotFoundError(provider, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return llmhttp.NewInvalidRequestError(provider, message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return llmhttp.NewServiceUnavailableError(provider, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			Provider:   provider,
		}
	}
}

func logRequest(ctx context.Context, logger llmhttp.Logger, provider, model, apiKey string, messages []Message) {
	if logger == nil {
		return
	}
	chars := 0
	for _, m := range messages {
		chars += len(m.Content)
	}
	logger.LogRequest(ctx, llmhttp.RequestLog{
		Provider:    provider,
		Model:       model,
		Timestamp:   time.Now(),
		PromptChars: chars,
		APIKey:      apiKey,
	})
}

func logResponse(ctx context.Context, logger llmhttp.Logger, provider, model string, start time.Time, statusCode int, resp *APIResponse) {
	if logger == nil {
		return
	}
	logger.LogResponse(ctx, llmhttp.ResponseLog{
		Provider:     provider,
		Model:        model,
		Timestamp:    time.Now(),
		Duration:     time.Since(start),
		TokensIn:     resp.TokensIn,
		TokensOut:    resp.TokensOut,
		StatusCode:   statusCode,
		FinishReason: resp.FinishReason,
		Text:         resp.Text,
	})
}

func logError(ctx context.Context, logger llmhttp.Logger, provider, model string, start time.Time, err error) {
	if logger == nil {
		return
	}
	entry := llmhttp.ErrorLog{
		Provider:  provider,
		Model:     model,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
		Error:     err,
		ErrorType: llmhttp.ErrTypeUnknown,
	}
	var typed *llmhttp.Error
	if errors.As(err, &typed) {
		entry.ErrorType = typed.Type
		entry.StatusCode = typed.StatusCode
	}
	logger.LogError(ctx, entry)
}
