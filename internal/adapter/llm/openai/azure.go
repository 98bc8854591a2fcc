package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
)

const (
	// DefaultAzureAPIVersion is used when no api-version is configured.
	DefaultAzureAPIVersion = "2024-02-15-preview"

	azureProviderName = "azure-openai"
)

// AzureHTTPClient is an HTTP client for an Azure OpenAI deployment.
// Azure speaks the same chat-completions protocol as the direct endpoint
// but routes by deployment name and authenticates with an api-key header.
type AzureHTTPClient struct {
	apiKey     string
	endpoint   string // https://<resource>.openai.azure.com
	deployment string
	apiVersion string
	client     *http.Client
	logger     llmhttp.Logger
}

// NewAzureHTTPClient creates a client for the given Azure OpenAI deployment.
// The deployment name is the model input; most deployments are named after
// the model they serve.
func NewAzureHTTPClient(apiKey, endpoint, deployment, apiVersion string) *AzureHTTPClient {
	if strings.TrimSpace(apiVersion) == "" {
		apiVersion = DefaultAzureAPIVersion
	}
	return &AzureHTTPClient{
		apiKey:     apiKey,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		deployment: deployment,
		apiVersion: apiVersion,
		client:     &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout sets the HTTP timeout.
func (c *AzureHTTPClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetLogger attaches a structured logger for API call logging.
func (c *AzureHTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// Call makes a single request to the deployment's chat-completions route.
func (c *AzureHTTPClient) Call(ctx context.Context, messages []Message, opts CallOptions) (*APIResponse, error) {
	reqBody := ChatCompletionRequest{
		Model:       c.deployment,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, url.PathEscape(c.deployment), url.QueryEscape(c.apiVersion))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	logRequest(ctx, c.logger, azureProviderName, c.deployment, c.apiKey, messages)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		callErr := transportError(ctx, azureProviderName, err)
		logError(ctx, c.logger, azureProviderName, c.deployment, start, callErr)
		return nil, callErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		callErr := mapErrorResponse(azureProviderName, resp.StatusCode, body)
		logError(ctx, c.logger, azureProviderName, c.deployment, start, callErr)
		return nil, callErr
	}

	apiResp, err := decodeChatResponse(azureProviderName, body)
	if err != nil {
		logError(ctx, c.logger, azureProviderName, c.deployment, start, err)
		return nil, err
	}

	// Azure omits the model field on some api-versions
	if apiResp.Model == "" {
		apiResp.Model = c.deployment
	}

	logResponse(ctx, c.logger, azureProviderName, c.deployment, start, resp.StatusCode, apiResp)
	return apiResp, nil
}
