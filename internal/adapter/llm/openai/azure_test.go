package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
	"github.com/bkyoung/storysmith/internal/adapter/llm/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureHTTPClient_Call_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Azure routes by deployment and authenticates with api-key
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/openai/deployments/gpt-4o-mini/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "azure-secret", r.Header.Get("api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", req.Model)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successResponse("gpt-4o-mini"))
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "gpt-4o-mini", "2024-06-01")

	response, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{
		Temperature: 0.7,
		MaxTokens:   2000,
	})

	require.NoError(t, err)
	assert.Equal(t, sampleStory, response.Text)
	assert.Equal(t, "gpt-4o-mini", response.Model)
}

func TestAzureHTTPClient_Call_DefaultAPIVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, openai.DefaultAzureAPIVersion, r.URL.Query().Get("api-version"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successResponse("gpt-4o-mini"))
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "gpt-4o-mini", "")

	_, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})
	require.NoError(t, err)
}

func TestAzureHTTPClient_Call_TrailingSlashEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(successResponse("gpt-4o"))
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL+"/", "gpt-4o", "2024-06-01")

	_, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})
	require.NoError(t, err)
}

func TestAzureHTTPClient_Call_FillsModelFromDeployment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := successResponse("")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "my-deployment", "2024-06-01")

	response, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})

	require.NoError(t, err)
	assert.Equal(t, "my-deployment", response.Model)
}

func TestAzureHTTPClient_Call_DeploymentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(openai.ErrorResponse{
			Error: openai.ErrorDetail{
				Message: "The API deployment for this resource does not exist",
				Code:    "DeploymentNotFound",
			},
		})
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "missing-deployment", "2024-06-01")

	_, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})

	require.Error(t, err)
	var httpErr *llmhttp.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, llmhttp.ErrTypeModelNotFound, httpErr.Type)
	assert.Equal(t, "azure-openai", httpErr.Provider)
}

func TestAzureHTTPClient_Call_ContentFiltered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(openai.ErrorResponse{
			Error: openai.ErrorDetail{
				Message: "The prompt triggered the content management policy",
				Code:    "content_filter",
			},
		})
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "gpt-4o-mini", "2024-06-01")

	_, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})

	require.Error(t, err)
	var httpErr *llmhttp.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, llmhttp.ErrTypeContentFiltered, httpErr.Type)
}

func TestAzureHTTPClient_Call_SingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := openai.NewAzureHTTPClient("azure-secret", server.URL, "gpt-4o-mini", "2024-06-01")

	_, err := client.Call(context.Background(), storyMessages(), openai.CallOptions{})

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "failed calls must not be retried")
}
