package openai_test

import (
	"context"
	"testing"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
	"github.com/bkyoung/storysmith/internal/adapter/llm/openai"
	"github.com/bkyoung/storysmith/internal/usecase/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	gotMessages []openai.Message
	gotOptions  openai.CallOptions
	response    *openai.APIResponse
	err         error
}

func (s *stubClient) Call(ctx context.Context, messages []openai.Message, opts openai.CallOptions) (*openai.APIResponse, error) {
	s.gotMessages = messages
	s.gotOptions = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestProvider_Generate(t *testing.T) {
	stub := &stubClient{
		response: &openai.APIResponse{
			Text:  sampleStory,
			Model: "gpt-4o-mini",
		},
	}
	provider := openai.NewProvider("gpt-4o-mini", stub, 0.7, 2000)

	text, err := provider.Generate(context.Background(), []story.Message{
		{Role: "system", Content: "You are a helpful assistant."},
		{Role: "user", Content: "Write a user story."},
	})

	require.NoError(t, err)
	assert.Equal(t, sampleStory, text)

	require.Len(t, stub.gotMessages, 2)
	assert.Equal(t, "system", stub.gotMessages[0].Role)
	assert.Equal(t, "You are a helpful assistant.", stub.gotMessages[0].Content)
	assert.Equal(t, 0.7, stub.gotOptions.Temperature)
	assert.Equal(t, 2000, stub.gotOptions.MaxTokens)
}

func TestProvider_Generate_PropagatesError(t *testing.T) {
	stub := &stubClient{err: llmhttp.NewRateLimitError("openai", "slow down")}
	provider := openai.NewProvider("gpt-4o-mini", stub, 0.7, 2000)

	_, err := provider.Generate(context.Background(), []story.Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	var httpErr *llmhttp.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, llmhttp.ErrTypeRateLimit, httpErr.Type)
}

func TestProvider_Generate_MissingClient(t *testing.T) {
	provider := openai.NewProvider("gpt-4o-mini", nil, 0.7, 2000)

	_, err := provider.Generate(context.Background(), []story.Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client missing")
}

func TestProvider_Name(t *testing.T) {
	provider := openai.NewProvider("gpt-4o-mini", &stubClient{}, 0.7, 2000)

	assert.Equal(t, "gpt-4o-mini", provider.Name())
}
