package openai

import (
	"context"
	"fmt"

	"github.com/bkyoung/storysmith/internal/usecase/story"
)

// Client abstracts the chat-completions transport behaviour we need.
// Both HTTPClient and AzureHTTPClient satisfy it.
type Client interface {
	Call(ctx context.Context, messages []Message, opts CallOptions) (*APIResponse, error)
}

// Provider implements the usecase Generator port on top of a chat client.
type Provider struct {
	model       string
	client      Client
	temperature float64
	maxTokens   int
}

// NewProvider constructs a Provider for the supplied model.
func NewProvider(model string, client Client, temperature float64, maxTokens int) *Provider {
	return &Provider{
		model:       model,
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate sends the chat exchange to the API and returns the raw story text.
func (p *Provider) Generate(ctx context.Context, messages []story.Message) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("openai client missing")
	}

	wire := make([]Message, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, Message{Role: m.Role, Content: m.Content})
	}

	response, err := p.client.Call(ctx, wire, CallOptions{
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", err
	}

	return response.Text, nil
}

// Name identifies the backing model for logging and the issue footer.
func (p *Provider) Name() string {
	return p.model
}
