package story

import "context"

// Chat roles understood by the completion backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in the conversation sent to a completion backend.
type Message struct {
	Role    string
	Content string
}

// Generator defines the outbound port for AI-backed story generation.
//
// Implementations wrap a specific chat-completion service. The orchestrator
// treats the generator as optional: when it is absent or fails, the templated
// story is used instead.
type Generator interface {
	// Generate returns the raw completion text for the given conversation.
	Generate(ctx context.Context, messages []Message) (string, error)

	// Name identifies the backing model for logging and the story footer.
	Name() string
}
