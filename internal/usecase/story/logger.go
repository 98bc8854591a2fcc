package story

import "context"

// Logger provides structured logging for the story use case.
// This interface allows the orchestrator to log warnings and info messages
// with structured fields that survive workflow log collection.
type Logger interface {
	// LogWarning logs a warning message with structured fields.
	// Fields typically include error details and the active generator.
	LogWarning(ctx context.Context, message string, fields map[string]interface{})

	// LogInfo logs an informational message with structured fields.
	// Fields typically include operation details and metadata.
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
}
