package observability

import (
	"strings"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
	"github.com/bkyoung/storysmith/internal/config"
	"github.com/bkyoung/storysmith/internal/usecase/story"
)

// NewLoggerFromConfig builds the process logger from logging configuration.
// The returned logger backs both the chat clients and the story orchestrator,
// so every line a run emits goes through the same structured writer.
func NewLoggerFromConfig(cfg config.LoggingConfig) *llmhttp.DefaultLogger {
	format := ResolveFormat(cfg.Format, story.IsOutputTerminal())
	return llmhttp.NewDefaultLogger(
		llmhttp.ParseLogLevel(cfg.Level),
		llmhttp.ParseLogFormat(format),
		cfg.RedactAPIKeys,
	)
}

// ResolveFormat maps the configured log format to a concrete one. The "auto"
// value picks the human layout on a terminal and JSON when output is being
// collected as workflow logs.
func ResolveFormat(format string, outputIsTerminal bool) string {
	trimmed := strings.TrimSpace(format)
	if trimmed == "" || strings.EqualFold(trimmed, "auto") {
		if outputIsTerminal {
			return "human"
		}
		return "json"
	}
	return trimmed
}
