package observability_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/storysmith/internal/adapter/observability"
	"github.com/bkyoung/storysmith/internal/config"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		terminal bool
		expected string
	}{
		{name: "auto on a terminal", format: "auto", terminal: true, expected: "human"},
		{name: "auto in a pipeline", format: "auto", terminal: false, expected: "json"},
		{name: "empty behaves like auto", format: "", terminal: false, expected: "json"},
		{name: "auto is case-insensitive", format: "AUTO", terminal: true, expected: "human"},
		{name: "json passes through", format: "json", terminal: true, expected: "json"},
		{name: "human passes through", format: "human", terminal: false, expected: "human"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, observability.ResolveFormat(tt.format, tt.terminal))
		})
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	// Capture log output
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := observability.NewLoggerFromConfig(config.LoggingConfig{
		Level:         "info",
		Format:        "human",
		RedactAPIKeys: true,
	})
	require.NotNil(t, logger)

	logger.LogInfo(context.Background(), "issue created", map[string]interface{}{
		"number":  42,
		"backend": "openai",
	})

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "issue created")
	assert.Contains(t, output, "number=42")
	assert.Contains(t, output, "backend=openai")
}

func TestNewLoggerFromConfigErrorLevelSuppressesInfo(t *testing.T) {
	// Capture log output
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := observability.NewLoggerFromConfig(config.LoggingConfig{
		Level:  "error",
		Format: "human",
	})

	logger.LogInfo(context.Background(), "should be suppressed", nil)

	assert.Empty(t, buf.String())
}
