package actions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/storysmith/internal/adapter/actions"
	"github.com/bkyoung/storysmith/internal/domain"
	"github.com/bkyoung/storysmith/internal/usecase/story"
)

func sampleResult() story.Result {
	return story.Result{
		Story: domain.Story{
			Title:     "Implement Dark Mode",
			Body:      "## User Story\n...",
			Generator: "gpt-4o-mini",
		},
		Issue: &domain.CreatedIssue{
			Number:  42,
			HTMLURL: "https://github.com/acme/app/issues/42",
		},
	}
}

func TestPublish_WritesOutputsAndSummary(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")
	summaryPath := filepath.Join(dir, "summary")

	publisher := actions.NewPublisher(outputPath, summaryPath)
	require.NoError(t, publisher.Publish(context.Background(), sampleResult()))

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(output), "issue-number=42\n")
	assert.Contains(t, string(output), "issue-url=https://github.com/acme/app/issues/42\n")

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "### User Story Created")
	assert.Contains(t, string(summary), "[#42](https://github.com/acme/app/issues/42)")
	assert.Contains(t, string(summary), "Implement Dark Mode")
	assert.Contains(t, string(summary), "gpt-4o-mini")
}

func TestPublish_AppendsToExistingOutput(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(outputPath, []byte("earlier-step=done\n"), 0o644))

	publisher := actions.NewPublisher(outputPath, "")
	require.NoError(t, publisher.Publish(context.Background(), sampleResult()))

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(output), "earlier-step=done\n")
	assert.Contains(t, string(output), "issue-number=42\n")
}

func TestPublish_NoPathsIsNoop(t *testing.T) {
	publisher := actions.NewPublisher("", "")
	assert.NoError(t, publisher.Publish(context.Background(), sampleResult()))
}

func TestPublish_NoIssueIsNoop(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")

	publisher := actions.NewPublisher(outputPath, "")
	result := sampleResult()
	result.Issue = nil

	require.NoError(t, publisher.Publish(context.Background(), result))

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err), "dry runs must not touch the output file")
}

func TestPublish_UnwritableOutputFails(t *testing.T) {
	dir := t.TempDir()
	// Point at a directory so the open fails.
	publisher := actions.NewPublisher(dir, "")

	err := publisher.Publish(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflow outputs")
}

func TestNewPublisherFromEnv(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")
	summaryPath := filepath.Join(dir, "summary")

	t.Setenv("GITHUB_OUTPUT", outputPath)
	t.Setenv("GITHUB_STEP_SUMMARY", summaryPath)

	publisher := actions.NewPublisherFromEnv()
	require.NoError(t, publisher.Publish(context.Background(), sampleResult()))

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(output), "issue-number=42\n")
}
