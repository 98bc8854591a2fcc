// Package actions records run results where GitHub Actions looks for them:
// the GITHUB_OUTPUT file for later workflow steps and the GITHUB_STEP_SUMMARY
// file for the run page.
package actions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bkyoung/storysmith/internal/usecase/story"
)

// Output names later workflow steps read via steps.<id>.outputs.
const (
	OutputIssueNumber = "issue-number"
	OutputIssueURL    = "issue-url"
)

// Publisher implements the story.ResultPublisher port for workflow runs.
// Outside a workflow both target paths are empty and Publish does nothing,
// so local runs need no special casing.
type Publisher struct {
	outputPath  string
	summaryPath string
}

// NewPublisherFromEnv builds a publisher from the runner-provided
// GITHUB_OUTPUT and GITHUB_STEP_SUMMARY paths.
func NewPublisherFromEnv() *Publisher {
	return &Publisher{
		outputPath:  os.Getenv("GITHUB_OUTPUT"),
		summaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

// NewPublisher targets explicit files. Tests use this.
func NewPublisher(outputPath, summaryPath string) *Publisher {
	return &Publisher{
		outputPath:  outputPath,
		summaryPath: summaryPath,
	}
}

// Publish appends the issue outputs and the step summary. Both files are
// appended rather than truncated so earlier steps keep their entries.
func (p *Publisher) Publish(_ context.Context, result story.Result) error {
	if result.Issue == nil {
		return nil
	}

	if err := p.writeOutputs(result); err != nil {
		return fmt.Errorf("writing workflow outputs: %w", err)
	}
	if err := p.writeSummary(result); err != nil {
		return fmt.Errorf("writing step summary: %w", err)
	}
	return nil
}

func (p *Publisher) writeOutputs(result story.Result) error {
	if p.outputPath == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s=%d\n", OutputIssueNumber, result.Issue.Number)
	fmt.Fprintf(&b, "%s=%s\n", OutputIssueURL, result.Issue.HTMLURL)

	return appendFile(p.outputPath, b.String())
}

func (p *Publisher) writeSummary(result story.Result) error {
	if p.summaryPath == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("### User Story Created\n\n")
	fmt.Fprintf(&b, "- **Issue:** [#%d](%s)\n", result.Issue.Number, result.Issue.HTMLURL)
	fmt.Fprintf(&b, "- **Title:** %s\n", result.Story.Title)
	fmt.Fprintf(&b, "- **Generator:** %s\n", result.Story.Generator)

	return appendFile(p.summaryPath, b.String())
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
