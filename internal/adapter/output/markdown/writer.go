package markdown

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bkyoung/storysmith/internal/domain"
)

// Writer renders an assembled issue as Markdown. Dry runs use it to show the
// issue that would have been created.
type Writer struct {
	out io.Writer
}

// NewWriter constructs a Markdown writer targeting the given stream.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Render writes the issue preview.
func (w *Writer) Render(ctx context.Context, issue domain.NewIssue, generator string) error {
	if _, err := io.WriteString(w.out, buildContent(issue, generator)); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func buildContent(issue domain.NewIssue, generator string) string {
	var builder strings.Builder
	builder.WriteString("# Issue Preview\n\n")
	builder.WriteString(fmt.Sprintf("- Title: %s\n", issue.Title))
	builder.WriteString(fmt.Sprintf("- Generator: %s\n", generator))
	if len(issue.Labels) > 0 {
		builder.WriteString(fmt.Sprintf("- Labels: %s\n", strings.Join(issue.Labels, ", ")))
	}
	if len(issue.Assignees) > 0 {
		builder.WriteString(fmt.Sprintf("- Assignees: %s\n", strings.Join(issue.Assignees, ", ")))
	}
	builder.WriteString("\n## Body\n\n")
	builder.WriteString(strings.TrimRight(issue.Body, "\n"))
	builder.WriteString("\n")
	return builder.String()
}
