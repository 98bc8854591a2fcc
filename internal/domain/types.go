package domain

import "strings"

const (
	// DefaultComplexity is assumed when the caller does not size the work.
	DefaultComplexity = "Medium"
	// DefaultDuration is assumed when the caller gives no estimate.
	DefaultDuration = "1 week"
)

// GeneratorTemplate names the non-AI fallback generator.
const GeneratorTemplate = "template"

// StoryRequest captures the feature description supplied to the action.
type StoryRequest struct {
	Title       string
	Description string
	Complexity  string
	Duration    string
}

// Normalized returns a copy with the complexity and duration defaults applied.
func (r StoryRequest) Normalized() StoryRequest {
	out := r
	out.Title = strings.TrimSpace(r.Title)
	out.Description = strings.TrimSpace(r.Description)
	if strings.TrimSpace(out.Complexity) == "" {
		out.Complexity = DefaultComplexity
	}
	if strings.TrimSpace(out.Duration) == "" {
		out.Duration = DefaultDuration
	}
	return out
}

// Story is a generated user story ready to become an issue.
type Story struct {
	Title     string
	Body      string
	Generator string // model name, or GeneratorTemplate for the fallback
}

// NewIssue describes the issue to create in the tracker.
type NewIssue struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// CreatedIssue identifies the issue the tracker created.
type CreatedIssue struct {
	Number  int
	HTMLURL string
}

// SplitList parses a comma-separated input value into its entries.
// Entries are trimmed and empties dropped; a blank input yields nil so the
// issue request carries no labels or assignees at all.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
