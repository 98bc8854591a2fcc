package story

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bkyoung/storysmith/internal/domain"
)

// IssueCreator defines the outbound port for filing the generated story.
type IssueCreator interface {
	CreateIssue(ctx context.Context, issue domain.NewIssue) (*domain.CreatedIssue, error)
}

// ResultPublisher defines the outbound port for recording the created issue
// where later workflow steps can read it.
type ResultPublisher interface {
	Publish(ctx context.Context, result Result) error
}

// Previewer defines the outbound port for showing the assembled issue
// without filing it.
type Previewer interface {
	Render(ctx context.Context, issue domain.NewIssue, generator string) error
}

// OrchestratorDeps captures the dependencies for the orchestrator.
type OrchestratorDeps struct {
	Generator Generator       // Optional: completion backend; nil selects the template
	Issues    IssueCreator    // Required: files the issue
	Publisher ResultPublisher // Optional: workflow outputs and step summary
	Preview   Previewer       // Optional: dry-run issue preview
	Logger    Logger          // Optional: structured logging for warnings and info
}

// Request represents one story-to-issue run.
type Request struct {
	Story     domain.StoryRequest
	Labels    []string
	Assignees []string

	// DryRun renders the story without creating an issue.
	DryRun bool
}

// Result captures the orchestrator outcome.
type Result struct {
	Story domain.Story
	Issue *domain.CreatedIssue // nil on dry runs
}

// Orchestrator implements the single-shot story flow: generate a story (or
// fall back to the template), file it as an issue, publish the outcome.
type Orchestrator struct {
	deps OrchestratorDeps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

// validateDependencies checks that all required dependencies are present.
func (o *Orchestrator) validateDependencies() error {
	if o.deps.Issues == nil {
		return errors.New("issue creator is required")
	}
	// Generator, Publisher, Preview, and Logger are optional
	return nil
}

// Run executes one story-to-issue flow.
//
// Generation failures are not fatal: the templated story is filed instead so
// the workflow still produces an issue. A failure to create the issue itself
// is returned to the caller, and there is no second attempt.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if err := o.validateDependencies(); err != nil {
		return Result{}, err
	}

	storyReq := req.Story.Normalized()
	if storyReq.Title == "" {
		return Result{}, errors.New("issue title is required")
	}

	st := o.buildStory(ctx, storyReq)

	o.logInfo(ctx, "user story prepared", map[string]interface{}{
		"generator": st.Generator,
		"title":     st.Title,
	})

	issue := domain.NewIssue{
		Title:     st.Title,
		Body:      st.Body,
		Labels:    req.Labels,
		Assignees: req.Assignees,
	}

	if req.DryRun {
		if o.deps.Preview != nil {
			if err := o.deps.Preview.Render(ctx, issue, st.Generator); err != nil {
				return Result{}, fmt.Errorf("rendering preview: %w", err)
			}
		}
		o.logInfo(ctx, "dry run, skipping issue creation", map[string]interface{}{
			"title": st.Title,
		})
		return Result{Story: st}, nil
	}

	created, err := o.deps.Issues.CreateIssue(ctx, issue)
	if err != nil {
		return Result{}, fmt.Errorf("creating issue: %w", err)
	}

	o.logInfo(ctx, "issue created", map[string]interface{}{
		"number": created.Number,
		"url":    created.HTMLURL,
	})

	result := Result{Story: st, Issue: created}

	if o.deps.Publisher != nil {
		if err := o.deps.Publisher.Publish(ctx, result); err != nil {
			// Workflow outputs are best effort; the issue already exists.
			o.logWarning(ctx, "failed to publish workflow outputs", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return result, nil
}

// buildStory asks the generator for a story and falls back to the template
// when the generator is absent, fails, or returns an empty completion.
func (o *Orchestrator) buildStory(ctx context.Context, req domain.StoryRequest) domain.Story {
	if o.deps.Generator == nil {
		o.logInfo(ctx, "no completion backend configured, using story template", nil)
		return FallbackStory(req)
	}

	text, err := o.deps.Generator.Generate(ctx, BuildMessages(req))
	if err != nil {
		o.logWarning(ctx, "story generation failed, using story template", map[string]interface{}{
			"error":     err.Error(),
			"generator": o.deps.Generator.Name(),
		})
		return FallbackStory(req)
	}

	if strings.TrimSpace(text) == "" {
		o.logWarning(ctx, "completion backend returned no text, using story template", map[string]interface{}{
			"generator": o.deps.Generator.Name(),
		})
		return FallbackStory(req)
	}

	// A completion that is nothing but a title line has no story in it.
	if ExtractBody(text) == "" {
		o.logWarning(ctx, "completion had no body text, using story template", map[string]interface{}{
			"generator": o.deps.Generator.Name(),
		})
		return FallbackStory(req)
	}

	return ParseStory(text, o.deps.Generator.Name())
}

func (o *Orchestrator) logInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogInfo(ctx, message, fields)
		return
	}
	log.Printf("%s\n", message)
}

func (o *Orchestrator) logWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogWarning(ctx, message, fields)
		return
	}
	log.Printf("warning: %s\n", message)
}
