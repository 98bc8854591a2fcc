package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bkyoung/storysmith/internal/adapter/actions"
	"github.com/bkyoung/storysmith/internal/adapter/cli"
	githubadapter "github.com/bkyoung/storysmith/internal/adapter/github"
	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
	"github.com/bkyoung/storysmith/internal/adapter/llm/openai"
	"github.com/bkyoung/storysmith/internal/adapter/observability"
	"github.com/bkyoung/storysmith/internal/adapter/output/markdown"
	"github.com/bkyoung/storysmith/internal/adapter/repository"
	"github.com/bkyoung/storysmith/internal/config"
	"github.com/bkyoung/storysmith/internal/usecase/story"
	"github.com/bkyoung/storysmith/internal/version"
)

func main() {
	if err := run(); err != nil {
		// Redact API keys from URLs in error messages before logging
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "storysmith",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Run:        runStory,
		BaseConfig: cfg,
		Version:    version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// runStory wires the adapters for one run and executes it. It receives the
// configuration after flag resolution, so everything it reads is final.
func runStory(ctx context.Context, cfg config.Config, opts cli.RunOptions) error {
	logger := observability.NewLoggerFromConfig(cfg.Logging)

	if cfg.GitHub.Repository == "" {
		owner, repo, err := repository.Detect(".")
		if err != nil {
			log.Printf("warning: could not detect repository from checkout: %v", err)
		} else {
			cfg.GitHub.Repository = owner + "/" + repo
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	owner, repo, err := config.SplitRepository(cfg.GitHub.Repository)
	if err != nil {
		return err
	}

	issues, err := githubadapter.NewClient(owner, repo, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return err
	}

	orchestrator := story.NewOrchestrator(story.OrchestratorDeps{
		Generator: buildGenerator(cfg.AI, resolveTimeout(cfg.AI.Timeout), logger),
		Issues:    issues,
		Publisher: actions.NewPublisherFromEnv(),
		Preview:   markdown.NewWriter(os.Stdout),
		Logger:    logger,
	})

	_, err = orchestrator.Run(ctx, story.Request{
		Story:     cfg.Story.StoryRequest(),
		Labels:    cfg.Story.LabelList(),
		Assignees: cfg.Story.AssigneeList(),
		DryRun:    opts.DryRun,
	})
	return err
}

// buildGenerator selects the completion backend from the configured
// credentials. Azure wins when both its key and endpoint are present. A nil
// return means no backend is configured and the templated story is used.
func buildGenerator(ai config.AIConfig, timeout time.Duration, logger llmhttp.Logger) story.Generator {
	switch ai.SelectBackend() {
	case config.BackendAzureOpenAI:
		client := openai.NewAzureHTTPClient(ai.AzureOpenAIAPIKey, ai.AzureOpenAIEndpoint, ai.Model, ai.AzureOpenAIVersion)
		client.SetTimeout(timeout)
		client.SetLogger(logger)
		return openai.NewProvider(ai.Model, client, ai.Temperature, ai.MaxTokens)
	case config.BackendOpenAI:
		client := openai.NewHTTPClient(ai.OpenAIAPIKey, ai.Model)
		client.SetTimeout(timeout)
		client.SetLogger(logger)
		return openai.NewProvider(ai.Model, client, ai.Temperature, ai.MaxTokens)
	default:
		return nil
	}
}

// resolveTimeout parses the configured timeout, accepting either a Go
// duration string or a bare number of seconds. Invalid values fall back to
// the 60s default with a warning.
func resolveTimeout(value string) time.Duration {
	const fallback = 60 * time.Second

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		log.Printf("warning: invalid timeout %q, using default 60s", value)
		return fallback
	}
	if parsed, err := time.ParseDuration(trimmed); err == nil && parsed > 0 {
		return parsed
	}
	log.Printf("warning: invalid timeout %q, using default 60s", value)
	return fallback
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "storysmith"))
	}
	return paths
}

// Compile-time interface compliance checks
var _ story.Generator = (*openai.Provider)(nil)
var _ story.IssueCreator = (*githubadapter.Client)(nil)
var _ story.ResultPublisher = (*actions.Publisher)(nil)
var _ story.Previewer = (*markdown.Writer)(nil)
var _ story.Logger = (*llmhttp.DefaultLogger)(nil)
