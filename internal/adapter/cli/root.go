package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/storysmith/internal/config"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// RunOptions carries switches that shape a run but are not configuration.
type RunOptions struct {
	DryRun bool
}

// Runner executes a story run with the fully resolved configuration.
type Runner func(ctx context.Context, cfg config.Config, opts RunOptions) error

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Run        Runner
	Args       Arguments
	BaseConfig config.Config
	Version    string
}

// NewRootCommand constructs the root Cobra command. Flags default to the
// loaded configuration, so a bare invocation inside a workflow run needs no
// arguments at all. Secret flags default to empty and override only when
// set, keeping token values out of help output.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	cfg := deps.BaseConfig
	var githubToken string
	var openaiKey string
	var azureKey string
	var dryRun bool
	var showVersion bool

	root := &cobra.Command{
		Use:   "storysmith",
		Short: "Generate a user story and open it as a GitHub issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
				return ErrVersionRequested
			}

			if githubToken != "" {
				cfg.GitHub.Token = githubToken
			}
			if openaiKey != "" {
				cfg.AI.OpenAIAPIKey = openaiKey
			}
			if azureKey != "" {
				cfg.AI.AzureOpenAIAPIKey = azureKey
			}

			return deps.Run(cmd.Context(), cfg, RunOptions{DryRun: dryRun})
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	flags := root.Flags()
	flags.StringVar(&cfg.GitHub.APIURL, "github-api-url", cfg.GitHub.APIURL, "GitHub REST API base URL")
	flags.StringVar(&cfg.GitHub.Repository, "github-repository", cfg.GitHub.Repository, "Target repository in owner/repo form (detected from the checkout when empty)")
	flags.StringVar(&githubToken, "github-token", "", "GitHub token used to create the issue")
	flags.StringVar(&openaiKey, "openai-api-key", "", "OpenAI API key, enables story generation")
	flags.StringVar(&azureKey, "azure-openai-api-key", "", "Azure OpenAI API key, preferred over OpenAI when the endpoint is also set")
	flags.StringVar(&cfg.AI.AzureOpenAIEndpoint, "azure-openai-endpoint", cfg.AI.AzureOpenAIEndpoint, "Azure OpenAI resource endpoint")
	flags.StringVar(&cfg.AI.AzureOpenAIVersion, "azure-openai-version", cfg.AI.AzureOpenAIVersion, "Azure OpenAI API version")
	flags.StringVar(&cfg.Story.Title, "issue-title", cfg.Story.Title, "Feature title for the story and the issue")
	flags.StringVar(&cfg.Story.Description, "issue-description", cfg.Story.Description, "Feature description the story is generated from")
	flags.StringVar(&cfg.Story.Complexity, "complexity", cfg.Story.Complexity, "Relative complexity of the work")
	flags.StringVar(&cfg.Story.Duration, "duration", cfg.Story.Duration, "Estimated duration of the work")
	flags.StringVar(&cfg.Story.Labels, "labels", cfg.Story.Labels, "Comma-separated labels for the issue")
	flags.StringVar(&cfg.Story.Assignees, "assignees", cfg.Story.Assignees, "Comma-separated assignees for the issue")
	flags.StringVar(&cfg.AI.Model, "openai-model", cfg.AI.Model, "Model name, doubles as the Azure deployment name")
	flags.IntVar(&cfg.AI.MaxTokens, "max-tokens", cfg.AI.MaxTokens, "Maximum tokens in the generated story")
	flags.Float64Var(&cfg.AI.Temperature, "temperature", cfg.AI.Temperature, "Sampling temperature between 0 and 2")
	flags.StringVar(&cfg.AI.Timeout, "timeout", cfg.AI.Timeout, "Completion request timeout, e.g. 60s")
	flags.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, or error")
	flags.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "Log format: auto, json, or human")
	flags.BoolVar(&dryRun, "dry-run", false, "Prepare the story without creating the issue")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version and exit")

	return root
}
