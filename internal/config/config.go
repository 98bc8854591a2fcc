package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bkyoung/storysmith/internal/domain"
)

// Config represents the full application configuration.
type Config struct {
	GitHub  GitHubConfig  `yaml:"github"`
	AI      AIConfig      `yaml:"ai"`
	Story   StoryConfig   `yaml:"story"`
	Logging LoggingConfig `yaml:"logging"`
}

// GitHubConfig locates the repository that receives the issue.
type GitHubConfig struct {
	// APIURL is the REST endpoint. Enterprise installs override it with
	// their /api/v3 URL; workflow runs inherit it from GITHUB_API_URL.
	APIURL string `yaml:"apiUrl"`

	// Repository is the owner/repo target. Left empty, it is detected
	// from the origin remote of the working directory.
	Repository string `yaml:"repository"`

	Token string `yaml:"token"`
}

// AIConfig configures the optional completion backend.
//
// Which backend runs is decided by SelectBackend: Azure when both its key
// and endpoint are present, plain OpenAI when only its key is, and none
// otherwise.
type AIConfig struct {
	OpenAIAPIKey string `yaml:"openaiApiKey"`

	AzureOpenAIAPIKey   string `yaml:"azureOpenaiApiKey"`
	AzureOpenAIEndpoint string `yaml:"azureOpenaiEndpoint"`
	AzureOpenAIVersion  string `yaml:"azureOpenaiVersion"`

	// Model is the OpenAI model name. For Azure it doubles as the
	// deployment name, matching how the service publishes models.
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
}

// StoryConfig carries the requested story fields.
type StoryConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Complexity  string `yaml:"complexity"`
	Duration    string `yaml:"duration"`

	// Labels and Assignees are comma-separated lists. Empty means none.
	Labels    string `yaml:"labels"`
	Assignees string `yaml:"assignees"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // auto, json, human
	RedactAPIKeys bool   `yaml:"redactApiKeys"` // Redact API keys in logs
}

// Backend identifies which completion service a run will use.
type Backend int

const (
	BackendNone Backend = iota
	BackendOpenAI
	BackendAzureOpenAI
)

// String returns the backend name used in logs.
func (b Backend) String() string {
	switch b {
	case BackendOpenAI:
		return "openai"
	case BackendAzureOpenAI:
		return "azure-openai"
	default:
		return "none"
	}
}

// SelectBackend decides which completion backend the configuration enables.
// Azure wins when both its key and endpoint are present; an Azure key without
// an endpoint cannot be routed anywhere and falls through to the OpenAI
// check. With no usable credentials the templated story is used instead.
func (c AIConfig) SelectBackend() Backend {
	if c.AzureOpenAIAPIKey != "" && c.AzureOpenAIEndpoint != "" {
		return BackendAzureOpenAI
	}
	if c.OpenAIAPIKey != "" {
		return BackendOpenAI
	}
	return BackendNone
}

// SplitRepository splits an owner/repo value into its parts.
func SplitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository %q is not in owner/repo form", repository)
	}
	return parts[0], parts[1], nil
}

// StoryRequest converts the configured story fields to a domain request.
func (c StoryConfig) StoryRequest() domain.StoryRequest {
	return domain.StoryRequest{
		Title:       c.Title,
		Description: c.Description,
		Complexity:  c.Complexity,
		Duration:    c.Duration,
	}
}

// LabelList returns the configured labels as a list.
func (c StoryConfig) LabelList() []string {
	return domain.SplitList(c.Labels)
}

// AssigneeList returns the configured assignees as a list.
func (c StoryConfig) AssigneeList() []string {
	return domain.SplitList(c.Assignees)
}

// Validate checks the invariants a run cannot start without.
func (c Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("github token is required")
	}
	if c.GitHub.Repository == "" {
		return errors.New("github repository is required")
	}
	if _, _, err := SplitRepository(c.GitHub.Repository); err != nil {
		return err
	}
	if strings.TrimSpace(c.Story.Title) == "" {
		return errors.New("issue title is required")
	}
	if c.AI.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("temperature %g is outside the supported range [0, 2]", c.AI.Temperature)
	}
	return nil
}
