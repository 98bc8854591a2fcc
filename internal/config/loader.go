package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"

	"github.com/bkyoung/storysmith/internal/domain"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
}

// Load returns the merged configuration from defaults, an optional YAML file,
// and environment variables. Action inputs (INPUT_*) take precedence over the
// runner's own variables, which take precedence over the file.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "storysmith"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	bindActionInputs(v)
	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand environment variables in config values
	cfg = expandEnvVars(cfg)

	return cfg, nil
}

// bindActionInputs maps configuration keys to the environment variables a
// workflow run provides. Each key lists its variables in precedence order;
// the runner's own variables back the inputs that have them. Empty values
// count as unset so a declared-but-blank input falls through.
func bindActionInputs(v *viper.Viper) {
	bindings := map[string][]string{
		"github.apiUrl":          {"INPUT_GITHUB_API_URL", "GITHUB_API_URL"},
		"github.repository":      {"INPUT_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"},
		"github.token":           {"INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"},
		"ai.openaiApiKey":        {"INPUT_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"ai.azureOpenaiApiKey":   {"INPUT_AZURE_OPENAI_API_KEY", "AZURE_OPENAI_API_KEY"},
		"ai.azureOpenaiEndpoint": {"INPUT_AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_ENDPOINT"},
		"ai.azureOpenaiVersion":  {"INPUT_AZURE_OPENAI_VERSION", "AZURE_OPENAI_VERSION"},
		"ai.model":               {"INPUT_OPENAI_MODEL"},
		"ai.maxTokens":           {"INPUT_MAX_TOKENS"},
		"ai.temperature":         {"INPUT_TEMPERATURE"},
		"ai.timeout":             {"INPUT_TIMEOUT"},
		"story.title":            {"INPUT_ISSUE_TITLE"},
		"story.description":      {"INPUT_ISSUE_DESCRIPTION"},
		"story.complexity":       {"INPUT_COMPLEXITY"},
		"story.duration":         {"INPUT_DURATION"},
		"story.labels":           {"INPUT_LABELS"},
		"story.assignees":        {"INPUT_ASSIGNEES"},
		"logging.level":          {"INPUT_LOG_LEVEL"},
		"logging.format":         {"INPUT_LOG_FORMAT"},
	}
	for key, envVars := range bindings {
		_ = v.BindEnv(append([]string{key}, envVars...)...)
	}
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.GitHub.APIURL = expandEnvString(cfg.GitHub.APIURL)
	cfg.GitHub.Repository = expandEnvString(cfg.GitHub.Repository)
	cfg.GitHub.Token = expandEnvString(cfg.GitHub.Token)

	cfg.AI.OpenAIAPIKey = expandEnvString(cfg.AI.OpenAIAPIKey)
	cfg.AI.AzureOpenAIAPIKey = expandEnvString(cfg.AI.AzureOpenAIAPIKey)
	cfg.AI.AzureOpenAIEndpoint = expandEnvString(cfg.AI.AzureOpenAIEndpoint)
	cfg.AI.AzureOpenAIVersion = expandEnvString(cfg.AI.AzureOpenAIVersion)
	cfg.AI.Model = expandEnvString(cfg.AI.Model)
	cfg.AI.Timeout = expandEnvString(cfg.AI.Timeout)

	cfg.Logging.Level = expandEnvString(cfg.Logging.Level)
	cfg.Logging.Format = expandEnvString(cfg.Logging.Format)

	return cfg
}

// expandEnvString replaces ${VAR} or $VAR with environment variable values.
func expandEnvString(s string) string {
	if s == "" {
		return s
	}

	// Replace ${VAR} syntax
	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	// Replace $VAR syntax (without braces)
	re = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	return s
}

func locateConfigFile(name string, paths []string) string {
	searchPaths := append([]string{}, paths...)
	searchPaths = append(searchPaths, ".")
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+".yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.apiUrl", "https://api.github.com")

	// AI defaults
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.maxTokens", 2000)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", "60s")

	// Story defaults
	v.SetDefault("story.complexity", domain.DefaultComplexity)
	v.SetDefault("story.duration", domain.DefaultDuration)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "auto")
	v.SetDefault("logging.redactAPIKeys", true)
}
